package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/guitarkit/strum/internal/services"
)

// viewState selects which screen the model renders.
type viewState int

const (
	stateBrowse viewState = iota
	stateDetail
	stateCreate
)

// fetchState tracks the listing request lifecycle.
type fetchState int

const (
	fetchIdle fetchState = iota
	fetchLoading
	fetchLoaded
	fetchFailed
)

// DefaultDebounce is applied when the config leaves the interval unset.
const DefaultDebounce = 400 * time.Millisecond

// Config parametrizes the browser for a catalog kind.
type Config struct {
	Title    string
	Catalog  services.Catalog
	Debounce time.Duration
	Logger   *log.Logger

	// Admin enables the add and delete affordances. Create receives the
	// trimmed form values and is expected to validate before any network
	// call; a nil Create disables the add flow even for admins.
	Admin      bool
	FormLabels []string
	Create     func(ctx context.Context, values []string) error
}

type debouncedMsg struct{ seq int }

type entriesFetchedMsg struct {
	seq     int
	entries []services.Entry
	err     error
}

type savedFetchedMsg struct {
	ids []int
	err error
}

type detailFetchedMsg struct {
	detail services.Detail
	err    error
}

type saveToggledMsg struct {
	id       int
	nowSaved bool
	err      error
}

type deletedMsg struct {
	id  int
	err error
}

type createdMsg struct{ err error }

// Model is the resource browser. One model serves every catalog kind;
// Config supplies the pieces that differ.
type Model struct {
	cfg    Config
	keys   keyMap
	logger *log.Logger

	list    list.Model
	search  textinput.Model
	spin    spinner.Model
	help    help.Model
	form    createForm
	state   viewState
	fetch   fetchState
	fetched bool

	// inputSeq increments on every search keystroke; a debouncedMsg
	// fires a fetch only when its seq still matches. fetchSeq stamps
	// each listing request so late responses for superseded filters
	// are dropped.
	inputSeq int
	fetchSeq int

	descending bool
	saved      map[int]bool
	detail     services.Detail
	status     string
	errMsg     string
	width      int
	height     int
}

// NewModel builds a browser around cfg, applying defaults for the
// debounce interval and logger.
func NewModel(cfg Config) Model {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	search := textinput.New()
	search.Prompt = "search: "
	search.Placeholder = "type to filter"
	search.CharLimit = 128

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(styles.title.GetForeground())
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(styles.help.GetForeground())

	lst := list.New(nil, delegate, 0, 0)
	lst.Title = cfg.Title
	lst.SetShowTitle(true)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		cfg:    cfg,
		keys:   newKeyMap(),
		logger: cfg.Logger,
		list:   lst,
		search: search,
		spin:   spin,
		help:   help.New(),
		saved:  map[int]bool{},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchEntries(m.fetchSeq, ""), m.fetchSaved(), m.spin.Tick)
}

// debounce arms a timer for the current input sequence. If another
// keystroke lands first the sequence moves on and the stale timer's
// message is ignored.
func (m Model) debounce(seq int) tea.Cmd {
	return tea.Tick(m.cfg.Debounce, func(time.Time) tea.Msg {
		return debouncedMsg{seq: seq}
	})
}

func (m Model) fetchEntries(seq int, search string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entries, err := m.cfg.Catalog.List(ctx, services.Filter{Search: search})

		return entriesFetchedMsg{seq: seq, entries: entries, err: err}
	}
}

func (m Model) fetchSaved() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entries, err := m.cfg.Catalog.ListSaved(ctx)
		if err != nil {
			return savedFetchedMsg{err: err}
		}

		ids := make([]int, 0, len(entries))
		for _, entry := range entries {
			ids = append(ids, entry.ID)
		}

		return savedFetchedMsg{ids: ids}
	}
}

func (m Model) fetchDetail(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := m.cfg.Catalog.Get(ctx, id)
		if err != nil {
			return detailFetchedMsg{err: err}
		}

		return detailFetchedMsg{detail: *detail}
	}
}

func (m Model) toggleSave(id int, currentlySaved bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		if currentlySaved {
			err = m.cfg.Catalog.Unsave(ctx, id)
		} else {
			err = m.cfg.Catalog.Save(ctx, id)
		}

		return saveToggledMsg{id: id, nowSaved: !currentlySaved, err: err}
	}
}

func (m Model) deleteEntry(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return deletedMsg{id: id, err: m.cfg.Catalog.Delete(ctx, id)}
	}
}

func (m Model) submitCreate(values []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		return createdMsg{err: m.cfg.Create(ctx, values)}
	}
}

func (m *Model) applyEntries(entries []services.Entry) {
	sortEntries(entries, m.descending)

	items := make([]list.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryItem{entry: entry, saved: m.saved[entry.ID]})
	}

	m.list.SetItems(items)
}

func (m *Model) currentEntries() []services.Entry {
	items := m.list.Items()
	entries := make([]services.Entry, 0, len(items))
	for _, item := range items {
		if ei, ok := item.(entryItem); ok {
			entries = append(entries, ei.entry)
		}
	}

	return entries
}

func (m *Model) selected() (services.Entry, bool) {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return services.Entry{}, false
	}

	return item.entry, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)

		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd
	case debouncedMsg:
		if msg.seq != m.inputSeq {
			return m, nil
		}

		m.fetchSeq++
		m.fetch = fetchLoading

		return m, m.fetchEntries(m.fetchSeq, strings.TrimSpace(m.search.Value()))
	case entriesFetchedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}

		if msg.err != nil {
			m.fetch = fetchFailed
			m.errMsg = msg.err.Error()
			m.logger.Error("listing fetch failed", "error", msg.err)

			return m, nil
		}

		m.fetch = fetchLoaded
		m.fetched = true
		m.errMsg = ""
		m.applyEntries(msg.entries)

		return m, nil
	case savedFetchedMsg:
		// The listing stays usable when the saved lookup fails, only
		// the markers are absent.
		if msg.err != nil {
			m.logger.Warn("saved lookup failed", "error", msg.err)

			return m, nil
		}

		m.saved = map[int]bool{}
		for _, id := range msg.ids {
			m.saved[id] = true
		}

		m.applyEntries(m.currentEntries())

		return m, nil
	case detailFetchedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.state = stateBrowse

			return m, nil
		}

		m.detail = msg.detail
		m.state = stateDetail

		return m, nil
	case saveToggledMsg:
		if msg.err != nil {
			m.status = styles.err.Render("save toggle failed: " + msg.err.Error())

			return m, nil
		}

		m.saved[msg.id] = msg.nowSaved
		if !msg.nowSaved {
			delete(m.saved, msg.id)
		}

		m.applyEntries(m.currentEntries())

		return m, m.fetchSaved()
	case deletedMsg:
		if msg.err != nil {
			m.status = styles.err.Render("delete failed: " + msg.err.Error())

			return m, nil
		}

		m.status = styles.ok.Render("deleted")
		m.fetchSeq++
		m.fetch = fetchLoading

		return m, m.fetchEntries(m.fetchSeq, strings.TrimSpace(m.search.Value()))
	case createdMsg:
		if msg.err != nil {
			m.form.errMsg = msg.err.Error()

			return m, nil
		}

		m.state = stateBrowse
		m.status = styles.ok.Render("created")
		m.fetchSeq++
		m.fetch = fetchLoading

		return m, m.fetchEntries(m.fetchSeq, strings.TrimSpace(m.search.Value()))
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateCreate:
		return m.handleCreateKey(msg)
	case stateDetail:
		switch {
		case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
			m.state = stateBrowse

			return m, nil
		}

		return m, nil
	}

	if m.search.Focused() {
		switch msg.String() {
		case "esc":
			m.search.Blur()

			return m, nil
		case "enter":
			m.search.Blur()
			m.inputSeq++
			m.fetchSeq++
			m.fetch = fetchLoading

			return m, m.fetchEntries(m.fetchSeq, strings.TrimSpace(m.search.Value()))
		}

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.inputSeq++

		return m, tea.Batch(cmd, m.debounce(m.inputSeq))
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.search.Focus()

		return m, textinput.Blink
	case key.Matches(msg, m.keys.sort):
		m.descending = !m.descending
		m.applyEntries(m.currentEntries())

		return m, nil
	case key.Matches(msg, m.keys.reload):
		m.fetchSeq++
		m.fetch = fetchLoading

		return m, tea.Batch(m.fetchEntries(m.fetchSeq, strings.TrimSpace(m.search.Value())), m.fetchSaved())
	case key.Matches(msg, m.keys.open):
		if entry, ok := m.selected(); ok {
			return m, m.fetchDetail(entry.ID)
		}

		return m, nil
	case key.Matches(msg, m.keys.save):
		if entry, ok := m.selected(); ok {
			return m, m.toggleSave(entry.ID, m.saved[entry.ID])
		}

		return m, nil
	case key.Matches(msg, m.keys.add):
		if !m.cfg.Admin || m.cfg.Create == nil {
			m.status = styles.warn.Render("add requires an admin session")

			return m, nil
		}

		m.form = newCreateForm(m.cfg.FormLabels)
		m.state = stateCreate

		return m, textinput.Blink
	case key.Matches(msg, m.keys.del):
		if !m.cfg.Admin {
			m.status = styles.warn.Render("delete requires an admin session")

			return m, nil
		}

		if entry, ok := m.selected(); ok {
			return m, m.deleteEntry(entry.ID)
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateBrowse

		return m, nil
	case "tab":
		m.form.next()

		return m, nil
	case "shift+tab":
		m.form.prev()

		return m, nil
	case "enter":
		return m, m.submitCreate(m.form.values())
	}

	cmd := m.form.update(msg)

	return m, cmd
}

func (m Model) View() string {
	switch m.state {
	case stateCreate:
		return m.form.view("New " + m.cfg.Title)
	case stateDetail:
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch m.fetch {
	case fetchLoading:
		b.WriteString(fmt.Sprintf("%s loading...\n", m.spin.View()))
	case fetchFailed:
		b.WriteString(styles.err.Render("fetch failed: "+m.errMsg) + "\n")
		if m.fetched {
			b.WriteString(m.list.View())
		}
	default:
		b.WriteString(m.list.View())
	}

	if m.status != "" {
		b.WriteString("\n" + m.status)
	}

	b.WriteString("\n" + m.help.View(m.keys))

	return b.String()
}

func (m Model) detailView() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(m.detail.Name))
	b.WriteString("\n\n")

	for _, field := range m.detail.Fields {
		if field.Value == "" {
			continue
		}

		b.WriteString(styles.field.Render(field.Label+":") + " " + field.Value + "\n")
	}

	if m.saved[m.detail.ID] {
		b.WriteString("\n" + styles.saved.Render("★ saved") + "\n")
	}

	b.WriteString("\n" + styles.help.Render("esc back"))

	return b.String()
}
