package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the browser.
type keyMap struct {
	search key.Binding
	sort   key.Binding
	save   key.Binding
	open   key.Binding
	add    key.Binding
	del    key.Binding
	reload key.Binding
	back   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		sort:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort order")),
		save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save/unsave")),
		open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		del:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.save, k.open, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.search, k.sort, k.reload},
		{k.save, k.open, k.back},
		{k.add, k.del, k.quit},
	}
}
