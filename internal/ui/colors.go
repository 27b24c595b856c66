package ui

import "github.com/charmbracelet/lipgloss"

// palette holds the named [lipgloss.Style] values shared by every view.
type palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	saved lipgloss.Style
	field lipgloss.Style
}

var styles = func() palette {
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}

	return palette{
		title: fg("#7D56F4").Bold(true).MarginBottom(1),
		ok:    fg("#04B575").Bold(true),
		err:   fg("#FF5555").Bold(true),
		warn:  fg("#FFA500"),
		help:  fg("#626262").Italic(true),
		saved: fg("#04B575").Bold(true),
		field: fg("#626262").Bold(true),
	}
}()
