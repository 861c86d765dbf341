package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding of the dashboard. Model decides per tab which
// of them show up in the help bar.
type KeyMap struct {
	Tab, ShiftTab key.Binding
	Quit, Help    key.Binding
	Refresh       key.Binding

	Up, Down    key.Binding
	Left, Right key.Binding

	Archived, Archive, Delete key.Binding
	Confirm, Cancel           key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab:      bind("tab", "nächste Ansicht", "tab"),
		ShiftTab: bind("shift+tab", "vorherige Ansicht", "shift+tab"),
		Quit:     bind("q", "beenden", "q", "ctrl+c"),
		Help:     bind("?", "Hilfe", "?"),
		Refresh:  bind("r", "neu laden", "r"),

		Up:    bind("↑/k", "hoch", "up", "k"),
		Down:  bind("↓/j", "runter", "down", "j"),
		Left:  bind("h", "vorheriger Bereich", "h", "left"),
		Right: bind("l", "nächster Bereich", "l", "right"),

		Archived: bind("x", "Archiv ein/aus", "x"),
		Archive:  bind("a", "archivieren", "a"),
		Delete:   bind("d", "löschen", "d"),
		Confirm:  bind("y", "ja", "y", "j"),
		Cancel:   bind("n", "nein", "n", "esc"),
	}
}
