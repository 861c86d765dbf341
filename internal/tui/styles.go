package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette of the record overview; the kiosk page brings its own
const (
	colorAccent = lipgloss.Color("33")
	colorTabBg  = lipgloss.Color("236")
	colorMuted  = lipgloss.Color("244")
	colorAlarm  = lipgloss.Color("160")
	colorNotice = lipgloss.Color("214")
)

var (
	activeTabStyle   = lipgloss.NewStyle().Foreground(colorAccent).Background(colorTabBg).Bold(true).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	dangerStyle  = lipgloss.NewStyle().Foreground(colorAlarm).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorNotice).Italic(true)
	statusStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// warningText is the status-bar hint for validation problems
func warningText(n int) string {
	return fmt.Sprintf("⚠ %d Datenproblem(e), siehe 'leitstand validate'", n)
}
