package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/leitstand/internal/tui/components/records"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateKiosk:
		content = docStyle.Render(m.kioskModel.View())
	case StateRecords:
		content = docStyle.Render(m.recordList.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	titles := []string{"Fahrdienst", "Datensätze"}
	if c := m.currentCollection(); c != "" {
		titles[1] = "Datensätze: " + c.Label()
	}
	var tabs []string
	for i, title := range titles {
		if m.state == SessionState(i) || (m.state == StateConfirmDelete && m.previousState == SessionState(i)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	var parts []string
	if !m.loadedAt.IsZero() {
		parts = append(parts, "Stand "+m.loadedAt.In(m.opts.Location).Format("15:04:05"))
	}
	if m.showArchived {
		parts = append(parts, "inkl. archiviert")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	line := statusStyle.Render(strings.Join(parts, " | "))
	if m.warning != "" {
		line += "  " + warningStyle.Render(m.warning)
	}
	if m.lastError != "" {
		line += "  " + dangerStyle.Render("Fehler: "+m.lastError)
	}
	return line
}

func (m Model) viewConfirmDelete() string {
	label := ""
	if m.pendingDelete != nil {
		label = m.pendingDelete.ID
		for _, it := range m.recordList.Items() {
			if i, ok := it.(records.Item); ok && i.Record.RecordID() == m.pendingDelete.ID {
				label = records.Summary(i.Record)
			}
		}
	}
	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Eintrag wirklich löschen?"),
			label,
			"",
			"[y] Ja",
			"[n] Nein",
		),
	)
}
