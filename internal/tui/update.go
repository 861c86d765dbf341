package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/leitstand/internal/logger"
	"github.com/julianstephens/leitstand/internal/tui/components/records"
)

// chromeHeight is the space taken by tabs, status line and help
const chromeHeight = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w, h := docStyle.GetFrameSize()
		m.kioskModel.SetSize(msg.Width-w, msg.Height-h-chromeHeight)
		m.recordList.SetSize(msg.Width-w, msg.Height-h-chromeHeight)
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.reload(), m.tick())

	case weatherTickMsg:
		return m, tea.Batch(m.reloadWeather(), m.weatherTick())

	case refreshedMsg:
		if msg.err != nil {
			logger.Warn("Dashboard reload failed", "error", msg.err)
			m.lastError = msg.err.Error()
		} else {
			m.lastError = ""
		}
		m.rebuild()
		return m, nil

	case weatherMsg:
		if msg.err != nil {
			logger.Warn("Dashboard weather reload failed", "error", msg.err)
		}
		m.rebuild()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.lastError = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, m.reload()

	case records.ArchiveRecordMsg:
		if m.opts.Store == nil {
			return m, nil
		}
		store := m.opts.Store
		return m, func() tea.Msg {
			if err := store.SetArchived(msg.Collection, msg.ID, msg.Archived); err != nil {
				return actionMsg{err: err}
			}
			verb := "archiviert"
			if !msg.Archived {
				verb = "wiederhergestellt"
			}
			return actionMsg{status: fmt.Sprintf("%s %s", msg.ID, verb)}
		}

	case records.DeleteRecordMsg:
		if m.opts.Store == nil {
			return m, nil
		}
		pending := msg
		m.pendingDelete = &pending
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		if m.state == StateConfirmDelete {
			return m.updateConfirmDelete(msg)
		}
		filtering := m.state == StateRecords && m.recordList.Filtering()
		if !filtering {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Tab):
				m.state = (m.state + 1) % tabCount
				return m, nil
			case key.Matches(msg, m.keys.ShiftTab):
				m.state = (m.state - 1 + tabCount) % tabCount
				return m, nil
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, m.keys.Refresh):
				return m, tea.Batch(m.reload(), m.reloadWeather())
			}
		}
		if m.state == StateRecords && !filtering {
			switch {
			case key.Matches(msg, m.keys.Left):
				m.switchCollection(-1)
				return m, nil
			case key.Matches(msg, m.keys.Right):
				m.switchCollection(1)
				return m, nil
			case key.Matches(msg, m.keys.Archived):
				m.showArchived = !m.showArchived
				m.rebuild()
				return m, nil
			}
			if m.opts.Store == nil && (key.Matches(msg, m.keys.Archive) || key.Matches(msg, m.keys.Delete)) {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateKiosk:
		m.kioskModel, cmd = m.kioskModel.Update(msg)
	case StateRecords:
		m.recordList, cmd = m.recordList.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchCollection(delta int) {
	if len(m.collections) == 0 {
		return
	}
	m.collection = (m.collection + delta + len(m.collections)) % len(m.collections)
	m.rebuild()
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		pending := m.pendingDelete
		m.pendingDelete = nil
		m.state = m.previousState
		if pending == nil {
			return m, nil
		}
		store := m.opts.Store
		return m, func() tea.Msg {
			if err := store.Delete(pending.Collection, pending.ID); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: fmt.Sprintf("%s gelöscht (wiederherstellbar mit 'leitstand record restore')", pending.ID)}
		}
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.pendingDelete = nil
		m.state = m.previousState
	}
	return m, nil
}
