package records

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/trafficlight"
)

type ArchiveRecordMsg struct {
	Collection models.Collection
	ID         string
	Archived   bool
}

type DeleteRecordMsg struct {
	Collection models.Collection
	ID         string
}

type Item struct {
	Record models.Record
	Light  trafficlight.Light
}

func (i Item) Title() string {
	title := Summary(i.Record)
	if i.Record.IsArchived() {
		title += " (archiviert)"
	}
	return Dot(i.Light) + " " + title
}

func (i Item) Description() string {
	desc := Dates(i.Record)
	if tip := i.Light.Tooltip(); tip != "" {
		desc += " | " + tip
	}
	return desc
}

func (i Item) FilterValue() string { return Summary(i.Record) }

// Dot renders the traffic light as a colored bullet
func Dot(l trafficlight.Light) string {
	if l == trafficlight.None {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color())).Render("●")
}

// Summary is the one-line label of a record
func Summary(rec models.Record) string {
	switch r := rec.(type) {
	case *models.Absence:
		return fmt.Sprintf("PN %s (%s)", r.PersonnelNumber, r.Type)
	case *models.Roadwork:
		if len(r.Lines) > 0 {
			return fmt.Sprintf("%s [Linie %s]", r.Title, r.Lines.String())
		}
		return r.Title
	case *models.CharterTrip:
		return r.Label
	case *models.Appointment:
		return r.Title
	case *models.MedicalAppointment:
		return "Betriebsarzt PN " + r.PersonalNumber
	case *models.Todo:
		if r.Done {
			return "✓ " + r.Title
		}
		return r.Title
	case *models.Training:
		return r.Title
	case *models.Notice:
		return r.Title
	case *models.ServiceMessage:
		return r.Title
	default:
		return rec.RecordID()
	}
}

func display(s string) string {
	if d, ok := calendar.Parse(s); ok {
		return d.Display()
	}
	if s == "" {
		return "-"
	}
	return s
}

func span(from, to string) string {
	if to == "" || to == from {
		return display(from)
	}
	return display(from) + " – " + display(to)
}

// Dates formats the date fields of a record for display
func Dates(rec models.Record) string {
	switch r := rec.(type) {
	case *models.Absence:
		s := span(r.StartDate, r.EndDate)
		if r.ReturnDate != "" {
			s += " | zurück " + display(r.ReturnDate)
		}
		return s
	case *models.Roadwork:
		return span(r.StartDate, r.EndDate) + " | " + string(r.Status)
	case *models.CharterTrip:
		return strings.TrimSpace(display(r.Date) + " " + r.OutboundTime)
	case *models.Appointment:
		return strings.TrimSpace(display(r.Day()) + " " + r.TimeFrom)
	case *models.MedicalAppointment:
		return strings.TrimSpace(display(r.Date) + " " + r.Time)
	case *models.Todo:
		return "fällig " + display(r.DueDate)
	case *models.Training:
		return span(r.DateFrom, r.DateTo)
	case *models.Notice:
		return span(r.ValidFrom, r.ValidTo)
	case *models.ServiceMessage:
		return string(r.Type) + " | " + span(r.ValidFrom, r.ValidTo)
	default:
		return ""
	}
}

type KeyMap struct {
	Archive key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Archive: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "archive/unarchive"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	collection models.Collection
	list       list.Model
	keys       KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Archive, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Archive, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

// SetRecords replaces the list with recs classified against today
func (m *Model) SetRecords(c models.Collection, recs []models.Record, today calendar.Day) {
	m.collection = c
	items := make([]list.Item, len(recs))
	for i, rec := range recs {
		items[i] = Item{Record: rec, Light: trafficlight.Classify(rec, today)}
	}
	m.list.SetItems(items)
}

func (m Model) Collection() models.Collection { return m.collection }

func (m Model) Items() []list.Item { return m.list.Items() }

// Filtering reports whether the user is typing a filter
func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Archive):
			if i, ok := m.Selected(); ok {
				c := m.collection
				return m, func() tea.Msg {
					return ArchiveRecordMsg{Collection: c, ID: i.Record.RecordID(), Archived: !i.Record.IsArchived()}
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok {
				c := m.collection
				return m, func() tea.Msg { return DeleteRecordMsg{Collection: c, ID: i.Record.RecordID()} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Keine Einträge in " + m.collection.Label() + "."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
