package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/leitstand/internal/auth"
	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/dashboard"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/refresh"
	"github.com/julianstephens/leitstand/internal/storage"
	"github.com/julianstephens/leitstand/internal/tui/components/kiosk"
	"github.com/julianstephens/leitstand/internal/tui/components/records"
	"github.com/julianstephens/leitstand/internal/validation"
)

type SessionState int

const (
	StateKiosk SessionState = iota
	StateRecords
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab
const tabCount = 2

// Options wires the TUI to its data
type Options struct {
	Cache *refresh.Cache
	// Store is used for archive and delete; nil makes the TUI read-only
	Store    storage.Provider
	Location *time.Location
	Now      func() time.Time
	// Refresh is how often records are reloaded
	Refresh time.Duration
	// WeatherRefresh is how often the forecast is reloaded; zero disables it
	WeatherRefresh time.Duration
	Sort           dashboard.Options
	// Permissions limit the record tabs; nil shows every collection
	Permissions auth.Permissions
}

type Model struct {
	opts          Options
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	kioskModel    kiosk.Model
	recordList    records.Model
	collections   []models.Collection
	collection    int
	showArchived  bool
	pendingDelete *records.DeleteRecordMsg
	status        string
	lastError     string
	warning       string
	loadedAt      time.Time
	quitting      bool
	width         int
	height        int
}

func NewModel(opts Options) Model {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Refresh <= 0 {
		opts.Refresh = constants.KioskRefreshInterval
	}

	var colls []models.Collection
	for _, c := range models.RecordCollections {
		area, ok := auth.AreaFor(c)
		if opts.Permissions == nil || (ok && opts.Permissions.CanView(area)) {
			colls = append(colls, c)
		}
	}

	m := Model{
		opts:        opts,
		state:       StateKiosk,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		kioskModel:  kiosk.New(0, 0),
		recordList:  records.New(0, 0),
		collections: colls,
	}
	m.rebuild()
	return m
}

func (m Model) today() calendar.Day {
	return calendar.Today(m.opts.Now(), m.opts.Location)
}

func (m Model) currentCollection() models.Collection {
	if len(m.collections) == 0 {
		return ""
	}
	return m.collections[m.collection]
}

// rebuild recomputes both views from the cached snapshot
func (m *Model) rebuild() {
	snap, loadedAt := m.opts.Cache.Snapshot()
	m.loadedAt = loadedAt
	report, werr := m.opts.Cache.Weather()

	k := dashboard.Build(snap, m.opts.Now(), m.opts.Location, report, m.opts.Sort)
	if werr != nil {
		k.WeatherError = werr.Error()
	}
	m.kioskModel.SetKiosk(k)

	c := m.currentCollection()
	var recs []models.Record
	for _, rec := range snap.Records(c) {
		if rec.IsArchived() && !m.showArchived {
			continue
		}
		recs = append(recs, rec)
	}
	m.recordList.SetRecords(c, recs, m.today())

	result := validation.New().ValidateSnapshot(snap)
	m.warning = ""
	if result.HasConflicts() {
		m.warning = warningText(len(result.Conflicts))
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	if m.state == StateRecords {
		keys = append(keys, m.keys.Left, m.keys.Right, m.keys.Archived)
		if m.opts.Store != nil {
			keys = append(keys, m.keys.Archive, m.keys.Delete)
		}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	if m.state == StateRecords {
		actions = []key.Binding{m.keys.Archived}
		if m.opts.Store != nil {
			actions = append(actions, m.keys.Archive, m.keys.Delete)
		}
	}

	return [][]key.Binding{global, navigation, actions}
}

type tickMsg time.Time

type weatherTickMsg time.Time

type refreshedMsg struct {
	err error
}

type weatherMsg struct {
	err error
}

type actionMsg struct {
	status string
	err    error
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) weatherTick() tea.Cmd {
	if m.opts.WeatherRefresh <= 0 {
		return nil
	}
	return tea.Tick(m.opts.WeatherRefresh, func(t time.Time) tea.Msg {
		return weatherTickMsg(t)
	})
}

func (m Model) reload() tea.Cmd {
	cache := m.opts.Cache
	return func() tea.Msg {
		return refreshedMsg{err: cache.Refresh()}
	}
}

func (m Model) reloadWeather() tea.Cmd {
	if m.opts.WeatherRefresh <= 0 {
		return nil
	}
	cache := m.opts.Cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return weatherMsg{err: cache.RefreshWeather(ctx)}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.reloadWeather(), m.tick(), m.weatherTick())
}
