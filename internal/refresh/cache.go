// Package refresh keeps the server's record snapshot and weather report
// current on a cron schedule.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/leitstand/internal/logger"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/weather"
)

// LoadFunc reads a fresh snapshot from storage
type LoadFunc func() (*models.Snapshot, error)

// WeatherSource fetches the current forecast
type WeatherSource interface {
	Fetch(ctx context.Context, now time.Time) (*weather.Report, error)
}

// Listener is called with every successfully loaded snapshot
type Listener func(s *models.Snapshot, loadedAt time.Time)

// Cache holds the latest snapshot and weather report behind a RWMutex
type Cache struct {
	load    LoadFunc
	weather WeatherSource
	now     func() time.Time

	mu         sync.RWMutex
	snapshot   *models.Snapshot
	loadedAt   time.Time
	report     *weather.Report
	weatherErr error
	listeners  []Listener
}

// New creates a cache. src may be nil when weather is disabled.
func New(load LoadFunc, src WeatherSource) *Cache {
	return &Cache{
		load:     load,
		weather:  src,
		now:      time.Now,
		snapshot: &models.Snapshot{},
	}
}

// OnRefresh registers fn to run after every successful snapshot reload
func (c *Cache) OnRefresh(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Refresh reloads the snapshot. On failure the previous snapshot stays in place.
func (c *Cache) Refresh() error {
	s, err := c.load()
	if err != nil {
		return fmt.Errorf("failed to reload records: %w", err)
	}
	at := c.now()

	c.mu.Lock()
	c.snapshot = s
	c.loadedAt = at
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(s, at)
	}
	logger.Debug("Snapshot refreshed", "records", s.Len())
	return nil
}

// RefreshWeather fetches a new report. A failed fetch keeps the last good
// report and records the error for display.
func (c *Cache) RefreshWeather(ctx context.Context) error {
	if c.weather == nil {
		return nil
	}
	report, err := c.weather.Fetch(ctx, c.now())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.weatherErr = err
	if err != nil {
		return fmt.Errorf("failed to fetch weather: %w", err)
	}
	c.report = report
	return nil
}

// Snapshot returns the current snapshot and when it was loaded
func (c *Cache) Snapshot() (*models.Snapshot, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot, c.loadedAt
}

// Weather returns the last good report and the error of the latest fetch
func (c *Cache) Weather() (*weather.Report, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report, c.weatherErr
}

// Schedule describes when the cache refreshes itself
type Schedule struct {
	Snapshot string
	// Weather is skipped when empty
	Weather string
	// Timeout bounds each weather fetch
	Timeout time.Duration
}

// Start performs an initial refresh and then runs the cron schedule until
// ctx is cancelled. The returned function stops the scheduler and waits for
// running jobs.
func (c *Cache) Start(ctx context.Context, sched Schedule) (func(), error) {
	cl := cronLogger{}
	runner := cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)), cron.WithLogger(cl))

	if _, err := runner.AddFunc(sched.Snapshot, func() {
		if err := c.Refresh(); err != nil {
			logger.Error("Scheduled snapshot refresh failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", sched.Snapshot, err)
	}

	timeout := sched.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	fetch := func() {
		fctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := c.RefreshWeather(fctx); err != nil {
			logger.Warn("Weather refresh failed", "error", err)
		}
	}
	if sched.Weather != "" && c.weather != nil {
		if _, err := runner.AddFunc(sched.Weather, fetch); err != nil {
			return nil, fmt.Errorf("invalid weather schedule %q: %w", sched.Weather, err)
		}
	}

	if err := c.Refresh(); err != nil {
		logger.Error("Initial snapshot load failed", "error", err)
	}
	if c.weather != nil {
		go fetch()
	}

	runner.Start()
	var once sync.Once
	stop := func() {
		once.Do(func() {
			<-runner.Stop().Done()
		})
	}
	go func() {
		<-ctx.Done()
		stop()
	}()
	return stop, nil
}

// cronLogger routes cron's own messages to the application logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
