package system

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/leitstand/internal/auth"
	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/dashboard"
	"github.com/julianstephens/leitstand/internal/lockfile"
	"github.com/julianstephens/leitstand/internal/logger"
	"github.com/julianstephens/leitstand/internal/storage"
	"github.com/julianstephens/leitstand/internal/tui"
)

type DashboardCmd struct {
	Sort     string `help:"Roadwork order (startDate, endDate, status)." default:"startDate"`
	Desc     bool   `help:"Sort roadworks in descending order."`
	ReadOnly bool   `help:"Disable archive and delete."`
	User     string `short:"u" help:"Show only the record tabs this account may view."`
}

func (c *DashboardCmd) options(ctx *cli.Context) (tui.Options, error) {
	sortBy, err := dashboard.ParseSortField(c.Sort)
	if err != nil {
		return tui.Options{}, err
	}
	cfg := settings(ctx)

	opts := tui.Options{
		Cache:    newCache(ctx),
		Store:    ctx.Store,
		Location: ctx.Location(),
		Now:      ctx.Now,
		Refresh:  cfg.KioskRefresh,
		Sort:     dashboard.Options{SortBy: sortBy, Desc: c.Desc},
	}
	if cfg.Weather.Enabled {
		opts.WeatherRefresh = constants.WeatherRefreshInterval
	}
	if c.ReadOnly {
		opts.Store = nil
	}
	if c.User != "" {
		user, err := storage.FindUser(ctx.Store, c.User)
		if err != nil {
			return tui.Options{}, err
		}
		opts.Permissions = auth.ForUser(user)
	}
	return opts, nil
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	cfg := settings(ctx)
	// Port 0 marks the kiosk lock; it serves nothing
	lock, err := lockfile.Acquire(lockfile.Path(cfg.Dir(), constants.KioskLockfileName), 0)
	if err != nil {
		if errors.Is(err, lockfile.ErrAlreadyRunning) {
			return fmt.Errorf("the dashboard is already open: %w", err)
		}
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release lockfile", "path", lock.Path(), "error", err)
		}
	}()

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()
	ctx.PerformAutomaticBackup()

	opts, err := c.options(ctx)
	if err != nil {
		return err
	}
	if err := opts.Cache.Refresh(); err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
