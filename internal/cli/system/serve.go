package system

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/config"
	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/lockfile"
	"github.com/julianstephens/leitstand/internal/logger"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/refresh"
	"github.com/julianstephens/leitstand/internal/storage"
	"github.com/julianstephens/leitstand/internal/web"
)

type ServeCmd struct {
	Listen string `help:"Listen address, overrides the config (host:port)."`
}

// settings returns the loaded config or the defaults beside the working directory
func settings(ctx *cli.Context) *config.Config {
	if ctx.Config != nil {
		return ctx.Config
	}
	return config.DefaultConfig(".")
}

func listenPort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return 0, fmt.Errorf("invalid listen port %q", portStr)
	}
	return port, nil
}

// newCache builds a snapshot cache over the context's store
func newCache(ctx *cli.Context) *refresh.Cache {
	var src refresh.WeatherSource
	if wc := ctx.WeatherClient(); wc != nil {
		src = wc
	}
	return refresh.New(func() (*models.Snapshot, error) {
		return storage.LoadSnapshot(ctx.Store)
	}, src)
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	cfg := settings(ctx)
	addr := cfg.Listen
	if c.Listen != "" {
		addr = c.Listen
	}
	port, err := listenPort(addr)
	if err != nil {
		return err
	}

	lock, err := lockfile.Acquire(lockfile.Path(cfg.Dir(), constants.ServerLockfileName), port)
	if err != nil {
		if errors.Is(err, lockfile.ErrAlreadyRunning) {
			return fmt.Errorf("another leitstand server is already running: %w", err)
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

	// Server start and shutdown are logged at info level
	logger.EnsureLevel(log.InfoLevel)

	cache := newCache(ctx)
	opts := web.Options{
		Cache:    cache,
		Users:    func() ([]models.User, error) { return storage.Users(ctx.Store) },
		Location: ctx.Location(),
		Now:      ctx.Now,
	}
	if assistant, err := ctx.Assistant(); err == nil {
		opts.Assistant = assistant
	} else {
		logger.Info("Briefing generation disabled", "reason", err)
	}
	srv := web.NewServer(opts)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := refresh.Schedule{Snapshot: cfg.RefreshCron}
	if cfg.Weather.Enabled {
		sched.Weather = cfg.Weather.Cron
	}
	stopRefresh, err := cache.Start(runCtx, sched)
	if err != nil {
		return err
	}
	defer stopRefresh()

	ctx.Printf("Serving leitstand on http://%s (Ctrl+C to stop)\n", addr)
	return srv.Run(runCtx, addr)
}
