package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/julianstephens/leitstand/internal/backup"
	"github.com/julianstephens/leitstand/internal/briefing"
	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/config"
	"github.com/julianstephens/leitstand/internal/constants"
	apperrors "github.com/julianstephens/leitstand/internal/errors"
	"github.com/julianstephens/leitstand/internal/keyring"
	"github.com/julianstephens/leitstand/internal/logger"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/storage"
	"github.com/julianstephens/leitstand/internal/storage/postgres"
	"github.com/julianstephens/leitstand/internal/storage/sqlite"
	"github.com/julianstephens/leitstand/internal/weather"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
	// Now is the clock every command derives "today" from
	Now func() time.Time
	Out io.Writer
	// Confirm asks a yes/no question; nil uses an interactive huh prompt
	Confirm func(title string) (bool, error)
}

// NewContext opens the store configured in cfg
func NewContext(cfg *config.Config) (*Context, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	return &Context{
		Store:  store,
		Config: cfg,
		Now:    time.Now,
		Out:    os.Stdout,
	}, nil
}

// OpenStore selects the backend for cfg.Database: a PostgreSQL URI or DSN,
// the keyring sentinel, or a SQLite file path
func OpenStore(cfg *config.Config) (storage.Provider, error) {
	database := cfg.Database
	if database == constants.KeyringDatabase {
		connStr, err := keyring.Get(keyring.ConnectionString)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string found in keyring, run 'leitstand key set database' first")
			}
			return nil, err
		}
		// Secrets in the keyring may carry a password; they never reach the config file.
		if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil
	}

	if postgres.IsConnString(database) {
		if err := postgres.ValidateConnString(database); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed, store it with 'leitstand key set database' and set database: %s", constants.KeyringDatabase)
			}
			return nil, err
		}
		return postgres.New(database), nil
	}

	return sqlite.NewStore(database), nil
}

// Location is the configured timezone, falling back to the system zone
func (c *Context) Location() *time.Location {
	if c.Config != nil {
		if loc, err := c.Config.Location(); err == nil {
			return loc
		}
	}
	return time.Local
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Today is the current calendar day in the configured timezone
func (c *Context) Today() calendar.Day {
	return calendar.Today(c.now(), c.Location())
}

// Time is the current instant in the configured timezone
func (c *Context) Time() time.Time {
	return c.now().In(c.Location())
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes to the command output
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Println writes a line to the command output
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Snapshot loads every record collection
func (c *Context) Snapshot() (*models.Snapshot, error) {
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	return storage.LoadSnapshot(c.Store)
}

// AskConfirm asks title unless assumeYes is set. Without a terminal and
// without a Confirm hook the answer is no.
func (c *Context) AskConfirm(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if c.Confirm != nil {
		return c.Confirm(title)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("confirmation required, rerun with --yes")
	}

	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Ja").
		Negative("Nein").
		Value(&confirmed).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// Assistant builds the briefing client from the config and the API key in the keyring
func (c *Context) Assistant() (*briefing.Client, error) {
	apiKey, err := keyring.Get(keyring.OpenAIKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, briefing.ErrNoAPIKey
		}
		return nil, err
	}
	opts := briefing.Options{APIKey: apiKey}
	if c.Config != nil {
		opts.Endpoint = c.Config.Assistant.Endpoint
		opts.Model = c.Config.Assistant.Model
		opts.Temperature = c.Config.Assistant.Temperature
	}
	return briefing.NewClient(opts), nil
}

// WeatherClient returns the forecast client for the configured coordinates,
// or nil when weather is disabled
func (c *Context) WeatherClient() *weather.Client {
	if c.Config == nil {
		return weather.NewClient(constants.DefaultLatitude, constants.DefaultLongitude, c.Location())
	}
	if !c.Config.Weather.Enabled {
		return nil
	}
	return weather.NewClient(c.Config.Weather.Latitude, c.Config.Weather.Longitude, c.Location())
}

// PerformAutomaticBackup creates an automatic backup of a SQLite store and logs failures
func (c *Context) PerformAutomaticBackup() {
	if c.Config != nil && c.Config.IsPostgres() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseCollection resolves a collection argument, accepting the German label too
func ParseCollection(name string) (models.Collection, error) {
	if c, err := models.ParseCollection(name); err == nil {
		return c, nil
	}
	for _, c := range append(models.RecordCollections, models.CollectionUsers) {
		if c.Label() == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownCollection, name)
}

// ParseDay parses a YYYY-MM-DD argument; "today" and empty use the current day
func (c *Context) ParseDay(s string) (calendar.Day, error) {
	if s == "" || s == "today" {
		return c.Today(), nil
	}
	d, ok := calendar.ParseIn(s, c.Location())
	if !ok {
		return calendar.Day{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or 'today')", s)
	}
	return d, nil
}
