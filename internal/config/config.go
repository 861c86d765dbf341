package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/leitstand/internal/constants"
)

// WeatherConfig selects the Open-Meteo forecast location
type WeatherConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	// Cron controls how often the server refreshes the forecast
	Cron string `yaml:"cron"`
}

// AssistantConfig configures the briefing generator. The API key itself lives in the OS keyring.
type AssistantConfig struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	Endpoint    string  `yaml:"endpoint"`
}

// Config is the top-level application configuration
type Config struct {
	// Database is a SQLite file path or a postgres:// URL without embedded credentials
	Database string `yaml:"database"`

	// Timezone is the IANA zone that defines "today" (e.g. "Europe/Berlin")
	Timezone string `yaml:"timezone"`

	Listen string `yaml:"listen"`

	// RefreshCron is the cron schedule for reloading the record snapshot in serve mode
	RefreshCron string `yaml:"refresh"`

	// KioskRefresh is how often the dashboard TUI reloads records
	KioskRefresh time.Duration `yaml:"kiosk_refresh"`

	Weather   WeatherConfig   `yaml:"weather"`
	Assistant AssistantConfig `yaml:"assistant"`

	Debug bool `yaml:"debug"`

	path string `yaml:"-"`
}

// DefaultConfig returns an in-memory default configuration rooted at dir
func DefaultConfig(dir string) *Config {
	return &Config{
		Database:     filepath.Join(dir, constants.DefaultDBFileName),
		Timezone:     constants.DefaultTimezone,
		Listen:       constants.DefaultListenAddr,
		RefreshCron:  constants.DefaultRefreshCron,
		KioskRefresh: constants.KioskRefreshInterval,
		Weather: WeatherConfig{
			Enabled:   true,
			Latitude:  constants.DefaultLatitude,
			Longitude: constants.DefaultLongitude,
			Cron:      constants.DefaultWeatherCron,
		},
		Assistant: AssistantConfig{
			Model:       constants.DefaultOpenAIModel,
			Temperature: constants.DefaultOpenAITemperature,
			Endpoint:    constants.OpenAIChatCompletionsURL,
		},
	}
}

// Normalize fills in missing values so that partially written files still behave
func (c *Config) Normalize() {
	defaults := DefaultConfig(c.Dir())
	if c.Database == "" {
		c.Database = defaults.Database
	}
	if c.Timezone == "" {
		c.Timezone = defaults.Timezone
	}
	if c.Listen == "" {
		c.Listen = defaults.Listen
	}
	if c.RefreshCron == "" {
		c.RefreshCron = defaults.RefreshCron
	}
	if c.KioskRefresh <= 0 {
		c.KioskRefresh = defaults.KioskRefresh
	}
	if c.Weather.Latitude == 0 && c.Weather.Longitude == 0 {
		c.Weather.Latitude = defaults.Weather.Latitude
		c.Weather.Longitude = defaults.Weather.Longitude
	}
	if c.Weather.Cron == "" {
		c.Weather.Cron = defaults.Weather.Cron
	}
	if c.Assistant.Model == "" {
		c.Assistant.Model = defaults.Assistant.Model
	}
	if c.Assistant.Temperature <= 0 {
		c.Assistant.Temperature = defaults.Assistant.Temperature
	}
	if c.Assistant.Endpoint == "" {
		c.Assistant.Endpoint = defaults.Assistant.Endpoint
	}
}

// Validate checks values that Normalize cannot repair
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.Weather.Latitude < -90 || c.Weather.Latitude > 90 {
		return fmt.Errorf("weather latitude %v out of range", c.Weather.Latitude)
	}
	if c.Weather.Longitude < -180 || c.Weather.Longitude > 180 {
		return fmt.Errorf("weather longitude %v out of range", c.Weather.Longitude)
	}
	if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", c.RefreshCron, err)
	}
	if _, err := cron.ParseStandard(c.Weather.Cron); err != nil {
		return fmt.Errorf("invalid weather schedule %q: %w", c.Weather.Cron, err)
	}
	return nil
}

// Location resolves Timezone. "Local" and empty select the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// IsPostgres reports whether Database names a PostgreSQL server, directly
// or through the connection string stored in the keyring
func (c *Config) IsPostgres() bool {
	if c.Database == constants.KeyringDatabase {
		return true
	}
	return strings.HasPrefix(c.Database, "postgres://") || strings.HasPrefix(c.Database, "postgresql://")
}

// Path is the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Dir is the directory holding the config file; logs and backups live next to it
func (c *Config) Dir() string {
	if c.path == "" {
		return "."
	}
	return filepath.Dir(c.path)
}

// Load reads the YAML config at path. On first run it writes a default file with 0600 permissions.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	path = ExpandHome(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig(filepath.Dir(path))
			cfg.path = path
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := &Config{path: path}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Database = ExpandHome(cfg.Database)
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600 permissions
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	path = ExpandHome(path)
	cfg.path = path
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+constants.AppName+"-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// ExpandHome replaces a leading ~/ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
