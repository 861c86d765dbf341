package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leitstand", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config permissions = %o, want 600", perm)
	}

	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q, want Europe/Berlin", cfg.Timezone)
	}
	if cfg.Database != filepath.Join(filepath.Dir(path), "leitstand.db") {
		t.Errorf("Database = %q, want file next to config", cfg.Database)
	}
	if cfg.KioskRefresh != 30*time.Second {
		t.Errorf("KioskRefresh = %v, want 30s", cfg.KioskRefresh)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "timezone: UTC\nweather:\n  enabled: false\nassistant:\n  model: gpt-4o\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
	if cfg.Weather.Enabled {
		t.Error("Weather.Enabled = true, want false from file")
	}
	if cfg.Weather.Latitude != 50.609 || cfg.Weather.Longitude != 10.694 {
		t.Errorf("weather coords = %v/%v, want Suhl defaults", cfg.Weather.Latitude, cfg.Weather.Longitude)
	}
	if cfg.Assistant.Model != "gpt-4o" {
		t.Errorf("Assistant.Model = %q, want gpt-4o", cfg.Assistant.Model)
	}
	if cfg.Assistant.Temperature != 0.4 {
		t.Errorf("Assistant.Temperature = %v, want 0.4", cfg.Assistant.Temperature)
	}
	if cfg.RefreshCron == "" || cfg.Listen == "" {
		t.Error("Normalize() left RefreshCron or Listen empty")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig(filepath.Dir(path))
	cfg.Database = "postgres://leitstand@db.internal:5432/leitstand"
	cfg.Listen = ":9090"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !loaded.IsPostgres() {
		t.Error("IsPostgres() = false, want true")
	}
	if loaded.Listen != ":9090" {
		t.Errorf("Listen = %q, want :9090", loaded.Listen)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "local timezone", mutate: func(c *Config) { c.Timezone = "Local" }},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "bad latitude", mutate: func(c *Config) { c.Weather.Latitude = 123 }, wantErr: true},
		{name: "hourly refresh", mutate: func(c *Config) { c.RefreshCron = "@hourly" }},
		{name: "bad refresh schedule", mutate: func(c *Config) { c.RefreshCron = "every five minutes" }, wantErr: true},
		{name: "bad weather schedule", mutate: func(c *Config) { c.Weather.Cron = "*/15 * *" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(t.TempDir())
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
