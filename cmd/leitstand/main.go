package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/cli/backups"
	"github.com/julianstephens/leitstand/internal/cli/records"
	"github.com/julianstephens/leitstand/internal/cli/reports"
	"github.com/julianstephens/leitstand/internal/cli/system"
	"github.com/julianstephens/leitstand/internal/cli/users"
	"github.com/julianstephens/leitstand/internal/config"
	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/errors"
	"github.com/julianstephens/leitstand/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config}"`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Init      system.InitCmd      `cmd:"" help:"Initialize leitstand storage."`
	Migrate   system.MigrateCmd   `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Dashboard system.DashboardCmd `cmd:"" help:"Open the kiosk dashboard." default:"1"`
	Serve     system.ServeCmd     `cmd:"" help:"Run the HTTP API with scheduled refresh."`
	Validate  system.ValidateCmd  `cmd:"" help:"Check stored records for data problems."`
	Debug     system.DebugCmd     `cmd:"" help:"Debug commands for troubleshooting."`
	Record    struct {
		Add       records.RecordAddCmd       `cmd:"" help:"Add or update a record from JSON."`
		List      records.RecordListCmd      `cmd:"" help:"List the records of a collection."`
		Show      records.RecordShowCmd      `cmd:"" help:"Show one record with its traffic light."`
		Archive   records.RecordArchiveCmd   `cmd:"" help:"Archive a record."`
		Unarchive records.RecordUnarchiveCmd `cmd:"" help:"Unarchive a record."`
		Delete    records.RecordDeleteCmd    `cmd:"" help:"Delete a record."`
		Restore   records.RecordRestoreCmd   `cmd:"" help:"Restore a deleted record."`
	} `cmd:"" help:"Manage records."`
	Lights   reports.LightsCmd   `cmd:"" help:"Show traffic-light counts per area."`
	Calendar reports.CalendarCmd `cmd:"" help:"Show calendar entries or export them as iCalendar."`
	Briefing reports.BriefingCmd `cmd:"" help:"Build and generate the daily briefing."`
	Weather  reports.WeatherCmd  `cmd:"" help:"Show the weather forecast."`
	User     struct {
		Add    users.UserAddCmd    `cmd:"" help:"Add a user account."`
		List   users.UserListCmd   `cmd:"" help:"List user accounts."`
		Passwd users.UserPasswdCmd `cmd:"" help:"Change a user's password."`
		Remove users.UserRemoveCmd `cmd:"" help:"Remove a user account."`
	} `cmd:"" help:"Manage user accounts."`
	Key struct {
		Set    system.KeySetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Delete system.KeyDeleteCmd `cmd:"" help:"Delete a secret from the OS keyring."`
		Status system.KeyStatusCmd `cmd:"" help:"Show keyring availability and stored secrets."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Leitstand - Verkehrsleitung dashboard with traffic-light records, calendar and briefing"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		errors.Fatal(fmt.Errorf("invalid config %s: %w", cfg.Path(), err))
	}

	command := ctx.Command()
	if err := logger.Init(logger.Config{
		Debug:     CLI.Verbose || cfg.Debug,
		ConfigDir: cfg.Dir(),
		Quiet:     command == "dashboard",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := &cli.Context{
		Config: cfg,
		Now:    time.Now,
		Out:    os.Stdout,
	}
	// Keyring commands must work before the database they unlock is reachable
	store, err := cli.OpenStore(cfg)
	if err != nil && !strings.HasPrefix(command, "key") {
		errors.Fatal(err)
	}
	appCtx.Store = store

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
