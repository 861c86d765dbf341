package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/leitstand/internal/auth"
	"github.com/julianstephens/leitstand/internal/backup"
	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/keyring"
	"github.com/julianstephens/leitstand/internal/storage"
	"github.com/julianstephens/leitstand/internal/storage/sqlite"
	"github.com/julianstephens/leitstand/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks never fail the run
	warnOnly bool
	run      func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	checks := []check{
		{name: "Migrations complete", run: checkMigrationsComplete},
		{name: "Data validation", run: checkValidation},
		{name: "User accounts", warnOnly: true, run: checkUsers},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "OpenAI key", warnOnly: true, run: checkAssistantKey},
	}
	for _, chk := range checks {
		if !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", chk.name)
			continue
		}
		err := chk.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", chk.name)
		case chk.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", chk.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", chk.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	if err := checkClockTimezone(ctx); err != nil {
		ctx.Printf("❌ Clock/timezone: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Clock/timezone: OK\n")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	pending, err := m.PendingMigrations()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("%d migration(s) pending, run 'leitstand migrate'", pending)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	snap, err := storage.LoadSnapshot(ctx.Store)
	if err != nil {
		return err
	}
	result := validation.Check(snap)
	if result.HasErrors() {
		return fmt.Errorf("%d error(s), run 'leitstand validate' for details", countErrors(result))
	}
	return nil
}

func checkUsers(ctx *cli.Context) error {
	users, err := storage.Users(ctx.Store)
	if err != nil {
		return err
	}
	for _, u := range users {
		if auth.Role(u.Role) == auth.RoleAdmin && !u.IsArchived() {
			return nil
		}
	}
	return fmt.Errorf("no admin account found - create one with 'leitstand user add <name> --role admin'")
}

func checkBackupsPresent(ctx *cli.Context) error {
	s, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	backups, err := backup.NewManager(s.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'leitstand backup create'")
	}
	return nil
}

func checkAssistantKey(*cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if _, err := keyring.Get(keyring.OpenAIKey); err != nil {
		return fmt.Errorf("briefings are unavailable until 'leitstand key set openai' is run")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Time()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil {
		if _, err := ctx.Config.Location(); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", ctx.Config.Timezone, err)
		}
	}
	if now.Location() == time.UTC {
		ctx.Printf("   Note: timezone is UTC, traffic lights switch at midnight UTC\n")
	}
	return nil
}
