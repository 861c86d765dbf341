package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/storage"
	"github.com/julianstephens/leitstand/internal/storage/postgres"
	"github.com/julianstephens/leitstand/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return fmt.Errorf("--force is only supported for SQLite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	setMigrationLog(ctx)
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized leitstand storage at: %s\n", ctx.Store.GetConfigPath())

	users, err := storage.Users(ctx.Store)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		ctx.Println("Create the first account with: leitstand user add <username> --role admin")
	}
	return nil
}

// setMigrationLog prints migration progress of either backend
func setMigrationLog(ctx *cli.Context) {
	logFn := func(msg string) { ctx.Println(msg) }
	switch s := ctx.Store.(type) {
	case *sqlite.Store:
		s.Log = logFn
	case *postgres.Store:
		s.Log = logFn
	}
}

type migrator interface {
	Migrate() error
	PendingMigrations() (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}
	setMigrationLog(ctx)

	// Load only rejects databases migrated by a newer release
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	pending, err := m.PendingMigrations()
	if err != nil {
		return err
	}
	if pending == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
		return nil
	}

	if _, ok := ctx.Store.(*sqlite.Store); ok {
		ctx.PerformAutomaticBackup()
	}
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	ctx.Printf("\nSuccessfully applied %d migration(s).\n", pending)
	return nil
}
