package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/leitstand/internal/backup"
	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/storage"
	"github.com/julianstephens/leitstand/internal/storage/postgres"
	"github.com/julianstephens/leitstand/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out}, &out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "Backup created") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("backup list should show one backup:\n%s", out.String())
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	id, err := storage.SaveRecord(ctx.Store, models.CollectionTodos, &models.Todo{Title: "Vor dem Backup"})
	if err != nil {
		t.Fatalf("SaveRecord() failed: %v", err)
	}
	info, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := ctx.Store.Delete(models.CollectionTodos, id); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if err := (&BackupRestoreCmd{BackupFile: info.Name(), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "restored successfully") {
		t.Errorf("output = %q", out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("Load() after restore failed: %v", err)
	}
	if _, err := storage.GetRecord(ctx.Store, models.CollectionTodos, id); err != nil {
		t.Errorf("record from the backup should be live again: %v", err)
	}
}

func TestBackupRestoreCmd_Cancelled(t *testing.T) {
	ctx, out := setupTestContext(t)
	info, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	ctx.Confirm = func(string) (bool, error) { return false, nil }
	if err := (&BackupRestoreCmd{BackupFile: info.Name()}).Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled") {
		t.Errorf("output = %q", out.String())
	}
}

func TestBackupRestoreCmd_Missing(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&BackupRestoreCmd{BackupFile: "leitstand-missing.db", Yes: true}).Run(ctx); err == nil {
		t.Error("restoring a missing backup should fail")
	}
}

func TestBackupsRequireSQLite(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("postgres://leitstand@localhost/leitstand"), Out: &bytes.Buffer{}}

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("backup create should refuse PostgreSQL storage")
	}
}
