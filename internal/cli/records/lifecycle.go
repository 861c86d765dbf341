package records

import (
	"fmt"

	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/storage"
	recview "github.com/julianstephens/leitstand/internal/tui/components/records"
)

type RecordArchiveCmd struct {
	Collection string `arg:"" help:"Collection of the record."`
	ID         string `arg:"" help:"Record ID."`
}

func (c *RecordArchiveCmd) Run(ctx *cli.Context) error {
	return setArchived(ctx, c.Collection, c.ID, true)
}

type RecordUnarchiveCmd struct {
	Collection string `arg:"" help:"Collection of the record."`
	ID         string `arg:"" help:"Record ID."`
}

func (c *RecordUnarchiveCmd) Run(ctx *cli.Context) error {
	return setArchived(ctx, c.Collection, c.ID, false)
}

func setArchived(ctx *cli.Context, name, id string, archived bool) error {
	coll, err := collection(name)
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.SetArchived(coll, id, archived); err != nil {
		return fmt.Errorf("failed to update %s record %s: %w", coll, id, err)
	}

	if archived {
		ctx.Printf("Archived %s record %s\n", coll.Label(), id)
	} else {
		ctx.Printf("Unarchived %s record %s\n", coll.Label(), id)
	}
	return nil
}

type RecordDeleteCmd struct {
	Collection string `arg:"" help:"Collection of the record."`
	ID         string `arg:"" help:"Record ID."`
	Yes        bool   `short:"y" help:"Delete without asking."`
}

func (c *RecordDeleteCmd) Run(ctx *cli.Context) error {
	coll, err := collection(c.Collection)
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	rec, err := storage.GetRecord(ctx.Store, coll, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find %s record %s: %w", coll, c.ID, err)
	}

	ok, err := ctx.AskConfirm(fmt.Sprintf("%s %q wirklich löschen?", coll.Label(), recview.Summary(rec)), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Delete cancelled.")
		return nil
	}

	if err := ctx.Store.Delete(coll, c.ID); err != nil {
		return fmt.Errorf("failed to delete %s record %s: %w", coll, c.ID, err)
	}
	ctx.Printf("Deleted %s: %s (ID: %s)\n", coll.Label(), recview.Summary(rec), c.ID)
	ctx.Printf("Undo with: leitstand record restore %s %s\n", coll, c.ID)
	return nil
}

type RecordRestoreCmd struct {
	Collection string `arg:"" help:"Collection of the record."`
	ID         string `arg:"" help:"Record ID."`
}

func (c *RecordRestoreCmd) Run(ctx *cli.Context) error {
	coll, err := collection(c.Collection)
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.Restore(coll, c.ID); err != nil {
		return fmt.Errorf("failed to restore %s record %s: %w", coll, c.ID, err)
	}

	rec, err := storage.GetRecord(ctx.Store, coll, c.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Restored %s: %s (ID: %s)\n", coll.Label(), recview.Summary(rec), c.ID)
	return nil
}
