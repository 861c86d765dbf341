package system

import (
	"fmt"

	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/storage"
)

type DebugCmd struct {
	DBPath   DebugDBPathCmd   `cmd:"" help:"Show database path."`
	Document DebugDocumentCmd `cmd:"" help:"Dump a stored document as JSON, including deleted ones."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	out := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}
	if ctx.Config != nil {
		out["config"] = ctx.Config.Path()
	}
	return ctx.PrintJSON(out)
}

type DebugDocumentCmd struct {
	Collection string `arg:"" help:"Collection of the document."`
	ID         string `arg:"" help:"Document ID."`
}

func (cmd *DebugDocumentCmd) Run(ctx *cli.Context) error {
	coll, err := cli.ParseCollection(cmd.Collection)
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	docs, err := ctx.Store.List(coll, storage.ListOptions{IncludeArchived: true, IncludeDeleted: true})
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if doc.ID == cmd.ID {
			return ctx.PrintJSON(doc)
		}
	}
	return fmt.Errorf("no %s document found with ID %s", coll, cmd.ID)
}
