package system

import (
	"fmt"

	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	defer ctx.Store.Close()

	ctx.Println("Validating records...")
	result := validation.Check(snap)

	ctx.Println()
	ctx.Println(result.FormatReport())

	if result.HasErrors() {
		return fmt.Errorf("validation found %d error(s)", countErrors(result))
	}
	return nil
}

func countErrors(result validation.ValidationResult) int {
	n := 0
	for _, c := range result.Conflicts {
		if c.Severity == validation.SeverityError {
			n++
		}
	}
	return n
}
