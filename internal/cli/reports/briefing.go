package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/leitstand/internal/briefing"
	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/logger"
)

const assistantTimeout = 90 * time.Second

type BriefingCmd struct {
	Payload  BriefingPayloadCmd  `cmd:"" help:"Print the compact data handed to the assistant." default:"1"`
	Generate BriefingGenerateCmd `cmd:"" help:"Generate the daily briefing."`
	Ask      BriefingAskCmd      `cmd:"" help:"Ask the assistant a question about today and the next 7 days."`
}

func buildPayload(ctx *cli.Context) (briefing.Payload, error) {
	snap, err := ctx.Snapshot()
	if err != nil {
		return briefing.Payload{}, err
	}
	return briefing.Build(snap, ctx.Today()), nil
}

type BriefingPayloadCmd struct{}

func (c *BriefingPayloadCmd) Run(ctx *cli.Context) error {
	payload, err := buildPayload(ctx)
	if err != nil {
		return err
	}
	return ctx.PrintJSON(payload)
}

type BriefingGenerateCmd struct{}

func (c *BriefingGenerateCmd) Run(ctx *cli.Context) error {
	client, err := ctx.Assistant()
	if err != nil {
		return err
	}
	payload, err := buildPayload(ctx)
	if err != nil {
		return err
	}

	rctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
	defer cancel()

	logger.Debug("Generating briefing", "items", payload.Len())
	text, err := client.Generate(rctx, payload)
	if err != nil {
		return fmt.Errorf("briefing failed: %w", err)
	}
	ctx.Println(text)
	return nil
}

type BriefingAskCmd struct {
	Question []string `arg:"" help:"Question to ask."`
}

func (c *BriefingAskCmd) Run(ctx *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Question, " "))
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}
	client, err := ctx.Assistant()
	if err != nil {
		return err
	}
	payload, err := buildPayload(ctx)
	if err != nil {
		return err
	}

	rctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
	defer cancel()

	answer, err := client.Ask(rctx, question, payload)
	if err != nil {
		return fmt.Errorf("question failed: %w", err)
	}
	ctx.Println(answer)
	return nil
}
