package reports

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/events"
	"github.com/julianstephens/leitstand/internal/ics"
	"github.com/julianstephens/leitstand/internal/logger"
)

type CalendarCmd struct {
	From       string   `help:"First day (YYYY-MM-DD or 'today')."`
	To         string   `help:"Last day, inclusive (YYYY-MM-DD)."`
	Categories []string `short:"c" sep:"," help:"Categories to include (absence, roadwork, charter, appointment, medical, todo, training)."`
	Archived   bool     `short:"a" help:"Include archived records."`
	ICS        string   `name:"ics" help:"Write an iCalendar file instead of the table, '-' writes stdout."`
	Name       string   `help:"Calendar name used in the iCalendar export."`
}

func (c *CalendarCmd) filter(ctx *cli.Context) (events.Filter, error) {
	f := events.Filter{ShowArchived: c.Archived}
	for _, name := range c.Categories {
		cat, err := events.ParseCategory(name)
		if err != nil {
			return f, err
		}
		f.Categories = append(f.Categories, cat)
	}
	if c.From != "" {
		from, err := ctx.ParseDay(c.From)
		if err != nil {
			return f, err
		}
		f.From = from
	}
	if c.To != "" {
		to, err := ctx.ParseDay(c.To)
		if err != nil {
			return f, err
		}
		// Filter.To is exclusive
		f.To = to.AddDays(1)
	}
	if !f.From.IsZero() && !f.To.IsZero() && !f.From.Before(f.To) {
		return f, fmt.Errorf("--from must not be after --to")
	}
	return f, nil
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	f, err := c.filter(ctx)
	if err != nil {
		return err
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	mapping := events.FromSnapshot(snap, f)
	for _, s := range mapping.Skipped {
		logger.Warn("Skipped calendar entry", "record", s.String())
	}

	if c.ICS != "" {
		return c.writeICS(ctx, mapping.Events)
	}

	if len(mapping.Events) == 0 {
		ctx.Println("No calendar entries found")
	} else {
		rows := make([][]string, 0, len(mapping.Events))
		for _, e := range mapping.Events {
			rows = append(rows, []string{
				e.Start.Display(),
				lastDay(e).Display(),
				e.Category.Label(),
				e.Title,
			})
		}
		ctx.PrintTable([]string{"Von", "Bis", "Kategorie", "Titel"}, rows)
	}

	if len(mapping.Skipped) > 0 {
		ctx.Printf("\n%d entries skipped because of invalid dates:\n", len(mapping.Skipped))
		for _, s := range mapping.Skipped {
			ctx.Printf("  %s\n", s)
		}
	}
	return nil
}

// lastDay converts the exclusive event end into the last day covered
func lastDay(e events.Event) calendar.Day {
	if e.Days() <= 1 {
		return e.Start
	}
	return e.End.AddDays(-1)
}

func (c *CalendarCmd) writeICS(ctx *cli.Context, list []events.Event) error {
	opts := ics.Options{Name: c.Name, Stamp: ctx.Time(), Location: ctx.Location()}

	var w io.Writer = ctx.Stdout()
	if c.ICS != "-" {
		file, err := os.OpenFile(c.ICS, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.ICS, err)
		}
		defer file.Close()
		w = file
	}

	if err := ics.Write(w, list, opts); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	if c.ICS != "-" {
		ctx.Printf("✓ Wrote %d events to %s\n", len(list), c.ICS)
	}
	return nil
}
