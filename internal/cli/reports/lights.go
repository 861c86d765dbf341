package reports

import (
	"sort"
	"strconv"

	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/trafficlight"
	recview "github.com/julianstephens/leitstand/internal/tui/components/records"
)

// classified lists the collections that carry a traffic light
var classified = []models.Collection{
	models.CollectionAbsences,
	models.CollectionRoadworks,
	models.CollectionCharterTrips,
	models.CollectionAppointments,
	models.CollectionMedicalAppointments,
	models.CollectionTodos,
	models.CollectionTrainings,
}

type LightsCmd struct {
	Collection string `arg:"" optional:"" help:"Show every record of one collection instead of the summary."`
}

func (c *LightsCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}
	active := snap.Active()
	today := ctx.Today()

	if c.Collection != "" {
		coll, err := cli.ParseCollection(c.Collection)
		if err != nil {
			return err
		}
		return c.detail(ctx, active, coll)
	}

	rows := make([][]string, 0, len(classified))
	for _, coll := range classified {
		counts := trafficlight.Counts(active, coll, today)
		row := []string{coll.Label()}
		for _, l := range trafficlight.Lights() {
			row = append(row, strconv.Itoa(counts[l]))
		}
		rows = append(rows, row)
	}

	ctx.Printf("Ampelübersicht %s\n", today.Display())
	ctx.PrintTable([]string{"Bereich", "Akut", "Anstehend", "Unkritisch", "Ohne"}, rows)
	return nil
}

func (c *LightsCmd) detail(ctx *cli.Context, snap *models.Snapshot, coll models.Collection) error {
	today := ctx.Today()
	recs := snap.Records(coll)
	if len(recs) == 0 {
		ctx.Printf("No %s found\n", coll.Label())
		return nil
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return trafficlight.Classify(recs[i], today).Rank() < trafficlight.Classify(recs[j], today).Rank()
	})

	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		light := trafficlight.Classify(rec, today)
		rows = append(rows, []string{string(light), light.Tooltip(), recview.Summary(rec), recview.Dates(rec)})
	}
	ctx.Printf("%s %s\n", coll.Label(), today.Display())
	ctx.PrintTable([]string{"Ampel", "Hinweis", "Eintrag", "Datum"}, rows)
	return nil
}
