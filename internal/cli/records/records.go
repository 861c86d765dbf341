package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/storage"
	"github.com/julianstephens/leitstand/internal/trafficlight"
	recview "github.com/julianstephens/leitstand/internal/tui/components/records"
)

var errUserCollection = errors.New("user accounts are managed with 'leitstand user'")

// collection resolves name and rejects the users collection
func collection(name string) (models.Collection, error) {
	c, err := cli.ParseCollection(name)
	if err != nil {
		return "", err
	}
	if c == models.CollectionUsers {
		return "", errUserCollection
	}
	return c, nil
}

type RecordAddCmd struct {
	Collection string `arg:"" help:"Collection (absences, roadworks, charterTrips, appointments, medicalAppointments, todos, trainings, notices, serviceMessages)."`
	Data       string `short:"d" help:"Record as inline JSON."`
	File       string `short:"f" help:"JSON file holding the record, '-' reads stdin." default:"-"`
}

func (c *RecordAddCmd) read() ([]byte, error) {
	if c.Data != "" {
		return []byte(c.Data), nil
	}
	if c.File == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(c.File)
}

func (c *RecordAddCmd) Run(ctx *cli.Context) error {
	coll, err := collection(c.Collection)
	if err != nil {
		return err
	}
	data, err := c.read()
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}

	rec, err := models.NewRecord(coll)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return fmt.Errorf("invalid %s record: %w", coll, err)
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	id, err := storage.SaveRecord(ctx.Store, coll, rec)
	if err != nil {
		return err
	}

	ctx.Printf("Saved %s: %s (ID: %s)\n", coll.Label(), recview.Summary(rec), id)
	return nil
}

type RecordListCmd struct {
	Collection string `arg:"" help:"Collection to list."`
	Archived   bool   `short:"a" help:"Include archived records."`
	Deleted    bool   `help:"Include deleted records."`
}

type listedRecord struct {
	rec     models.Record
	light   trafficlight.Light
	deleted bool
}

func (c *RecordListCmd) Run(ctx *cli.Context) error {
	coll, err := collection(c.Collection)
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	docs, err := ctx.Store.List(coll, storage.ListOptions{IncludeArchived: c.Archived, IncludeDeleted: c.Deleted})
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", coll, err)
	}
	if len(docs) == 0 {
		ctx.Printf("No %s found\n", coll.Label())
		return nil
	}

	today := ctx.Today()
	list := make([]listedRecord, 0, len(docs))
	for _, doc := range docs {
		rec, err := models.Decode(doc)
		if err != nil {
			return err
		}
		list = append(list, listedRecord{rec: rec, light: trafficlight.Classify(rec, today), deleted: doc.DeletedAt != nil})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].light.Rank() < list[j].light.Rank()
	})

	rows := make([][]string, 0, len(list))
	for _, item := range list {
		var flags []string
		if item.rec.IsArchived() {
			flags = append(flags, "archiviert")
		}
		if item.deleted {
			flags = append(flags, "gelöscht")
		}
		rows = append(rows, []string{
			lightLabel(item.light),
			item.rec.RecordID(),
			recview.Summary(item.rec),
			recview.Dates(item.rec),
			strings.Join(flags, ", "),
		})
	}

	ctx.Printf("%s (%d):\n", coll.Label(), len(list))
	ctx.PrintTable([]string{"Ampel", "ID", "Eintrag", "Datum", "Status"}, rows)
	return nil
}

func lightLabel(l trafficlight.Light) string {
	if l == trafficlight.None {
		return "-"
	}
	return recview.Dot(l) + " " + l.Tooltip()
}

type RecordShowCmd struct {
	Collection string `arg:"" help:"Collection of the record."`
	ID         string `arg:"" help:"Record ID."`
}

type recordView struct {
	Collection models.Collection  `json:"collection"`
	Light      trafficlight.Light `json:"light"`
	Tooltip    string             `json:"tooltip,omitempty"`
	Record     models.Record      `json:"record"`
}

func (c *RecordShowCmd) Run(ctx *cli.Context) error {
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

	light := trafficlight.Classify(rec, ctx.Today())
	return ctx.PrintJSON(recordView{
		Collection: coll,
		Light:      light,
		Tooltip:    light.Tooltip(),
		Record:     rec,
	})
}
