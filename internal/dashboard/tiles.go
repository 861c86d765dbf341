package dashboard

import (
	"github.com/julianstephens/leitstand/internal/auth"
	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/trafficlight"
)

// Tile is one overview counter
type Tile struct {
	Area       auth.Area                  `json:"area"`
	Collection models.Collection          `json:"collection"`
	Label      string                     `json:"label"`
	Count      int                        `json:"count"`
	Lights     map[trafficlight.Light]int `json:"lights"`
}

var tileOrder = []struct {
	area       auth.Area
	collection models.Collection
	label      string
}{
	{auth.AreaAbsences, models.CollectionAbsences, "Abwesenheiten (krank)"},
	{auth.AreaRoadworks, models.CollectionRoadworks, "Baustellen-Alarme"},
	{auth.AreaCharter, models.CollectionCharterTrips, "Gelegenheitsfahrten"},
	{auth.AreaAppointments, models.CollectionAppointments, "Wichtige Termine"},
	{auth.AreaTodos, models.CollectionTodos, "Offene To-Dos"},
	{auth.AreaTrainings, models.CollectionTrainings, "Schulungen"},
}

// Tiles counts the non-archived records of every area perms may view
func Tiles(s *models.Snapshot, perms auth.Permissions, today calendar.Day) []Tile {
	active := &models.Snapshot{}
	if s != nil {
		active = s.Active()
	}
	tiles := []Tile{}
	for _, t := range tileOrder {
		if !perms.CanView(t.area) {
			continue
		}
		tiles = append(tiles, Tile{
			Area:       t.area,
			Collection: t.collection,
			Label:      t.label,
			Count:      active.Count(t.collection),
			Lights:     trafficlight.Counts(active, t.collection, today),
		})
	}
	return tiles
}
