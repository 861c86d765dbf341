package events

import (
	"testing"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/models"
)

func snapshot() *models.Snapshot {
	return &models.Snapshot{
		Absences: []models.Absence{
			{Meta: models.Meta{ID: "a1"}, StartDate: "2024-06-10", EndDate: "2024-06-12"},
			{Meta: models.Meta{ID: "a2", Archived: true}, StartDate: "2024-06-10"},
		},
		Roadworks: []models.Roadwork{
			{Meta: models.Meta{ID: "r1"}, StartDate: "2024-06-09"},
			{Meta: models.Meta{ID: "r2"}, StartDate: "irgendwann"},
		},
		Todos: []models.Todo{
			{Meta: models.Meta{ID: "t1"}, DueDate: "2024-07-01"},
		},
		MedicalAppointments: []models.MedicalAppointment{
			{Meta: models.Meta{ID: "m1"}, Date: "2024-06-10"},
		},
	}
}

func TestFromSnapshotHidesArchived(t *testing.T) {
	m := FromSnapshot(snapshot(), Filter{})

	if len(m.Events) != 4 {
		t.Fatalf("got %d events, want 4: %+v", len(m.Events), m.Events)
	}
	for _, e := range m.Events {
		if e.ID == "absence-a2" {
			t.Error("archived absence must be hidden by default")
		}
	}
	if len(m.Skipped) != 1 || m.Skipped[0].RecordID != "r2" {
		t.Errorf("skipped = %+v", m.Skipped)
	}

	withArchived := FromSnapshot(snapshot(), Filter{ShowArchived: true})
	if len(withArchived.Events) != 5 {
		t.Errorf("ShowArchived: got %d events, want 5", len(withArchived.Events))
	}
}

func TestFromSnapshotSortsByStartThenCategory(t *testing.T) {
	m := FromSnapshot(snapshot(), Filter{})

	want := []string{"roadwork-r1", "absence-a1", "medical-m1", "todo-t1"}
	for i, id := range want {
		if m.Events[i].ID != id {
			t.Errorf("events[%d] = %s, want %s", i, m.Events[i].ID, id)
		}
	}
}

func TestFromSnapshotCategoriesAndRange(t *testing.T) {
	m := FromSnapshot(snapshot(), Filter{Categories: []Category{CategoryAbsence, CategoryTodo}})
	if len(m.Events) != 2 {
		t.Errorf("category filter: got %d events, want 2", len(m.Events))
	}
	if len(m.Skipped) != 0 {
		t.Errorf("excluded categories must not report skips: %+v", m.Skipped)
	}

	ranged := FromSnapshot(snapshot(), Filter{
		From: calendar.MustParse("2024-06-11"),
		To:   calendar.MustParse("2024-06-30"),
	})
	if len(ranged.Events) != 1 || ranged.Events[0].ID != "absence-a1" {
		t.Errorf("range filter = %+v", ranged.Events)
	}

	if got := FromSnapshot(nil, Filter{}); len(got.Events) != 0 {
		t.Error("FromSnapshot(nil) should be empty")
	}
}
