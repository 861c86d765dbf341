package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/leitstand/internal/models"
)

func countType(result ValidationResult, typ ConflictType) int {
	n := 0
	for _, c := range result.Conflicts {
		if c.Type == typ {
			n++
		}
	}
	return n
}

func TestValidateSnapshot_Clean(t *testing.T) {
	s := &models.Snapshot{
		Absences:  []models.Absence{{Meta: models.Meta{ID: "a1"}, PersonnelNumber: "241", StartDate: "2024-06-10", EndDate: "2024-06-12"}},
		Roadworks: []models.Roadwork{{Meta: models.Meta{ID: "r1"}, Title: "Sperrung", StartDate: "2024-06-01", Status: models.RoadworkRunning}},
	}

	result := New().ValidateSnapshot(s)
	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}

func TestValidateSnapshot_InvalidDates(t *testing.T) {
	s := &models.Snapshot{
		Absences:     []models.Absence{{Meta: models.Meta{ID: "a1"}, PersonnelNumber: "241", StartDate: "irgendwann"}},
		CharterTrips: []models.CharterTrip{{Meta: models.Meta{ID: "c1", Archived: true}, Date: "31.02.2024"}},
	}

	result := New().ValidateSnapshot(s)
	if got := countType(result, ConflictInvalidDate); got != 2 {
		t.Errorf("Expected 2 invalid date conflicts (archived included), got %d: %s", got, result.FormatReport())
	}
	if !result.HasErrors() {
		t.Error("invalid dates should be errors")
	}
}

func TestValidateSnapshot_EndBeforeStart(t *testing.T) {
	s := &models.Snapshot{
		Trainings: []models.Training{{Meta: models.Meta{ID: "s1"}, Title: "Erste Hilfe", DateFrom: "2024-06-12", DateTo: "2024-06-10"}},
		Notices:   []models.Notice{{Meta: models.Meta{ID: "n1"}, Title: "Aushang", ValidFrom: "2024-06-01", ValidTo: "2024-06-30"}},
	}

	result := New().ValidateSnapshot(s)
	if got := countType(result, ConflictEndBeforeStart); got != 1 {
		t.Fatalf("Expected 1 end-before-start conflict, got %d", got)
	}
	if !strings.Contains(result.FormatReport(), "12.06.2024") {
		t.Errorf("report should show display dates: %s", result.FormatReport())
	}
}

func TestValidateSnapshot_UnknownValues(t *testing.T) {
	s := &models.Snapshot{
		Absences:  []models.Absence{{Meta: models.Meta{ID: "a1"}, PersonnelNumber: "1", StartDate: "2024-06-10", Type: "urlaub"}},
		Roadworks: []models.Roadwork{{Meta: models.Meta{ID: "r1"}, Title: "X", StartDate: "2024-06-10", Status: "laufend"}},
		Todos:     []models.Todo{{Meta: models.Meta{ID: "t1"}, Title: "Y", Priority: "dringend"}},
	}

	result := New().ValidateSnapshot(s)
	if got := countType(result, ConflictUnknownValue); got != 3 {
		t.Errorf("Expected 3 unknown value conflicts, got %d: %s", got, result.FormatReport())
	}
	if result.HasErrors() {
		t.Error("unknown values should only be warnings")
	}
}

func TestValidateSnapshot_InvalidRecord(t *testing.T) {
	s := &models.Snapshot{
		Todos: []models.Todo{{Meta: models.Meta{ID: "t1"}, Title: "Z", DueDate: "2024-06-10", DueTime: "25:00"}},
	}
	result := New().ValidateSnapshot(s)
	if got := countType(result, ConflictInvalidRecord); got != 1 {
		t.Errorf("Expected 1 invalid record conflict, got %d", got)
	}
}

func TestValidateSnapshot_OverlappingAbsences(t *testing.T) {
	s := &models.Snapshot{
		Absences: []models.Absence{
			{Meta: models.Meta{ID: "a1"}, PersonnelNumber: "241", StartDate: "2024-06-10", EndDate: "2024-06-14"},
			{Meta: models.Meta{ID: "a2"}, PersonnelNumber: "241", StartDate: "2024-06-14", EndDate: "2024-06-20"},
			{Meta: models.Meta{ID: "a3"}, PersonnelNumber: "241", StartDate: "2024-06-21"},
			{Meta: models.Meta{ID: "a4"}, PersonnelNumber: "17", StartDate: "2024-06-10", EndDate: "2024-06-14"},
			{Meta: models.Meta{ID: "a5", Archived: true}, PersonnelNumber: "241", StartDate: "2024-06-11"},
		},
	}

	result := New().ValidateSnapshot(s)
	if got := countType(result, ConflictOverlappingAbsence); got != 1 {
		t.Fatalf("Expected 1 overlap, got %d: %s", got, result.FormatReport())
	}
	for _, c := range result.Conflicts {
		if c.Type == ConflictOverlappingAbsence && (c.RecordIDs[0] != "a1" || c.RecordIDs[1] != "a2") {
			t.Errorf("overlap ids = %v", c.RecordIDs)
		}
	}
}

func TestCheckNilSnapshot(t *testing.T) {
	result := Check(nil)
	if result.HasConflicts() {
		t.Errorf("Check(nil) reported conflicts: %s", result.FormatReport())
	}
}
