package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/events"
	"github.com/julianstephens/leitstand/internal/models"
)

// ConflictType represents the type of data problem
type ConflictType string

const (
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictEndBeforeStart     ConflictType = "end_before_start"
	ConflictUnknownValue       ConflictType = "unknown_value"
	ConflictInvalidRecord      ConflictType = "invalid_record"
	ConflictOverlappingAbsence ConflictType = "overlapping_absence"
)

// Severity tells whether a conflict hides a record or only looks wrong
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a detected problem in the stored records
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Collection  models.Collection
	RecordIDs   []string
	Description string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict has error severity
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, c := range vr.Conflicts {
		report += fmt.Sprintf("- [%s] %s\n", c.Severity, c.Description)
	}
	return report
}

// Validator checks record snapshots for data problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Check validates s with a fresh Validator
func Check(s *models.Snapshot) ValidationResult {
	return New().ValidateSnapshot(s)
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// ValidateSnapshot checks every record, archived ones included
func (v *Validator) ValidateSnapshot(s *models.Snapshot) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if s == nil {
		return result
	}

	// Records the calendar would drop
	mapping := events.FromSnapshot(s, events.Filter{ShowArchived: true})
	for _, skip := range mapping.Skipped {
		result.add(Conflict{
			Type:        ConflictInvalidDate,
			Severity:    SeverityError,
			Collection:  skip.Category.Collection(),
			RecordIDs:   []string{skip.RecordID},
			Description: fmt.Sprintf("%s is missing from the calendar: %s", skip.Category.Label(), skip),
		})
	}

	// Field-level checks
	for _, c := range models.RecordCollections {
		for _, rec := range s.Records(c) {
			val, ok := rec.(models.Validator)
			if !ok {
				continue
			}
			if err := val.Validate(); err != nil {
				result.add(Conflict{
					Type:        ConflictInvalidRecord,
					Severity:    SeverityWarning,
					Collection:  c,
					RecordIDs:   []string{rec.RecordID()},
					Description: fmt.Sprintf("%s %s: %v", c.Label(), rec.RecordID(), err),
				})
			}
		}
	}

	for _, a := range s.Absences {
		v.checkRange(&result, models.CollectionAbsences, a.ID, a.StartDate, a.EndDate)
		switch a.Type {
		case "", models.AbsenceSick, models.AbsenceSickChild:
		default:
			result.add(unknownValue(models.CollectionAbsences, a.ID, "type", string(a.Type)))
		}
		switch a.Status {
		case "", models.AbsenceEntered, models.AbsenceExtended:
		default:
			result.add(unknownValue(models.CollectionAbsences, a.ID, "status", string(a.Status)))
		}
	}
	for _, r := range s.Roadworks {
		v.checkRange(&result, models.CollectionRoadworks, r.ID, r.StartDate, r.EndDate)
		switch r.Status {
		case "", models.RoadworkAnnounced, models.RoadworkRunning, models.RoadworkEnding, models.RoadworkEnded:
		default:
			result.add(unknownValue(models.CollectionRoadworks, r.ID, "status", string(r.Status)))
		}
	}
	for _, c := range s.CharterTrips {
		switch c.Status {
		case "", models.CharterRequested, models.CharterOffered, models.CharterBooked, models.CharterDone:
		default:
			result.add(unknownValue(models.CollectionCharterTrips, c.ID, "status", string(c.Status)))
		}
	}
	for _, t := range s.Todos {
		switch t.Priority {
		case "", models.PriorityLow, models.PriorityNormal, models.PriorityHigh:
		default:
			result.add(unknownValue(models.CollectionTodos, t.ID, "priority", string(t.Priority)))
		}
	}
	for _, t := range s.Trainings {
		v.checkRange(&result, models.CollectionTrainings, t.ID, t.DateFrom, t.DateTo)
	}
	for _, n := range s.Notices {
		v.checkRange(&result, models.CollectionNotices, n.ID, n.ValidFrom, n.ValidTo)
	}
	for _, m := range s.ServiceMessages {
		v.checkRange(&result, models.CollectionServiceMessages, m.ID, m.ValidFrom, m.ValidTo)
	}

	v.checkOverlappingAbsences(&result, s.Absences)
	return result
}

func unknownValue(c models.Collection, id, field, value string) Conflict {
	return Conflict{
		Type:        ConflictUnknownValue,
		Severity:    SeverityWarning,
		Collection:  c,
		RecordIDs:   []string{id},
		Description: fmt.Sprintf("%s %s has unknown %s %q", c.Label(), id, field, value),
	}
}

func (v *Validator) checkRange(result *ValidationResult, c models.Collection, id, from, to string) {
	if from == "" || to == "" {
		return
	}
	start, okStart := calendar.Parse(from)
	end, okEnd := calendar.Parse(to)
	if !okStart || !okEnd {
		return
	}
	if end.Before(start) {
		result.add(Conflict{
			Type:        ConflictEndBeforeStart,
			Severity:    SeverityError,
			Collection:  c,
			RecordIDs:   []string{id},
			Description: fmt.Sprintf("%s %s ends (%s) before it starts (%s)", c.Label(), id, end.Display(), start.Display()),
		})
	}
}

// checkOverlappingAbsences flags active absences of the same employee whose
// date ranges intersect
func (v *Validator) checkOverlappingAbsences(result *ValidationResult, list []models.Absence) {
	type span struct {
		id         string
		start, end calendar.Day
	}
	byPerson := make(map[string][]span)
	for _, a := range list {
		if a.Archived || a.PersonnelNumber == "" {
			continue
		}
		start, ok := calendar.Parse(a.StartDate)
		if !ok {
			continue
		}
		end := start
		if d, ok := calendar.Parse(a.EndDate); ok && !d.Before(start) {
			end = d
		}
		byPerson[a.PersonnelNumber] = append(byPerson[a.PersonnelNumber], span{a.ID, start, end})
	}

	persons := make([]string, 0, len(byPerson))
	for pn := range byPerson {
		persons = append(persons, pn)
	}
	sort.Strings(persons)

	for _, pn := range persons {
		spans := byPerson[pn]
		sort.Slice(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans); j++ {
				if spans[j].start.After(spans[i].end) {
					break
				}
				result.add(Conflict{
					Type:        ConflictOverlappingAbsence,
					Severity:    SeverityWarning,
					Collection:  models.CollectionAbsences,
					RecordIDs:   []string{spans[i].id, spans[j].id},
					Description: fmt.Sprintf("Overlapping absences for PN %s: %s and %s", pn, spans[i].id, spans[j].id),
				})
			}
		}
	}
}
