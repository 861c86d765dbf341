package models

import (
	"encoding/json"
	"testing"
)

func TestLinesUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "array", input: `{"lines":["1","N3"]}`, want: "1, N3"},
		{name: "comma string", input: `{"lines":"1, 2 ,,N3"}`, want: "1, 2, N3"},
		{name: "empty string", input: `{"lines":""}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Roadwork
			if err := json.Unmarshal([]byte(tt.input), &r); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if got := r.Lines.String(); got != tt.want {
				t.Errorf("Lines = %q, want %q", got, tt.want)
			}
		})
	}

	var r Roadwork
	if err := json.Unmarshal([]byte(`{"lines":42}`), &r); err == nil {
		t.Error("Unmarshal of numeric lines should fail")
	}
}

func TestDecode(t *testing.T) {
	doc := Document{
		Collection: CollectionAbsences,
		ID:         "abs-1",
		Archived:   true,
		Data:       json.RawMessage(`{"id":"stale","personnelNumber":"241","type":"kr","startDate":"2024-06-01","status":"verlängert"}`),
	}

	rec, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	a, ok := rec.(*Absence)
	if !ok {
		t.Fatalf("Decode() returned %T, want *Absence", rec)
	}
	if a.ID != "abs-1" || !a.Archived {
		t.Errorf("meta = %+v, want document id and archived flag", a.Meta)
	}
	if a.PersonnelNumber != "241" || a.Status != AbsenceExtended {
		t.Errorf("fields = %+v", a)
	}

	typed, err := DecodeAs[Absence](doc)
	if err != nil {
		t.Fatalf("DecodeAs() failed: %v", err)
	}
	if typed.ID != "abs-1" {
		t.Errorf("DecodeAs() id = %q", typed.ID)
	}

	if _, err := Decode(Document{Collection: "buses"}); err == nil {
		t.Error("Decode() of unknown collection should fail")
	}
}

func TestParseCollection(t *testing.T) {
	c, err := ParseCollection("charterTrips")
	if err != nil || c != CollectionCharterTrips {
		t.Errorf("ParseCollection(charterTrips) = %q, %v", c, err)
	}
	c, err = ParseCollection("ROADWORKS")
	if err != nil || c != CollectionRoadworks {
		t.Errorf("ParseCollection(ROADWORKS) = %q, %v", c, err)
	}
	if _, err := ParseCollection("buses"); err == nil {
		t.Error("ParseCollection(buses) should fail")
	}
	if len(RecordCollections) != 9 {
		t.Errorf("RecordCollections has %d entries, want 9", len(RecordCollections))
	}
}

func TestSnapshotActive(t *testing.T) {
	s := &Snapshot{}
	for _, rec := range []Record{
		&Absence{Meta: Meta{ID: "a1"}},
		&Absence{Meta: Meta{ID: "a2", Archived: true}},
		&Todo{Meta: Meta{ID: "t1"}},
		&ServiceMessage{Meta: Meta{ID: "m1", Archived: true}},
	} {
		if err := s.Add(rec); err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	}

	if err := s.Add(&User{}); err == nil {
		t.Error("Add(*User) should fail")
	}

	active := s.Active()
	if active.Count(CollectionAbsences) != 1 || active.Absences[0].ID != "a1" {
		t.Errorf("active absences = %+v", active.Absences)
	}
	if active.Count(CollectionTodos) != 1 {
		t.Errorf("active todos = %d, want 1", active.Count(CollectionTodos))
	}
	if active.Count(CollectionServiceMessages) != 0 {
		t.Errorf("active messages = %d, want 0", active.Count(CollectionServiceMessages))
	}
	if s.Count(CollectionAbsences) != 2 {
		t.Error("Active() must not modify the source snapshot")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     Validator
		wantErr bool
	}{
		{name: "absence ok", rec: &Absence{PersonnelNumber: "241", StartDate: "2024-06-01"}},
		{name: "absence no number", rec: &Absence{StartDate: "2024-06-01"}, wantErr: true},
		{name: "appointment via dateFrom", rec: &Appointment{DateFrom: "2024-06-01"}},
		{name: "appointment bad time", rec: &Appointment{Date: "2024-06-01", TimeFrom: "9 Uhr"}, wantErr: true},
		{name: "message bad type", rec: &ServiceMessage{Title: "x", Type: "alarm"}, wantErr: true},
		{name: "training needs start", rec: &Training{Title: "Erste Hilfe"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
