package models

import "fmt"

// Snapshot is the full set of records the pure views are computed from
type Snapshot struct {
	Absences            []Absence
	Roadworks           []Roadwork
	CharterTrips        []CharterTrip
	Appointments        []Appointment
	MedicalAppointments []MedicalAppointment
	Todos               []Todo
	Trainings           []Training
	Notices             []Notice
	ServiceMessages     []ServiceMessage
}

// Add appends a decoded record to the matching slice
func (s *Snapshot) Add(rec Record) error {
	switch r := rec.(type) {
	case *Absence:
		s.Absences = append(s.Absences, *r)
	case *Roadwork:
		s.Roadworks = append(s.Roadworks, *r)
	case *CharterTrip:
		s.CharterTrips = append(s.CharterTrips, *r)
	case *Appointment:
		s.Appointments = append(s.Appointments, *r)
	case *MedicalAppointment:
		s.MedicalAppointments = append(s.MedicalAppointments, *r)
	case *Todo:
		s.Todos = append(s.Todos, *r)
	case *Training:
		s.Trainings = append(s.Trainings, *r)
	case *Notice:
		s.Notices = append(s.Notices, *r)
	case *ServiceMessage:
		s.ServiceMessages = append(s.ServiceMessages, *r)
	default:
		return fmt.Errorf("record type %T does not belong in a snapshot", rec)
	}
	return nil
}

// Count returns the number of records held for c
func (s *Snapshot) Count(c Collection) int {
	switch c {
	case CollectionAbsences:
		return len(s.Absences)
	case CollectionRoadworks:
		return len(s.Roadworks)
	case CollectionCharterTrips:
		return len(s.CharterTrips)
	case CollectionAppointments:
		return len(s.Appointments)
	case CollectionMedicalAppointments:
		return len(s.MedicalAppointments)
	case CollectionTodos:
		return len(s.Todos)
	case CollectionTrainings:
		return len(s.Trainings)
	case CollectionNotices:
		return len(s.Notices)
	case CollectionServiceMessages:
		return len(s.ServiceMessages)
	default:
		return 0
	}
}

// Records returns pointers to the records held for c
func (s *Snapshot) Records(c Collection) []Record {
	var out []Record
	switch c {
	case CollectionAbsences:
		for i := range s.Absences {
			out = append(out, &s.Absences[i])
		}
	case CollectionRoadworks:
		for i := range s.Roadworks {
			out = append(out, &s.Roadworks[i])
		}
	case CollectionCharterTrips:
		for i := range s.CharterTrips {
			out = append(out, &s.CharterTrips[i])
		}
	case CollectionAppointments:
		for i := range s.Appointments {
			out = append(out, &s.Appointments[i])
		}
	case CollectionMedicalAppointments:
		for i := range s.MedicalAppointments {
			out = append(out, &s.MedicalAppointments[i])
		}
	case CollectionTodos:
		for i := range s.Todos {
			out = append(out, &s.Todos[i])
		}
	case CollectionTrainings:
		for i := range s.Trainings {
			out = append(out, &s.Trainings[i])
		}
	case CollectionNotices:
		for i := range s.Notices {
			out = append(out, &s.Notices[i])
		}
	case CollectionServiceMessages:
		for i := range s.ServiceMessages {
			out = append(out, &s.ServiceMessages[i])
		}
	}
	return out
}

// Active returns a copy of s without archived records
func (s *Snapshot) Active() *Snapshot {
	out := &Snapshot{}
	for _, c := range RecordCollections {
		for _, rec := range s.Records(c) {
			if !rec.IsArchived() {
				_ = out.Add(rec)
			}
		}
	}
	return out
}

// Len returns the total number of records across all collections
func (s *Snapshot) Len() int {
	n := 0
	for _, c := range RecordCollections {
		n += s.Count(c)
	}
	return n
}
