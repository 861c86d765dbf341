package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/leitstand/internal/errors"
)

// Collection names a persisted document collection
type Collection string

const (
	CollectionAbsences            Collection = "absences"
	CollectionRoadworks           Collection = "roadworks"
	CollectionCharterTrips        Collection = "charterTrips"
	CollectionAppointments        Collection = "appointments"
	CollectionMedicalAppointments Collection = "medicalAppointments"
	CollectionTodos               Collection = "todos"
	CollectionTrainings           Collection = "trainings"
	CollectionNotices             Collection = "notices"
	CollectionServiceMessages     Collection = "serviceMessages"
	CollectionUsers               Collection = "users"
)

// RecordCollections lists the operational collections in display order.
// Users are kept separately.
var RecordCollections = []Collection{
	CollectionAbsences,
	CollectionRoadworks,
	CollectionCharterTrips,
	CollectionAppointments,
	CollectionMedicalAppointments,
	CollectionTodos,
	CollectionTrainings,
	CollectionNotices,
	CollectionServiceMessages,
}

// ParseCollection accepts the persisted name case-insensitively
func ParseCollection(name string) (Collection, error) {
	for _, c := range append(RecordCollections, CollectionUsers) {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w %q", errors.ErrUnknownCollection, name)
}

// Label is the German tab title of the collection
func (c Collection) Label() string {
	switch c {
	case CollectionAbsences:
		return "Abwesenheiten"
	case CollectionRoadworks:
		return "Baustellen"
	case CollectionCharterTrips:
		return "Gelegenheitsfahrten"
	case CollectionAppointments:
		return "Termine"
	case CollectionMedicalAppointments:
		return "Betriebsarzt"
	case CollectionTodos:
		return "To-Dos"
	case CollectionTrainings:
		return "Schulungen"
	case CollectionNotices:
		return "Aushänge"
	case CollectionServiceMessages:
		return "Meldungen"
	case CollectionUsers:
		return "Benutzer"
	default:
		return string(c)
	}
}

// Meta is embedded in every record
type Meta struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
}

func (m *Meta) RecordID() string       { return m.ID }
func (m *Meta) SetRecordID(id string)  { m.ID = id }
func (m *Meta) IsArchived() bool       { return m.Archived }
func (m *Meta) SetArchived(value bool) { m.Archived = value }

// Record is implemented by pointers to every record type through the embedded Meta
type Record interface {
	RecordID() string
	SetRecordID(id string)
	IsArchived() bool
	SetArchived(value bool)
}

// Document is a record as held by the document store
type Document struct {
	Collection Collection      `json:"collection"`
	ID         string          `json:"id"`
	Archived   bool            `json:"archived"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	DeletedAt  *time.Time      `json:"deletedAt,omitempty"`
}

// NewRecord returns an empty record of the collection's type
func NewRecord(c Collection) (Record, error) {
	switch c {
	case CollectionAbsences:
		return &Absence{}, nil
	case CollectionRoadworks:
		return &Roadwork{}, nil
	case CollectionCharterTrips:
		return &CharterTrip{}, nil
	case CollectionAppointments:
		return &Appointment{}, nil
	case CollectionMedicalAppointments:
		return &MedicalAppointment{}, nil
	case CollectionTodos:
		return &Todo{}, nil
	case CollectionTrainings:
		return &Training{}, nil
	case CollectionNotices:
		return &Notice{}, nil
	case CollectionServiceMessages:
		return &ServiceMessage{}, nil
	case CollectionUsers:
		return &User{}, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", c)
	}
}

// Decode unmarshals a document into its typed record. ID and archived
// come from the document columns, not from the JSON body.
func Decode(doc Document) (Record, error) {
	rec, err := NewRecord(doc.Collection)
	if err != nil {
		return nil, err
	}
	if len(doc.Data) > 0 {
		if err := json.Unmarshal(doc.Data, rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s/%s: %w", doc.Collection, doc.ID, err)
		}
	}
	rec.SetRecordID(doc.ID)
	rec.SetArchived(doc.Archived)
	return rec, nil
}

// DecodeAs is Decode for a known record type
func DecodeAs[T any, PT interface {
	*T
	Record
}](doc Document) (T, error) {
	var rec T
	if len(doc.Data) > 0 {
		if err := json.Unmarshal(doc.Data, &rec); err != nil {
			return rec, fmt.Errorf("failed to decode %s/%s: %w", doc.Collection, doc.ID, err)
		}
	}
	PT(&rec).SetRecordID(doc.ID)
	PT(&rec).SetArchived(doc.Archived)
	return rec, nil
}

// Attachment is the metadata of an uploaded file; the file itself lives in object storage
type Attachment struct {
	FileName    string `json:"fileName"`
	FileURL     string `json:"fileUrl"`
	FileType    string `json:"fileType,omitempty"`
	StoragePath string `json:"storagePath,omitempty"`
	UploadedAt  string `json:"uploadedAt,omitempty"`
}

// Lines holds bus line numbers. Older documents store them as one
// comma-separated string, newer ones as an array.
type Lines []string

func (l *Lines) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("lines must be a string or a list of strings")
	}
	*l = SplitLines(s)
	return nil
}

// SplitLines splits "1, 2,N3" into its trimmed non-empty parts
func SplitLines(s string) Lines {
	var out Lines
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (l Lines) String() string {
	return strings.Join(l, ", ")
}
