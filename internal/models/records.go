package models

import (
	"fmt"
	"time"
)

type AbsenceType string

const (
	AbsenceSick      AbsenceType = "kr"
	AbsenceSickChild AbsenceType = "kru"
)

type AbsenceStatus string

const (
	AbsenceEntered  AbsenceStatus = "eingetragen"
	AbsenceExtended AbsenceStatus = "verlängert"
)

// Absence is a staff sick-leave entry. ReturnDate confirms the employee is back.
type Absence struct {
	Meta
	PersonnelNumber     string        `json:"personnelNumber"`
	Type                AbsenceType   `json:"type"`
	StartDate           string        `json:"startDate"`
	EndDate             string        `json:"endDate,omitempty"`
	ReturnDate          string        `json:"returnDate,omitempty"`
	Status              AbsenceStatus `json:"status,omitempty"`
	HasPaperCertificate bool          `json:"hasPaperCertificate,omitempty"`
	EnteredUntil        string        `json:"enteredUntil,omitempty"`
	Notes               string        `json:"notes,omitempty"`
}

func (a *Absence) Validate() error {
	if a.PersonnelNumber == "" {
		return fmt.Errorf("personnel number cannot be empty")
	}
	if a.StartDate == "" {
		return fmt.Errorf("start date cannot be empty")
	}
	return nil
}

type RoadworkStatus string

const (
	RoadworkAnnounced RoadworkStatus = "angekündigt"
	RoadworkRunning   RoadworkStatus = "läuft"
	RoadworkEnding    RoadworkStatus = "endet bald"
	RoadworkEnded     RoadworkStatus = "beendet"
)

// RoadworkMeasures tracks which communication steps have been taken
type RoadworkMeasures struct {
	Ersatzhaltestelle bool `json:"ersatzhaltestelle,omitempty"`
	Fahrerinfo        bool `json:"fahrerinfo,omitempty"`
	Fahrgastinfo      bool `json:"fahrgastinfo,omitempty"`
	SocialMedia       bool `json:"socialMedia,omitempty"`
	Servicebuero      bool `json:"servicebuero,omitempty"`
}

type Roadwork struct {
	Meta
	Title       string           `json:"title"`
	Location    string           `json:"location,omitempty"`
	Lines       Lines            `json:"lines,omitempty"`
	StartDate   string           `json:"startDate"`
	EndDate     string           `json:"endDate,omitempty"`
	Status      RoadworkStatus   `json:"status,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Measures    RoadworkMeasures `json:"measures"`
	IsNew       bool             `json:"isNew,omitempty"`
	EndingSoon  bool             `json:"endingSoon,omitempty"`
	Attachments []Attachment     `json:"attachments,omitempty"`
}

func (r *Roadwork) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("roadwork title cannot be empty")
	}
	return nil
}

type CharterStatus string

const (
	CharterRequested CharterStatus = "angefragt"
	CharterOffered   CharterStatus = "angebot"
	CharterBooked    CharterStatus = "gebucht"
	CharterDone      CharterStatus = "durchgeführt"
)

type CharterTrip struct {
	Meta
	Label          string        `json:"label"`
	Date           string        `json:"date"`
	OutboundTime   string        `json:"outboundTime,omitempty"`
	ReturnTime     string        `json:"returnTime,omitempty"`
	PassengerCount *int          `json:"passengerCount,omitempty"`
	Status         CharterStatus `json:"status,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	Attachments    []Attachment  `json:"attachments,omitempty"`
}

func (c *CharterTrip) Validate() error {
	if c.Date == "" {
		return fmt.Errorf("trip date cannot be empty")
	}
	if c.PassengerCount != nil && *c.PassengerCount < 0 {
		return fmt.Errorf("passenger count cannot be negative")
	}
	return validateClock(c.OutboundTime, c.ReturnTime)
}

// Appointment uses Date; DateFrom is read when Date is empty
type Appointment struct {
	Meta
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Date     string `json:"date,omitempty"`
	DateFrom string `json:"dateFrom,omitempty"`
	TimeFrom string `json:"timeFrom,omitempty"`
	TimeTo   string `json:"timeTo,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Day returns the date used for classification and calendar placement
func (a *Appointment) Day() string {
	if a.Date != "" {
		return a.Date
	}
	return a.DateFrom
}

func (a *Appointment) Validate() error {
	if a.Day() == "" {
		return fmt.Errorf("appointment date cannot be empty")
	}
	return validateClock(a.TimeFrom, a.TimeTo)
}

type MedicalAppointment struct {
	Meta
	Date           string `json:"date"`
	Time           string `json:"time,omitempty"`
	PersonalNumber string `json:"personalNumber"`
	Location       string `json:"location,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

func (m *MedicalAppointment) Validate() error {
	if m.Date == "" {
		return fmt.Errorf("appointment date cannot be empty")
	}
	return validateClock(m.Time)
}

type Priority string

const (
	PriorityLow    Priority = "niedrig"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "hoch"
)

type Todo struct {
	Meta
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	DueTime     string   `json:"dueTime,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Done        bool     `json:"done"`
}

func (t *Todo) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("todo title cannot be empty")
	}
	return validateClock(t.DueTime)
}

type Training struct {
	Meta
	Title       string       `json:"title"`
	TargetGroup string       `json:"targetGroup,omitempty"`
	DateFrom    string       `json:"dateFrom"`
	DateTo      string       `json:"dateTo,omitempty"`
	TimeFrom    string       `json:"timeFrom,omitempty"`
	TimeTo      string       `json:"timeTo,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

func (t *Training) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("training title cannot be empty")
	}
	if t.DateFrom == "" {
		return fmt.Errorf("training start date cannot be empty")
	}
	return validateClock(t.TimeFrom, t.TimeTo)
}

type NoticeType string

const (
	NoticeInstruction NoticeType = "Dienstanweisung"
	NoticePosting     NoticeType = "Aushang"
)

type Notice struct {
	Meta
	Title       string     `json:"title"`
	Type        NoticeType `json:"type,omitempty"`
	TargetGroup string     `json:"targetGroup,omitempty"`
	ValidFrom   string     `json:"validFrom,omitempty"`
	ValidTo     string     `json:"validTo,omitempty"`
	Description string     `json:"description,omitempty"`
	FileURL     string     `json:"fileUrl,omitempty"`
	FileName    string     `json:"fileName,omitempty"`
}

type MessageType string

const (
	MessageDisturbance MessageType = "disturbance"
	MessageInfo        MessageType = "info"
	MessagePlan        MessageType = "plan"
	MessageQuote       MessageType = "quote"
)

// ServiceMessage is a driver-facing message shown on the kiosk dashboard
type ServiceMessage struct {
	Meta
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	Type         MessageType `json:"type"`
	IsNew        bool        `json:"isNew,omitempty"`
	Priority     string      `json:"priority,omitempty"`
	ValidFrom    string      `json:"validFrom,omitempty"`
	ValidTo      string      `json:"validTo,omitempty"`
	ShowInTicker bool        `json:"showInTicker,omitempty"`
}

func (s *ServiceMessage) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("message title cannot be empty")
	}
	switch s.Type {
	case MessageDisturbance, MessageInfo, MessagePlan, MessageQuote:
		return nil
	default:
		return fmt.Errorf("unknown message type %q", s.Type)
	}
}

// AreaPermission is one view/edit pair of a user's permission overrides
type AreaPermission struct {
	View *bool `json:"view,omitempty"`
	Edit *bool `json:"edit,omitempty"`
}

// User is an operator account. PasswordHash is a bcrypt hash.
type User struct {
	Meta
	Username     string                    `json:"username"`
	DisplayName  string                    `json:"displayName,omitempty"`
	Role         string                    `json:"role"`
	Permissions  map[string]AreaPermission `json:"permissions,omitempty"`
	PasswordHash string                    `json:"passwordHash"`
}

func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash cannot be empty")
	}
	return nil
}

// validateClock checks optional HH:MM strings
func validateClock(values ...string) error {
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, err := time.Parse("15:04", v); err != nil {
			return fmt.Errorf("invalid time %q (expected HH:MM)", v)
		}
	}
	return nil
}

// Validator is implemented by records with field-level checks
type Validator interface {
	Validate() error
}
