package trafficlight

import (
	"testing"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/models"
)

var today = calendar.MustParse("2024-06-10")

// day returns today shifted by n days as a YYYY-MM-DD string
func day(n int) string {
	return today.AddDays(n).String()
}

func TestAbsence(t *testing.T) {
	tests := []struct {
		name string
		in   models.Absence
		want Light
	}{
		{name: "ends today", in: models.Absence{StartDate: day(-9), EndDate: day(0)}, want: Red},
		{name: "ends in two days", in: models.Absence{StartDate: "2024-06-01", EndDate: "2024-06-12"}, want: Red},
		{name: "ends in three days", in: models.Absence{EndDate: day(3)}, want: Red},
		{name: "ends in four days collapses to green", in: models.Absence{EndDate: day(4)}, want: Green},
		{name: "ends in seven days collapses to green", in: models.Absence{EndDate: day(7)}, want: Green},
		{name: "ends in ten days", in: models.Absence{StartDate: day(-1), EndDate: day(10)}, want: Green},
		{name: "overdue", in: models.Absence{StartDate: day(-20), EndDate: day(-5)}, want: Red},
		{name: "overdue but returned", in: models.Absence{EndDate: day(-5), ReturnDate: "2024-01-01"}, want: Green},
		{name: "end falls back to start", in: models.Absence{StartDate: day(1)}, want: Red},
		{name: "start ignored when end present", in: models.Absence{StartDate: day(0), EndDate: day(30)}, want: Green},
		{name: "archived", in: models.Absence{Meta: models.Meta{Archived: true}, EndDate: day(0)}, want: Green},
		{name: "archived without dates", in: models.Absence{Meta: models.Meta{Archived: true}}, want: Green},
		{name: "no dates", in: models.Absence{}, want: None},
		{name: "return date without dates", in: models.Absence{ReturnDate: day(0)}, want: None},
		{name: "unparseable end", in: models.Absence{StartDate: day(0), EndDate: "bald"}, want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Absence(tt.in, today); got != tt.want {
				t.Errorf("Absence() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRoadwork(t *testing.T) {
	tests := []struct {
		name string
		in   models.Roadwork
		want Light
	}{
		{name: "running", in: models.Roadwork{StartDate: day(-1), EndDate: day(5), Status: models.RoadworkRunning}, want: Red},
		{name: "running single day", in: models.Roadwork{StartDate: day(0)}, want: Red},
		{name: "starts in two days", in: models.Roadwork{StartDate: day(2), EndDate: day(9)}, want: Red},
		{name: "starts in three days", in: models.Roadwork{StartDate: day(3)}, want: Yellow},
		{name: "starts in ten days", in: models.Roadwork{StartDate: "2024-06-20", EndDate: "2024-06-25", Status: models.RoadworkAnnounced}, want: Yellow},
		{name: "starts in fourteen days", in: models.Roadwork{StartDate: day(14)}, want: Yellow},
		{name: "starts in fifteen days", in: models.Roadwork{StartDate: day(15)}, want: Green},
		{name: "already over", in: models.Roadwork{StartDate: day(-10), EndDate: day(-3)}, want: Green},
		{name: "ended status", in: models.Roadwork{Status: models.RoadworkEnded, StartDate: day(-100), EndDate: day(-90)}, want: Green},
		{name: "ended status while running", in: models.Roadwork{Status: models.RoadworkEnded, StartDate: day(-1), EndDate: day(1)}, want: Green},
		{name: "ended status without dates", in: models.Roadwork{Status: models.RoadworkEnded}, want: Green},
		{name: "archived", in: models.Roadwork{Meta: models.Meta{Archived: true}, StartDate: day(0)}, want: Green},
		{name: "no start", in: models.Roadwork{EndDate: day(3)}, want: None},
		{name: "bad end treated as single day", in: models.Roadwork{StartDate: day(-1), EndDate: "offen"}, want: Green},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Roadwork(tt.in, today); got != tt.want {
				t.Errorf("Roadwork() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSingleDayKinds(t *testing.T) {
	tests := []struct {
		name string
		got  func(date string, archived bool) Light
	}{
		{name: "charter", got: func(date string, archived bool) Light {
			return CharterTrip(models.CharterTrip{Meta: models.Meta{Archived: archived}, Date: date}, today)
		}},
		{name: "appointment", got: func(date string, archived bool) Light {
			return Appointment(models.Appointment{Meta: models.Meta{Archived: archived}, Date: date}, today)
		}},
		{name: "medical", got: func(date string, archived bool) Light {
			return MedicalAppointment(models.MedicalAppointment{Meta: models.Meta{Archived: archived}, Date: date}, today)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases := []struct {
				date     string
				archived bool
				want     Light
			}{
				{date: day(0), want: Red},
				{date: day(1), want: Green},
				{date: day(-1), want: Green},
				{date: day(0), archived: true, want: Green},
				{date: "", want: None},
				{date: "31.12.2024", want: None},
			}
			for _, c := range cases {
				if got := tt.got(c.date, c.archived); got != c.want {
					t.Errorf("%s(date=%q, archived=%v) = %s, want %s", tt.name, c.date, c.archived, got, c.want)
				}
			}
		})
	}
}

func TestAppointmentDateFromFallback(t *testing.T) {
	if got := Appointment(models.Appointment{DateFrom: day(0)}, today); got != Red {
		t.Errorf("Appointment(dateFrom=today) = %s, want red", got)
	}
}

func TestTodo(t *testing.T) {
	tests := []struct {
		name string
		in   models.Todo
		want Light
	}{
		{name: "due today", in: models.Todo{DueDate: day(0)}, want: Red},
		{name: "overdue", in: models.Todo{DueDate: day(-3)}, want: Red},
		{name: "due tomorrow", in: models.Todo{DueDate: day(1)}, want: Green},
		{name: "done and overdue", in: models.Todo{DueDate: day(-3), Done: true}, want: Green},
		{name: "archived is not terminal", in: models.Todo{Meta: models.Meta{Archived: true}, DueDate: day(0)}, want: Red},
		{name: "no due date", in: models.Todo{}, want: None},
		{name: "done without due date", in: models.Todo{Done: true}, want: Green},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Todo(tt.in, today); got != tt.want {
				t.Errorf("Todo() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTraining(t *testing.T) {
	tests := []struct {
		name string
		in   models.Training
		want Light
	}{
		{name: "tomorrow", in: models.Training{DateFrom: day(1)}, want: Red},
		{name: "today", in: models.Training{DateFrom: day(0)}, want: Red},
		{name: "running", in: models.Training{DateFrom: day(-2), DateTo: day(2)}, want: Red},
		{name: "past", in: models.Training{DateFrom: day(-5), DateTo: day(-4)}, want: Red},
		{name: "in two days", in: models.Training{DateFrom: day(2)}, want: Green},
		{name: "archived", in: models.Training{Meta: models.Meta{Archived: true}, DateFrom: day(0)}, want: Green},
		{name: "no start", in: models.Training{DateTo: day(2)}, want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Training(tt.in, today); got != tt.want {
				t.Errorf("Training() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestZeroTodayIsNone(t *testing.T) {
	var zero calendar.Day
	if got := Absence(models.Absence{EndDate: day(0)}, zero); got != None {
		t.Errorf("Absence() with zero today = %s, want none", got)
	}
	if got := CharterTrip(models.CharterTrip{Meta: models.Meta{Archived: true}}, zero); got != Green {
		t.Errorf("archived CharterTrip() with zero today = %s, want green", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		rec  any
		want Light
	}{
		{name: "absence value", rec: models.Absence{EndDate: day(0)}, want: Red},
		{name: "absence pointer", rec: &models.Absence{EndDate: day(0)}, want: Red},
		{name: "roadwork", rec: &models.Roadwork{StartDate: day(5)}, want: Yellow},
		{name: "charter", rec: models.CharterTrip{Date: day(0)}, want: Red},
		{name: "todo", rec: &models.Todo{DueDate: day(2)}, want: Green},
		{name: "training", rec: models.Training{DateFrom: day(1)}, want: Red},
		{name: "notice has no rule", rec: &models.Notice{}, want: None},
		{name: "nil", rec: nil, want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.rec, today); got != tt.want {
				t.Errorf("Classify(%T) = %s, want %s", tt.rec, got, tt.want)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	s := &models.Snapshot{
		Roadworks: []models.Roadwork{
			{StartDate: day(0)},
			{StartDate: day(5)},
			{StartDate: day(6)},
			{},
		},
	}

	counts := Counts(s, models.CollectionRoadworks, today)
	if counts[Red] != 1 || counts[Yellow] != 2 || counts[None] != 1 {
		t.Errorf("Counts() = %v", counts)
	}
}
