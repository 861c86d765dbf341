package trafficlight

import "math"

// Kind is an entity kind with its own classification rule
type Kind string

const (
	KindAbsence     Kind = "absence"
	KindRoadwork    Kind = "roadwork"
	KindCharterTrip Kind = "charter"
	KindAppointment Kind = "appointment"
	KindTodo        Kind = "todo"
	KindTraining    Kind = "training"
)

// Anchor selects which date a rule measures the distance from today against
type Anchor int

const (
	// AnchorStart measures days until the start
	AnchorStart Anchor = iota
	// AnchorEnd measures days until the effective end (end, else start)
	AnchorEnd
)

// unboundedLow is the open lower edge used by UpTo
const unboundedLow = math.MinInt

// Window is an inclusive range of day differences. The zero Window is empty.
type Window struct {
	From, To int
	set      bool
}

// Between is the window From..To
func Between(from, to int) Window { return Window{From: from, To: to, set: true} }

// UpTo is the window of every difference <= to
func UpTo(to int) Window { return Window{From: unboundedLow, To: to, set: true} }

// Exactly is the single-day window
func Exactly(d int) Window { return Between(d, d) }

// Contains reports whether d lies in the window
func (w Window) Contains(d int) bool {
	return w.set && d >= w.From && d <= w.To
}

// Rule is the per-kind threshold configuration
type Rule struct {
	Anchor Anchor
	// RunningIsRed flags records whose start..end range contains today
	RunningIsRed bool
	Red          Window
	Yellow       Window
	// YellowAs is the light reported for the yellow window
	YellowAs Light
}

const (
	AbsenceRedThresholdDays    = 3
	AbsenceYellowThresholdDays = 7
	RoadworkRedLeadDays        = 2
	RoadworkYellowLeadDays     = 14
	TrainingRedLeadDays        = 1
)

// Rules is the threshold table for all kinds.
//
// The absence yellow window reports green: absences use a two-color scheme
// and the 4..7 day horizon is intentionally not flagged.
var Rules = map[Kind]Rule{
	KindAbsence: {
		Anchor:   AnchorEnd,
		Red:      UpTo(AbsenceRedThresholdDays),
		Yellow:   Between(AbsenceRedThresholdDays+1, AbsenceYellowThresholdDays),
		YellowAs: Green,
	},
	KindRoadwork: {
		Anchor:       AnchorStart,
		RunningIsRed: true,
		Red:          Between(0, RoadworkRedLeadDays),
		Yellow:       Between(RoadworkRedLeadDays+1, RoadworkYellowLeadDays),
		YellowAs:     Yellow,
	},
	KindCharterTrip: {
		Anchor: AnchorStart,
		Red:    Exactly(0),
	},
	KindAppointment: {
		Anchor: AnchorStart,
		Red:    Exactly(0),
	},
	KindTodo: {
		Anchor: AnchorStart,
		Red:    UpTo(0),
	},
	KindTraining: {
		Anchor:       AnchorStart,
		RunningIsRed: true,
		Red:          UpTo(TrainingRedLeadDays),
	},
}
