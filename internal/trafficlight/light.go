// Package trafficlight classifies records into urgency tiers.
//
// Every entity kind is described by a Rule in a single table and evaluated
// by one generic function. Callers pass "today" explicitly; nothing here
// reads the clock.
package trafficlight

// Light is the urgency tier of a record
type Light string

const (
	Red    Light = "red"
	Yellow Light = "yellow"
	Green  Light = "green"
	// None means the record lacks the date needed to decide. It is not "safe".
	None Light = "none"
)

// Tooltip is the fixed label shown next to the indicator dot
func (l Light) Tooltip() string {
	switch l {
	case Red:
		return "acute"
	case Yellow:
		return "upcoming"
	case Green:
		return "unproblematic"
	default:
		return ""
	}
}

// Color is the indicator dot color
func (l Light) Color() string {
	switch l {
	case Red:
		return "#ef4444"
	case Yellow:
		return "#eab308"
	case Green:
		return "#22c55e"
	default:
		return ""
	}
}

// Rank orders lights by urgency for sorting: red first, none last
func (l Light) Rank() int {
	switch l {
	case Red:
		return 0
	case Yellow:
		return 1
	case Green:
		return 2
	default:
		return 3
	}
}

// Lights lists the tiers in rank order
func Lights() []Light {
	return []Light{Red, Yellow, Green, None}
}
