// Package timectx resolves wall-clock time into the coarse temporal context
// used by the decision engine.
//
// Resolution is a pure function: no side effects, no failure modes.
// The context is computed fresh on every decision call and never persisted.
package timectx

import "time"

// TimeOfDay is a coarse period of the day.
type TimeOfDay string

// TimeOfDay constants. Boundaries are half-open intervals in local time:
// morning [06:00,12:00), afternoon [12:00,18:00), evening [18:00,22:00),
// night [22:00,06:00) wrapping midnight.
const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// Context is the temporal context for a single decision.
type Context struct {
	TimeOfDay TimeOfDay `json:"time_of_day"`
	Hour      int       `json:"hour"`    // 0..23
	Weekday   int       `json:"weekday"` // 0..6, 0 = Monday
	IsWeekend bool      `json:"weekend"` // Saturday or Sunday
}

// Resolve maps the given instant to its time context.
func Resolve(now time.Time) Context {
	hour := now.Hour()

	var tod TimeOfDay
	switch {
	case hour >= 6 && hour < 12:
		tod = Morning
	case hour >= 12 && hour < 18:
		tod = Afternoon
	case hour >= 18 && hour < 22:
		tod = Evening
	default:
		tod = Night
	}

	// Go's time.Weekday starts at Sunday=0; shift so Monday=0, Sunday=6.
	weekday := (int(now.Weekday()) + 6) % 7

	return Context{
		TimeOfDay: tod,
		Hour:      hour,
		Weekday:   weekday,
		IsWeekend: weekday >= 5,
	}
}
