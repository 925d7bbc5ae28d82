// Package schedule derives a plant's watering status from its timestamps.
// Everything here is a pure function with "now" as an argument, which keeps
// the classification deterministic and trivially testable.
package schedule

import (
	"time"

	"github.com/leaflink/leaflink-backend/internal/domain"
	"github.com/leaflink/leaflink-backend/pkg/dateutil"
)

// State is the three-way watering classification.
type State int

const (
	// Overdue: the due date fell on an earlier calendar day.
	Overdue State = iota
	// DueToday: the due date falls on now's calendar day. Calendar-day
	// equality wins over any sign noise in the raw day difference.
	DueToday
	// Upcoming: the due date is on a later calendar day.
	Upcoming
)

func (s State) String() string {
	switch s {
	case Overdue:
		return "overdue"
	case DueToday:
		return "due_today"
	default:
		return "upcoming"
	}
}

// Evaluation is the result of classifying one plant at one instant.
type Evaluation struct {
	// DueDate is LastWateredDate + WaterFrequencyDays.
	DueDate time.Time
	// DaysUntil is the whole-calendar-day distance from now to DueDate:
	// negative when overdue, zero on the due day, positive before it.
	DaysUntil int
	State     State
}

// Evaluate computes the watering status of p at now.
func Evaluate(p domain.Plant, now time.Time) Evaluation {
	dueDate := dateutil.AddDays(p.LastWateredDate, p.WaterFrequencyDays)
	daysUntil := dateutil.DifferenceInDays(dueDate, now)

	state := Upcoming
	switch {
	case dateutil.IsToday(dueDate, now):
		state = DueToday
	case daysUntil < 0:
		state = Overdue
	}

	return Evaluation{DueDate: dueDate, DaysUntil: daysUntil, State: state}
}

// EvaluatedPlant pairs a plant with its evaluation at one instant.
type EvaluatedPlant struct {
	Plant      domain.Plant
	Evaluation Evaluation
}

// IsThirsty reports whether p needs water at now (overdue or due today).
func IsThirsty(p domain.Plant, now time.Time) bool {
	s := Evaluate(p, now).State
	return s == Overdue || s == DueToday
}

// IsHealthy reports whether p's next watering is still upcoming at now.
func IsHealthy(p domain.Plant, now time.Time) bool {
	return Evaluate(p, now).State == Upcoming
}
