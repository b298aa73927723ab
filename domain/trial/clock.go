package trial

import (
	"sort"

	"trialsim/domain/core"
)

// censorTolerance guards the event indicator against floating-point ties at
// the cutoff boundary.
const censorTolerance = 1e-6

// CalendarClock turns progression draws into calendar-time quantities: it
// locates analysis cutoffs as order statistics over calendar event times and
// derives time-at-risk / event indicators as of a cutoff.
type CalendarClock struct{}

// NewCalendarClock creates a calendar clock
func NewCalendarClock() *CalendarClock {
	return &CalendarClock{}
}

// LocateCutoff returns the calendar time of the k-th smallest event time
// within the target subgroup, reading the given stage's progression draws.
// Bounds-checked against the realized subgroup size.
func (c *CalendarClock) LocateCutoff(patients []*Patient, stage Stage, eventTarget int, subgroup Subgroup) (float64, error) {
	if eventTarget <= 0 {
		return 0, core.NewInvalidParameterError("event_target", eventTarget, "must be positive")
	}

	times := make([]float64, 0, len(patients))
	for _, p := range patients {
		if subgroup.Contains(p) {
			times = append(times, p.CalendarEventTime(stage))
		}
	}
	if len(times) < eventTarget {
		return 0, core.NewOrderStatisticError(string(subgroup), eventTarget, len(times))
	}

	sort.Float64s(times)
	return times[eventTarget-1], nil
}

// CensorAt derives every patient's time at risk and event indicator as of
// the cutoff. A patient who enters after the cutoff carries a non-positive
// time at risk and no event, which removes them from the risk sets of any
// downstream test.
func (c *CalendarClock) CensorAt(patients []*Patient, stage Stage, cutoff float64) {
	for _, p := range patients {
		followUp := cutoff - p.EntryTime
		progression := p.ProgressionThrough(stage)

		p.TimeAtRisk = progression
		if followUp < progression {
			p.TimeAtRisk = followUp
		}
		p.Event = followUp+censorTolerance >= progression
	}
}
