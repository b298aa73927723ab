package trial

import (
	"math/rand"
)

// EventTimeSimulator draws progression times from the exponential
// proportional-hazards model: rate ln(2)/median, median selected by
// (arm, biomarker). Invoked once for stage 1 on the full analysis set and
// again, independently, if the replication continues to stage 2.
type EventTimeSimulator struct {
	scenario Scenario
}

// NewEventTimeSimulator creates an event-time simulator for a scenario
func NewEventTimeSimulator(scenario Scenario) *EventTimeSimulator {
	return &EventTimeSimulator{scenario: scenario}
}

// SimulateStage draws a fresh progression time for every patient at the
// given stage. Stage-2 draws are independent of stage 1, not residual
// follow-up added onto it.
func (s *EventTimeSimulator) SimulateStage(patients []*Patient, stage Stage, rng *rand.Rand) {
	for _, p := range patients {
		draw := rng.ExpFloat64() / s.scenario.HazardFor(p.Arm, p.Biomarker)
		if stage == StageTwo {
			p.Stage2Progression = draw
		} else {
			p.Stage1Progression = draw
		}
	}
}
