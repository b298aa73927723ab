package trial

import (
	"fmt"

	"trialsim/domain/core"
)

// TimeSummary describes the distribution of a realized analysis calendar
// time across replications (months from study start).
type TimeSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
}

// Summary is the empirical operating-characteristics report of one run:
// per-outcome counts over the replications, with the realized analysis
// times alongside. Counts over the six outcomes always sum to the
// replication count.
type Summary struct {
	RunID        core.RunID      `json:"run_id"`
	Scenario     Scenario        `json:"scenario"`
	Replications int             `json:"replications"`
	Counts       map[Outcome]int `json:"counts"`

	// InterimTime summarizes the interim cutoff over all replications;
	// FinalTime covers only replications that continued to stage two.
	InterimTime      TimeSummary `json:"interim_time"`
	FinalTime        TimeSummary `json:"final_time"`
	StageTwoFraction float64     `json:"stage_two_fraction"`

	RuntimeMs int64 `json:"runtime_ms"`
}

// Probability returns the empirical probability of an outcome.
func (s *Summary) Probability(o Outcome) float64 {
	if s.Replications == 0 {
		return 0
	}
	return float64(s.Counts[o]) / float64(s.Replications)
}

// Probabilities returns all six empirical probabilities.
func (s *Summary) Probabilities() map[Outcome]float64 {
	probs := make(map[Outcome]float64, len(Outcomes()))
	for _, o := range Outcomes() {
		probs[o] = s.Probability(o)
	}
	return probs
}

// Validate checks the tally invariants: non-negative counts over exactly
// the six outcomes, summing to the replication count.
func (s *Summary) Validate() error {
	total := 0
	for o, c := range s.Counts {
		if c < 0 {
			return fmt.Errorf("outcome %s has negative count %d", o, c)
		}
		found := false
		for _, known := range Outcomes() {
			if o == known {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown outcome %s in tally", o)
		}
		total += c
	}
	if total != s.Replications {
		return fmt.Errorf("outcome counts sum to %d, want %d", total, s.Replications)
	}
	return nil
}
