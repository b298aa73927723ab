package stats

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"trialsim/domain/core"
	"trialsim/domain/trial"
)

// LogRankEngine is the standard two-sample censored log-rank test: observed
// minus expected events in one arm accumulated over the distinct event
// times, normalized by the hypergeometric variance, referred to a 1-df
// chi-square distribution.
type LogRankEngine struct{}

// NewLogRankEngine creates a log-rank engine
func NewLogRankEngine() *LogRankEngine {
	return &LogRankEngine{}
}

// Compare runs the test over the patients' current time-at-risk, event
// indicator and arm. The statistic is symmetric in the arm labels: swapping
// reference and comparison arm flips the sign of O-E per event time but
// leaves (O-E)^2/V unchanged.
func (e *LogRankEngine) Compare(ctx context.Context, patients []*trial.Patient) (trial.StageResult, error) {
	if len(patients) < 2 {
		return trial.StageResult{}, core.NewInvalidParameterError("patients", len(patients), "need at least two subjects")
	}

	type observation struct {
		time         float64
		event        bool
		experimental bool
	}
	obs := make([]observation, 0, len(patients))
	for _, p := range patients {
		obs = append(obs, observation{
			time:         p.TimeAtRisk,
			event:        p.Event,
			experimental: p.Arm == trial.ArmExperimental,
		})
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].time < obs[j].time })

	var observedMinusExpected, variance float64
	i := 0
	for i < len(obs) {
		t := obs[i].time

		// Risk sets: everyone whose time at risk reaches t.
		var atRisk, atRiskExp float64
		for _, o := range obs[i:] {
			atRisk++
			if o.experimental {
				atRiskExp++
			}
		}

		// Events tied at t.
		var deaths, deathsExp float64
		j := i
		for j < len(obs) && obs[j].time == t {
			if obs[j].event {
				deaths++
				if obs[j].experimental {
					deathsExp++
				}
			}
			j++
		}

		if deaths > 0 && atRisk > 1 {
			expected := deaths * atRiskExp / atRisk
			observedMinusExpected += deathsExp - expected
			variance += deaths * (atRiskExp / atRisk) * (1 - atRiskExp/atRisk) * (atRisk - deaths) / (atRisk - 1)
		}
		i = j
	}

	result := trial.StageResult{NAtRisk: len(patients), PValue: 1}
	if variance > 0 {
		result.ChiSquare = observedMinusExpected * observedMinusExpected / variance
		result.PValue = 1 - distuv.ChiSquared{K: 1}.CDF(result.ChiSquare)
	}
	return result, nil
}
