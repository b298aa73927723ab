package trial

import (
	"math/rand"

	"trialsim/domain/core"
)

// AccrualGenerator produces the candidate patient pool for one replication:
// entry times uniform over the accrual horizon, biomarker status Bernoulli
// with the scenario prevalence.
type AccrualGenerator struct {
	scenario Scenario
}

// NewAccrualGenerator creates an accrual generator for a scenario
func NewAccrualGenerator(scenario Scenario) *AccrualGenerator {
	return &AccrualGenerator{scenario: scenario}
}

// Generate draws the full candidate pool. It has no side effects beyond the
// returned slice; arm assignment happens later, at randomization.
func (g *AccrualGenerator) Generate(rng *rand.Rand) ([]*Patient, error) {
	if g.scenario.Prevalence <= 0 || g.scenario.Prevalence > 1 {
		return nil, core.NewInvalidParameterError("prevalence", g.scenario.Prevalence, "must be in (0,1]")
	}
	size := g.scenario.PoolSize()
	if size <= 0 {
		return nil, core.NewInvalidParameterError("pool_size", size, "must be positive")
	}

	horizon := g.scenario.AccrualHorizon()
	pool := make([]*Patient, size)
	for i := range pool {
		marker := BiomarkerNegative
		if rng.Float64() < g.scenario.Prevalence {
			marker = BiomarkerPositive
		}
		pool[i] = &Patient{
			Index:     i,
			Biomarker: marker,
			EntryTime: rng.Float64() * horizon,
		}
	}
	return pool, nil
}
