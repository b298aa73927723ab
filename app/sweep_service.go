package app

import (
	"context"
	"time"

	"trialsim/domain/core"
	"trialsim/domain/trial"
	"trialsim/internal/errors"
)

// SweepService runs the simulator over a grid of scenario variants and
// collects one summary per variant, for side-by-side operating
// characteristics.
type SweepService struct {
	sims *SimulationService
}

// SweepRequest defines a labeled grid of scenarios. Every variant runs with
// the same replication count and base seed so rows differ only by the
// parameter under study.
type SweepRequest struct {
	Variants []SweepVariant
	Workers  int
}

// SweepVariant is one grid point.
type SweepVariant struct {
	Label    string
	Scenario trial.Scenario
}

// SweepResult pairs each variant with its summary.
type SweepResult struct {
	SweepID   core.ID    `json:"sweep_id"`
	Rows      []SweepRow `json:"rows"`
	RuntimeMs int64      `json:"runtime_ms"`
}

// SweepRow is one completed grid point.
type SweepRow struct {
	Label   string         `json:"label"`
	Summary *trial.Summary `json:"summary"`
}

// NewSweepService creates a sweep service
func NewSweepService(sims *SimulationService) *SweepService {
	return &SweepService{sims: sims}
}

// Run executes every variant in order. Variants run sequentially; the
// per-run replication pool already saturates the workers.
func (s *SweepService) Run(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	if len(req.Variants) == 0 {
		return nil, errors.InvalidInput("sweep needs at least one variant")
	}
	started := time.Now()

	result := &SweepResult{SweepID: core.NewID(), Rows: make([]SweepRow, 0, len(req.Variants))}
	for _, v := range req.Variants {
		summary, err := s.sims.Run(ctx, SimulationRequest{Scenario: v.Scenario, Workers: req.Workers})
		if err != nil {
			return nil, errors.Wrapf(err, "sweep variant %q", v.Label)
		}
		result.Rows = append(result.Rows, SweepRow{Label: v.Label, Summary: summary})
	}
	result.RuntimeMs = time.Since(started).Milliseconds()
	return result, nil
}
