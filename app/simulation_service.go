package app

import (
	"context"
	"runtime"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"trialsim/domain/core"
	"trialsim/domain/trial"
	"trialsim/internal/errors"
	"trialsim/ports"
)

// SimulationService is the Monte Carlo driver: it repeats one full trial
// realization per replication and tallies the terminal outcomes into an
// empirical operating-characteristics summary.
type SimulationService struct {
	logrank ports.LogRankPort
	rng     ports.RNGPort
}

// SimulationRequest defines one run of the driver.
type SimulationRequest struct {
	Scenario trial.Scenario
	// Workers bounds concurrent replications; zero means one per CPU.
	// Results are identical for any worker count: each replication draws
	// from its own seed-derived sub-stream and writes its own result slot.
	Workers int
	// RunID is generated when empty.
	RunID core.RunID
}

// replicationResult is one replication's contribution to the tally.
type replicationResult struct {
	outcome     trial.Outcome
	interimTime float64
	finalTime   float64
	stageTwo    bool
}

// NewSimulationService creates a simulation service
func NewSimulationService(logrank ports.LogRankPort, rng ports.RNGPort) *SimulationService {
	return &SimulationService{logrank: logrank, rng: rng}
}

// Run validates the scenario, executes every replication and merges the
// per-replication results into a Summary. Any replication failure aborts
// the whole run: feasibility errors indicate the pool size is incompatible
// with the requested order statistics, not a transient condition.
func (s *SimulationService) Run(ctx context.Context, req SimulationRequest) (*trial.Summary, error) {
	started := time.Now()

	scenario := req.Scenario
	if err := scenario.Validate(); err != nil {
		return nil, errors.Wrap(err, "scenario rejected")
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	runID := req.RunID
	if runID == "" {
		runID = core.RunID(core.NewID())
	}

	engine := NewDecisionEngine(scenario, s.logrank)
	results := make([]replicationResult, scenario.Replications)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i := 0; i < scenario.Replications; i++ {
		i := i
		group.Go(func() error {
			res, err := s.runReplication(groupCtx, engine, scenario, i)
			if err != nil {
				return errors.Wrapf(err, "replication %d", i)
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.SimulationFailed("simulation aborted", err)
	}

	return s.summarize(runID, scenario, results, time.Since(started))
}

// runReplication executes one independent trial realization on its own
// deterministic RNG sub-stream.
func (s *SimulationService) runReplication(ctx context.Context, engine *DecisionEngine, scenario trial.Scenario, replication int) (replicationResult, error) {
	rng, err := s.rng.ReplicationStream(ctx, replication, scenario.Seed)
	if err != nil {
		return replicationResult{}, err
	}

	pool, err := trial.NewAccrualGenerator(scenario).Generate(rng)
	if err != nil {
		return replicationResult{}, err
	}
	realization, err := trial.NewStratifiedRandomizer().Randomize(pool)
	if err != nil {
		return replicationResult{}, err
	}

	outcome, err := engine.Run(ctx, realization, rng)
	if err != nil {
		return replicationResult{}, err
	}
	return replicationResult{
		outcome:     outcome,
		interimTime: realization.InterimCutoff,
		finalTime:   realization.FinalCutoff,
		stageTwo:    outcome != trial.OutcomeNoGoInterim,
	}, nil
}

func (s *SimulationService) summarize(runID core.RunID, scenario trial.Scenario, results []replicationResult, elapsed time.Duration) (*trial.Summary, error) {
	counts := make(map[trial.Outcome]int, 6)
	for _, o := range trial.Outcomes() {
		counts[o] = 0
	}

	interimTimes := make([]float64, 0, len(results))
	finalTimes := make([]float64, 0, len(results))
	for _, r := range results {
		counts[r.outcome]++
		interimTimes = append(interimTimes, r.interimTime)
		if r.stageTwo {
			finalTimes = append(finalTimes, r.finalTime)
		}
	}

	summary := &trial.Summary{
		RunID:            runID,
		Scenario:         scenario,
		Replications:     len(results),
		Counts:           counts,
		InterimTime:      summarizeTimes(interimTimes),
		FinalTime:        summarizeTimes(finalTimes),
		StageTwoFraction: float64(len(finalTimes)) / float64(len(results)),
		RuntimeMs:        elapsed.Milliseconds(),
	}
	if err := summary.Validate(); err != nil {
		return nil, errors.SimulationFailed("tally invariant violated", err)
	}
	return summary, nil
}

func summarizeTimes(times []float64) trial.TimeSummary {
	if len(times) == 0 {
		return trial.TimeSummary{}
	}
	mean, _ := stats.Mean(times)
	median, _ := stats.Median(times)
	p90, _ := stats.Percentile(times, 90)
	return trial.TimeSummary{Mean: mean, Median: median, P90: p90}
}
