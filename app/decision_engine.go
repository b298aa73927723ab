package app

import (
	"context"
	"math/rand"

	"trialsim/domain/design"
	"trialsim/domain/trial"
	"trialsim/internal/errors"
	"trialsim/ports"
)

// DecisionEngine runs the adaptive stages of one trial realization and emits
// exactly one terminal outcome. The branching is exhaustive and mutually
// exclusive: interim p-values send the trial down the unselected
// continuation (route 1), the enrichment-only continuation (route 2), or
// stop it for futility, and each continuation terminates in a go or no-go.
type DecisionEngine struct {
	scenario trial.Scenario
	events   *trial.EventTimeSimulator
	clock    *trial.CalendarClock
	logrank  ports.LogRankPort
}

// NewDecisionEngine creates a decision engine for one scenario
func NewDecisionEngine(scenario trial.Scenario, logrank ports.LogRankPort) *DecisionEngine {
	return &DecisionEngine{
		scenario: scenario,
		events:   trial.NewEventTimeSimulator(scenario),
		clock:    trial.NewCalendarClock(),
		logrank:  logrank,
	}
}

// Run simulates stage-1 event times for the realization, performs the
// interim analysis, and if the trial continues, re-simulates stage-2 event
// times and performs the final analysis of the chosen route.
func (e *DecisionEngine) Run(ctx context.Context, r *trial.Realization, rng *rand.Rand) (trial.Outcome, error) {
	e.events.SimulateStage(r.All(), trial.StageOne, rng)

	pNeg1, pPos1, err := e.interimAnalysis(ctx, r)
	if err != nil {
		return "", err
	}

	switch {
	case pNeg1 < e.scenario.AlphaNegative:
		return e.runRoute1(ctx, r, rng)
	case pPos1 < e.scenario.AlphaPositive:
		return e.runRoute2(ctx, r, rng)
	default:
		return trial.OutcomeNoGoInterim, nil
	}
}

// interimAnalysis censors the stage-1 cohorts (the first arrivals per
// stratum) at the interim cutoff and tests each stratum. The interim cutoff
// is the calendar time of the 33rd event among the positive-stratum interim
// cohort.
func (e *DecisionEngine) interimAnalysis(ctx context.Context, r *trial.Realization) (pNeg, pPos float64, err error) {
	posCohort := r.Positive[:design.Stage1Cohort]
	negCohort := r.Negative[:design.Stage1Cohort]

	cohort := make([]*trial.Patient, 0, 2*design.Stage1Cohort)
	cohort = append(cohort, posCohort...)
	cohort = append(cohort, negCohort...)

	cutoff, err := e.clock.LocateCutoff(cohort, trial.StageOne, design.Stage1EventTarget, trial.SubgroupPositive)
	if err != nil {
		return 0, 0, errors.Wrap(err, "interim cutoff")
	}
	r.InterimCutoff = cutoff
	e.clock.CensorAt(cohort, trial.StageOne, cutoff)

	negRes, err := e.logrank.Compare(ctx, negCohort)
	if err != nil {
		return 0, 0, errors.Wrap(err, "interim negative-stratum test")
	}
	posRes, err := e.logrank.Compare(ctx, posCohort)
	if err != nil {
		return 0, 0, errors.Wrap(err, "interim positive-stratum test")
	}
	return negRes.PValue, posRes.PValue, nil
}

// runRoute1 is the unselected continuation: both strata keep enrolling, the
// final cutoff is the 70th event among positive-stratum patients over the
// full analysis set, and each stratum is tested against its spending
// boundary. The negative stratum is tried first; an enriched trial is the
// fallback when only the positive stratum clears its boundary.
func (e *DecisionEngine) runRoute1(ctx context.Context, r *trial.Realization, rng *rand.Rand) (trial.Outcome, error) {
	if err := e.finalAnalysisSetup(r, rng, design.Route1EventTarget, trial.SubgroupPositive); err != nil {
		return "", errors.Wrap(err, "route 1 final analysis")
	}

	negRes, err := e.logrank.Compare(ctx, r.Negative[:design.Route1Cohort])
	if err != nil {
		return "", errors.Wrap(err, "route 1 negative-stratum test")
	}
	posRes, err := e.logrank.Compare(ctx, r.Positive[:design.Route1Cohort])
	if err != nil {
		return "", errors.Wrap(err, "route 1 positive-stratum test")
	}

	switch {
	case negRes.PValue < design.SpendingBoundary(negRes.ChiSquare, design.InfoNegative):
		return trial.OutcomeStandardRoute1, nil
	case posRes.PValue < design.SpendingBoundary(posRes.ChiSquare, design.InfoPositive):
		return trial.OutcomeEnrichRoute1, nil
	default:
		return trial.OutcomeNoGoRoute1, nil
	}
}

// runRoute2 is the enrichment-only continuation. The final cutoff is the
// 110th event over both strata combined. The positive-stratum p-value must
// undercut both the spending boundary and the closed-testing intersection
// combination of the stricter positive and negative tails; the negative
// stratum contributes its statistic to that combination only.
func (e *DecisionEngine) runRoute2(ctx context.Context, r *trial.Realization, rng *rand.Rand) (trial.Outcome, error) {
	if err := e.finalAnalysisSetup(r, rng, design.Route2EventTarget, trial.SubgroupAll); err != nil {
		return "", errors.Wrap(err, "route 2 final analysis")
	}

	posRes, err := e.logrank.Compare(ctx, r.Positive[:design.Route2Cohort])
	if err != nil {
		return "", errors.Wrap(err, "route 2 positive-stratum test")
	}
	negRes, err := e.logrank.Compare(ctx, r.Negative[:design.Route2Cohort])
	if err != nil {
		return "", errors.Wrap(err, "route 2 negative-stratum test")
	}

	p1 := design.SpendingBoundary(posRes.ChiSquare, design.InfoPositive)
	p2 := design.SecondaryTail(posRes.ChiSquare, design.InfoPositive)
	p3 := design.SecondaryTail(negRes.ChiSquare, design.InfoNegative)
	p4 := design.CombineIntersection(p2, p3)

	threshold := p1
	if p4 < threshold {
		threshold = p4
	}
	if posRes.PValue < threshold {
		return trial.OutcomeEnrichRoute2, nil
	}
	return trial.OutcomeNoGoRoute2, nil
}

// finalAnalysisSetup re-simulates stage-2 progression for the whole analysis
// set, locates the final cutoff over the given subgroup and censors everyone
// at it. Stage-2 calendar arithmetic reads the combined stage-1 plus stage-2
// progression draws.
func (e *DecisionEngine) finalAnalysisSetup(r *trial.Realization, rng *rand.Rand, eventTarget int, subgroup trial.Subgroup) error {
	all := r.All()
	e.events.SimulateStage(all, trial.StageTwo, rng)

	cutoff, err := e.clock.LocateCutoff(all, trial.StageTwo, eventTarget, subgroup)
	if err != nil {
		return err
	}
	r.FinalCutoff = cutoff
	e.clock.CensorAt(all, trial.StageTwo, cutoff)
	return nil
}
