// Package design carries the constants and boundary mathematics of the one
// validated two-stage adaptive enrichment design this simulator studies.
//
// Stage cohort sizes and event targets are literal constants of that design.
// They are intentionally NOT derived from the scenario's per-stratum
// sample-size inputs; re-deriving them algebraically would change the
// design's operating characteristics.
package design

const (
	// StratumRetained is the per-stratum analysis set: the first arrivals
	// of each biomarker stratum kept for analysis.
	StratumRetained = 120

	// Stage1Cohort is the per-stratum cohort analyzed at the interim.
	Stage1Cohort = 40

	// Stage1EventTarget is the interim cutoff: the k-th event among the
	// positive-stratum interim cohort.
	Stage1EventTarget = 33

	// Route1Cohort is the per-stratum cohort analyzed at the route-1 final
	// analysis (unselected continuation).
	Route1Cohort = 80

	// Route1EventTarget is the route-1 final cutoff: the k-th event among
	// positive-stratum patients over the full analysis set.
	Route1EventTarget = 70

	// Route2Cohort is the per-stratum cohort analyzed at the route-2 final
	// analysis (enrichment-only continuation).
	Route2Cohort = 40

	// Route2EventTarget is the route-2 final cutoff: the k-th event over
	// both strata combined.
	Route2EventTarget = 110

	// PlannedEvents is the total event count the boundary spending is
	// scaled against.
	PlannedEvents = 70

	// InfoNegative and InfoPositive are the interim information
	// denominators (events) for the negative and positive strata.
	InfoNegative = 33
	InfoPositive = 37
)

const (
	// PrimaryMultiplier is the one-sided 5% normal quantile used by the
	// primary spending boundary.
	PrimaryMultiplier = 1.6448

	// SecondaryMultiplier drives the stricter tail probabilities feeding
	// the closed-testing combination.
	SecondaryMultiplier = 1.9545
)
