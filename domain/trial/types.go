package trial

// Arm identifies the treatment assignment of a patient
type Arm string

const (
	ArmControl      Arm = "control"
	ArmExperimental Arm = "experimental"
)

// Biomarker identifies the predictive marker stratum of a patient
type Biomarker string

const (
	BiomarkerPositive Biomarker = "positive"
	BiomarkerNegative Biomarker = "negative"
)

// Stage identifies which progression draw an analysis reads
type Stage int

const (
	StageOne Stage = 1
	StageTwo Stage = 2
)

// Subgroup selects which patients an order statistic is taken over
type Subgroup string

const (
	SubgroupPositive Subgroup = "positive"
	SubgroupNegative Subgroup = "negative"
	SubgroupAll      Subgroup = "all"
)

// Contains reports whether a patient belongs to the subgroup
func (s Subgroup) Contains(p *Patient) bool {
	switch s {
	case SubgroupPositive:
		return p.Biomarker == BiomarkerPositive
	case SubgroupNegative:
		return p.Biomarker == BiomarkerNegative
	default:
		return true
	}
}

// Patient is one simulated subject. Biomarker is fixed at accrual, Arm at
// randomization. Stage-2 progression is a fresh independent draw, populated
// only when the replication continues past the interim. TimeAtRisk and Event
// are derived per analysis cutoff and overwritten at each censoring pass;
// a Patient is exclusively owned by one Realization.
type Patient struct {
	Index     int
	Biomarker Biomarker
	Arm       Arm

	EntryTime         float64 // months from study start
	Stage1Progression float64
	Stage2Progression float64

	TimeAtRisk float64
	Event      bool
}

// ProgressionThrough returns the progression time a given stage's calendar
// arithmetic reads: the stage-1 draw alone, or the stage-1 and stage-2 draws
// combined once the trial has continued.
func (p *Patient) ProgressionThrough(stage Stage) float64 {
	if stage == StageTwo {
		return p.Stage1Progression + p.Stage2Progression
	}
	return p.Stage1Progression
}

// CalendarEventTime is the study-clock time at which the patient's
// progression would be observed at the given stage.
func (p *Patient) CalendarEventTime(stage Stage) float64 {
	return p.EntryTime + p.ProgressionThrough(stage)
}

// Realization is one simulated trial: the retained analysis set per stratum
// (entry-time order) plus the analysis cutoffs computed along the way.
// Created at the start of a replication and discarded at its end.
type Realization struct {
	Positive []*Patient
	Negative []*Patient

	InterimCutoff float64
	FinalCutoff   float64
}

// All returns the combined analysis set, positive stratum first.
func (r *Realization) All() []*Patient {
	all := make([]*Patient, 0, len(r.Positive)+len(r.Negative))
	all = append(all, r.Positive...)
	all = append(all, r.Negative...)
	return all
}

// StageResult holds one subgroup's test result at one analysis.
// Immutable once computed.
type StageResult struct {
	ChiSquare float64 `json:"chi_square"`
	PValue    float64 `json:"p_value"`
	NAtRisk   int     `json:"n_at_risk"`
}

// Outcome is one of the six mutually exclusive terminal development
// recommendations. Exactly one is produced per replication.
type Outcome string

const (
	// OutcomeNoGoInterim: both interim conditions failed, stop for futility.
	OutcomeNoGoInterim Outcome = "no_go_interim"
	// OutcomeStandardRoute1: unselected confirmatory trial after a
	// negative-stratum interim signal held up at the final analysis.
	OutcomeStandardRoute1 Outcome = "standard_route1"
	// OutcomeEnrichRoute1: biomarker-enriched confirmatory trial, reached
	// via the unselected continuation route.
	OutcomeEnrichRoute1 Outcome = "enrich_route1"
	// OutcomeNoGoRoute1: unselected continuation failed both final boundaries.
	OutcomeNoGoRoute1 Outcome = "no_go_route1"
	// OutcomeEnrichRoute2: enrichment-only continuation succeeded under the
	// closed-testing combination rule.
	OutcomeEnrichRoute2 Outcome = "enrich_route2"
	// OutcomeNoGoRoute2: enrichment-only continuation failed.
	OutcomeNoGoRoute2 Outcome = "no_go_route2"
)

// Outcomes lists the six terminal outcomes in reporting order.
func Outcomes() []Outcome {
	return []Outcome{
		OutcomeNoGoInterim,
		OutcomeStandardRoute1,
		OutcomeEnrichRoute1,
		OutcomeNoGoRoute1,
		OutcomeEnrichRoute2,
		OutcomeNoGoRoute2,
	}
}

// Label returns the human-readable report label for the outcome.
func (o Outcome) Label() string {
	switch o {
	case OutcomeNoGoInterim:
		return "No-go at interim (futility)"
	case OutcomeStandardRoute1:
		return "Standard confirmatory trial (route 1)"
	case OutcomeEnrichRoute1:
		return "Enriched confirmatory trial (route 1)"
	case OutcomeNoGoRoute1:
		return "No-go after stage two (route 1)"
	case OutcomeEnrichRoute2:
		return "Enriched confirmatory trial (route 2)"
	case OutcomeNoGoRoute2:
		return "No-go after stage two (route 2)"
	default:
		return string(o)
	}
}
