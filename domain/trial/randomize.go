package trial

import (
	"sort"

	"trialsim/domain/core"
	"trialsim/domain/design"
)

// StratifiedRandomizer assigns treatment within each biomarker stratum by
// arrival order and builds the retained analysis set. Assignment is a
// deterministic alternation, not a shuffle: within a stratum, patients sorted
// by ascending entry time receive experimental at odd arrival ranks
// (1-indexed) and control at even ranks. This fixes asymptotic 1:1 balance
// per stratum; the earliest arrival in each stratum is always experimental.
type StratifiedRandomizer struct{}

// NewStratifiedRandomizer creates a stratified randomizer
func NewStratifiedRandomizer() *StratifiedRandomizer {
	return &StratifiedRandomizer{}
}

// Randomize assigns arms to the whole pool and returns the Realization built
// from the first design.StratumRetained arrivals of each stratum.
func (r *StratifiedRandomizer) Randomize(pool []*Patient) (*Realization, error) {
	positive := filterStratum(pool, BiomarkerPositive)
	negative := filterStratum(pool, BiomarkerNegative)

	if len(positive) < design.StratumRetained {
		return nil, core.NewInsufficientAccrualError(string(BiomarkerPositive), len(positive), design.StratumRetained)
	}
	if len(negative) < design.StratumRetained {
		return nil, core.NewInsufficientAccrualError(string(BiomarkerNegative), len(negative), design.StratumRetained)
	}

	assignByArrival(positive)
	assignByArrival(negative)

	return &Realization{
		Positive: positive[:design.StratumRetained],
		Negative: negative[:design.StratumRetained],
	}, nil
}

func filterStratum(pool []*Patient, marker Biomarker) []*Patient {
	stratum := make([]*Patient, 0, len(pool))
	for _, p := range pool {
		if p.Biomarker == marker {
			stratum = append(stratum, p)
		}
	}
	sort.Slice(stratum, func(i, j int) bool {
		return stratum[i].EntryTime < stratum[j].EntryTime
	})
	return stratum
}

// assignByArrival alternates arms over the entry-time-sorted stratum.
func assignByArrival(stratum []*Patient) {
	for i, p := range stratum {
		if i%2 == 0 {
			p.Arm = ArmExperimental
		} else {
			p.Arm = ArmControl
		}
	}
}
