package trial

import (
	"math"

	"trialsim/domain/core"
)

// Scenario holds the assumed truth and design inputs for one simulated
// development program. Medians are in months, accrual in patients/month.
type Scenario struct {
	Prevalence  float64 `json:"prevalence"`
	AccrualRate float64 `json:"accrual_rate"`

	// Assumed median PFS under the alternative (experimental arm) and the
	// null (control arm), per stratum.
	MedianPositiveExperimental float64 `json:"median_positive_experimental"`
	MedianNegativeExperimental float64 `json:"median_negative_experimental"`
	MedianPositiveControl      float64 `json:"median_positive_control"`
	MedianNegativeControl      float64 `json:"median_negative_control"`

	// Recorded per-stratum sample-size inputs of the planned design. The
	// positive input also sizes the accrual candidate pool (see PoolSize);
	// the stage cohort sizes themselves are fixed constants of the
	// validated design, not derived from these.
	SampleSizePositive    int `json:"sample_size_positive"`
	SampleSizePositiveMax int `json:"sample_size_positive_max"`
	SampleSizeNegative    int `json:"sample_size_negative"`

	// Stage-1 significance thresholds for the negative and positive strata.
	AlphaNegative float64 `json:"alpha_negative"`
	AlphaPositive float64 `json:"alpha_positive"`

	Replications int   `json:"replications"`
	Seed         int64 `json:"seed"`
}

// Validate checks every scenario parameter before any replication starts.
func (s Scenario) Validate() error {
	if s.Prevalence <= 0 || s.Prevalence > 1 {
		return core.NewInvalidParameterError("prevalence", s.Prevalence, "must be in (0,1]")
	}
	if s.AccrualRate <= 0 {
		return core.NewInvalidParameterError("accrual_rate", s.AccrualRate, "must be positive")
	}
	for name, m := range map[string]float64{
		"median_positive_experimental": s.MedianPositiveExperimental,
		"median_negative_experimental": s.MedianNegativeExperimental,
		"median_positive_control":      s.MedianPositiveControl,
		"median_negative_control":      s.MedianNegativeControl,
	} {
		if m <= 0 {
			return core.NewInvalidParameterError(name, m, "must be positive")
		}
	}
	if s.SampleSizePositive <= 0 {
		return core.NewInvalidParameterError("sample_size_positive", s.SampleSizePositive, "must be positive")
	}
	if s.SampleSizeNegative <= 0 {
		return core.NewInvalidParameterError("sample_size_negative", s.SampleSizeNegative, "must be positive")
	}
	if s.AlphaNegative <= 0 || s.AlphaNegative >= 1 {
		return core.NewInvalidParameterError("alpha_negative", s.AlphaNegative, "must be in (0,1)")
	}
	if s.AlphaPositive <= 0 || s.AlphaPositive >= 1 {
		return core.NewInvalidParameterError("alpha_positive", s.AlphaPositive, "must be in (0,1)")
	}
	if s.Replications <= 0 {
		return core.NewInvalidParameterError("replications", s.Replications, "must be positive")
	}
	if s.PoolSize() <= 0 {
		return core.NewInvalidParameterError("pool_size", s.PoolSize(), "derived candidate pool is empty")
	}
	return nil
}

// PoolSize is the number of candidate patients generated per replication:
// four times the positive-stratum sample-size input, inflated by prevalence
// so the positive stratum accrues enough patients in expectation.
func (s Scenario) PoolSize() int {
	return int(math.Floor(4 * float64(s.SampleSizePositive) / s.Prevalence))
}

// AccrualHorizon is the calendar window (months) over which the candidate
// pool enters the study.
func (s Scenario) AccrualHorizon() float64 {
	return float64(s.PoolSize()) / s.AccrualRate
}

// MedianFor selects the assumed median PFS for an arm within a stratum.
func (s Scenario) MedianFor(arm Arm, marker Biomarker) float64 {
	if arm == ArmExperimental {
		if marker == BiomarkerPositive {
			return s.MedianPositiveExperimental
		}
		return s.MedianNegativeExperimental
	}
	if marker == BiomarkerPositive {
		return s.MedianPositiveControl
	}
	return s.MedianNegativeControl
}

// HazardFor converts the selected median to the exponential event rate.
func (s Scenario) HazardFor(arm Arm, marker Biomarker) float64 {
	return math.Ln2 / s.MedianFor(arm, marker)
}
