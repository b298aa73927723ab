package ports

import (
	"context"

	"trialsim/domain/trial"
)

// LogRankPort computes a one-degree-of-freedom log-rank chi-square statistic
// and upper-tail p-value for a two-arm censored time-to-event comparison.
// Implementations must be invariant to which arm is labeled reference.
type LogRankPort interface {
	// Compare consumes patients carrying time-at-risk, event indicator and
	// arm as of the current analysis cutoff.
	Compare(ctx context.Context, patients []*trial.Patient) (trial.StageResult, error)
}
