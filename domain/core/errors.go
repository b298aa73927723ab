package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrInvalidParameter = errors.New("invalid parameter")

	// Accrual / analysis feasibility errors. Both indicate that the fixed
	// accrual pool is incompatible with the requested design, so a single
	// occurrence aborts the whole run rather than one replication.
	ErrInsufficientAccrual       = errors.New("insufficient accrual")
	ErrOrderStatisticUnavailable = errors.New("order statistic unavailable")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// Error constructors with context
func NewInvalidParameterError(name string, value interface{}, reason string) error {
	return fmt.Errorf("%w: %s=%v (%s)", ErrInvalidParameter, name, value, reason)
}

func NewInsufficientAccrualError(stratum string, got, need int) error {
	return fmt.Errorf("%w: stratum %s accrued %d patients, need %d", ErrInsufficientAccrual, stratum, got, need)
}

func NewOrderStatisticError(subgroup string, target, available int) error {
	return fmt.Errorf("%w: %d-th event requested in subgroup %s but only %d exist", ErrOrderStatisticUnavailable, target, subgroup, available)
}

// Error checking helpers
func IsInvalidParameterError(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsFeasibilityError(err error) bool {
	return errors.Is(err, ErrInsufficientAccrual) ||
		errors.Is(err, ErrOrderStatisticUnavailable)
}
