// Package payment holds the pure overload-payment math: the load-to-amount
// formula and the rate-consistency rule shared by every payment in a finance
// run. Persistence and batch orchestration live in the services layer.
package payment

import (
	"fmt"
	"math"

	"github.com/bkassahun/courseload/internal/app/workload"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

// RateTolerance is the widest difference between two rates still considered
// the same rate within one finance run.
const RateTolerance = 0.01

// ValidateRate rejects rates that are negative or not a finite number. The
// check runs before any calculation so a bad rate never reaches storage.
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: rate must be a finite number", apperrors.ErrValidationFailed)
	}
	if rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", apperrors.ErrValidationFailed)
	}
	return nil
}

// OverloadAmount converts a total load into an overload payment amount under
// the given rate: round2(max(0, totalLoad - 12) * rate). A load at or below
// the standard full load pays zero without error.
func OverloadAmount(totalLoad, rate float64) (float64, error) {
	if err := ValidateRate(rate); err != nil {
		return 0, err
	}
	return workload.Round2(workload.Overload(totalLoad) * rate), nil
}

// CheckRateConsistency enforces the shared-rate invariant: once a finance run
// has an established rate, every subsequent rate must fall within
// RateTolerance of it unless the caller explicitly overrides. All instructors
// paid from one term's budget pool share one per-unit rate.
func CheckRateConsistency(establishedRate, attemptedRate float64, override bool) error {
	if err := ValidateRate(attemptedRate); err != nil {
		return err
	}
	if override {
		return nil
	}
	if math.Abs(establishedRate-attemptedRate) > RateTolerance {
		return &apperrors.RateInconsistencyError{
			ExistingRate:  establishedRate,
			AttemptedRate: attemptedRate,
		}
	}
	return nil
}
