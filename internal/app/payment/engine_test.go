package payment

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

func TestValidateRate(t *testing.T) {
	assert.NoError(t, ValidateRate(0))
	assert.NoError(t, ValidateRate(1250.50))

	for _, rate := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := ValidateRate(rate)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "rate %v", rate)
	}
}

func TestOverloadAmount(t *testing.T) {
	amount, err := OverloadAmount(15, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 3000.0, amount, 1e-9)

	amount, err = OverloadAmount(12, 1000)
	require.NoError(t, err)
	assert.Zero(t, amount)

	amount, err = OverloadAmount(8.5, 1000)
	require.NoError(t, err)
	assert.Zero(t, amount)

	amount, err = OverloadAmount(14.01, 950.25)
	require.NoError(t, err)
	assert.InDelta(t, 1910.00, amount, 1e-9)
}

func TestOverloadAmountRejectsBadRate(t *testing.T) {
	_, err := OverloadAmount(15, -100)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = OverloadAmount(15, math.NaN())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCheckRateConsistencyWithinTolerance(t *testing.T) {
	assert.NoError(t, CheckRateConsistency(1000, 1000, false))
	assert.NoError(t, CheckRateConsistency(1000, 1000.005, false))
	assert.NoError(t, CheckRateConsistency(1000, 999.995, false))
}

func TestCheckRateConsistencyConflict(t *testing.T) {
	err := CheckRateConsistency(1000, 1000.02, false)
	require.Error(t, err)

	var rateErr *apperrors.RateInconsistencyError
	require.True(t, errors.As(err, &rateErr))
	assert.InDelta(t, 1000.0, rateErr.ExistingRate, 1e-9)
	assert.InDelta(t, 1000.02, rateErr.AttemptedRate, 1e-9)

	err = CheckRateConsistency(1000, 1200, false)
	assert.Error(t, err)
}

func TestCheckRateConsistencyOverride(t *testing.T) {
	assert.NoError(t, CheckRateConsistency(1000, 1200, true))

	// Override skips the consistency check, not the validity check.
	err := CheckRateConsistency(1000, -5, true)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
