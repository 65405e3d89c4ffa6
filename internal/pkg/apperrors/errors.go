package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrInvalidFormat      = errors.New("invalid token format")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Workflow errors
var (
	// ErrConflict means the course's stored status no longer matches the
	// expected status named by the caller. The engine never auto-resolves it;
	// the caller must re-fetch and retry.
	ErrConflict = errors.New("status conflict")

	// ErrIllegalTransition means the acting role holds the course but the
	// requested action has no edge from the current status.
	ErrIllegalTransition = errors.New("illegal transition")

	ErrCourseNotFound     = errors.New("course not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrRemarksRequired    = errors.New("remarks are required when rejecting")
)

// Payment errors
var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrFinanceRunNotFound = errors.New("finance run not found")

	// ErrIncompleteLoad flags a payment computed from a load figure known to
	// be incomplete: the instructor still has assigned courses that have not
	// cleared content approval.
	ErrIncompleteLoad = errors.New("instructor load is incomplete")

	// ErrResetTokenInvalid covers missing, expired, or mismatched semester
	// reset confirmation tokens.
	ErrResetTokenInvalid = errors.New("reset confirmation token is invalid or expired")
)

// RateInconsistencyError is returned when a payment calculation or save names
// a rate that differs from the one already established for the finance run.
// It carries both rates so the caller can decide whether to match or
// explicitly override.
type RateInconsistencyError struct {
	ExistingRate  float64
	AttemptedRate float64
}

func (e *RateInconsistencyError) Error() string {
	return fmt.Sprintf("rate %.2f does not match the rate %.2f already used in this finance run", e.AttemptedRate, e.ExistingRate)
}

// IsRateInconsistency reports whether err is a RateInconsistencyError and
// returns it if so.
func IsRateInconsistency(err error) (*RateInconsistencyError, bool) {
	var rateErr *RateInconsistencyError
	if errors.As(err, &rateErr) {
		return rateErr, true
	}
	return nil, false
}
