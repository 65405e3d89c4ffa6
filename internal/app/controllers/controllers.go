// Package controllers holds the HTTP handlers. Controllers bind and validate
// requests, delegate to services, and translate errors through the central
// error middleware.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/models/dto"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

// errorCodeFor classifies an error for per-item failure lists, where the
// central error middleware cannot set the HTTP status.
func errorCodeFor(err error) dto.ErrorCode {
	var rateErr *apperrors.RateInconsistencyError
	switch {
	case errors.As(err, &rateErr):
		return dto.ErrorCodeRateInconsistency
	case errors.Is(err, apperrors.ErrConflict):
		return dto.ErrorCodeStatusConflict
	case errors.Is(err, apperrors.ErrIllegalTransition):
		return dto.ErrorCodeIllegalTransition
	case errors.Is(err, apperrors.ErrRemarksRequired):
		return dto.ErrorCodeRemarksRequired
	case errors.Is(err, apperrors.ErrIncompleteLoad):
		return dto.ErrorCodeIncompleteLoad
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.ErrorCodeForbidden
	case errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrInstructorNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrValidationFailed):
		return dto.ErrorCodeValidationFailed
	default:
		return dto.ErrorCodeInternalServer
	}
}

// parseIDParam reads a positive integer path parameter. On failure it writes
// the validation response and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a positive number").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseTermQuery reads the academicYear and semester query parameters shared
// by the term-scoped endpoints.
func parseTermQuery(ctx *gin.Context) (int, models.Semester, bool) {
	year, err := strconv.Atoi(ctx.Query("academicYear"))
	if err != nil || year < 2000 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academic year").
			WithDetails("academicYear must be a year of 2000 or later").
			WithField("academicYear")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, "", false
	}
	semester := models.Semester(ctx.Query("semester"))
	if !semester.Valid() {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester").
			WithDetails("semester must be FIRST or SECOND").
			WithField("semester")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, "", false
	}
	return year, semester, true
}
