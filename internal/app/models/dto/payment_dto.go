package dto

import "github.com/bkassahun/courseload/internal/app/models"

// CalculatePaymentRequest asks for an overload payment calculation for one
// instructor under a given rate. Override re-confirms a rate that differs
// from the one already established for the finance run.
type CalculatePaymentRequest struct {
	AcademicYear int             `json:"academicYear" binding:"required,min=2000"`
	Semester     models.Semester `json:"semester" binding:"required"`
	Rate         float64         `json:"rate" binding:"required"`
	Override     bool            `json:"override,omitempty"`
}

// SavePaymentRequest upserts the payment record for one (instructor, year,
// semester) triple.
type SavePaymentRequest struct {
	InstructorID int64           `json:"instructorId" binding:"required,min=1"`
	AcademicYear int             `json:"academicYear" binding:"required,min=2000"`
	Semester     models.Semester `json:"semester" binding:"required"`
	Rate         float64         `json:"rate" binding:"required"`
	Override     bool            `json:"override,omitempty"`
	Remarks      string          `json:"remarks,omitempty"`
}

// BatchSavePaymentsRequest saves payments for several instructors under one
// shared rate.
type BatchSavePaymentsRequest struct {
	AcademicYear  int             `json:"academicYear" binding:"required,min=2000"`
	Semester      models.Semester `json:"semester" binding:"required"`
	Rate          float64         `json:"rate" binding:"required"`
	Override      bool            `json:"override,omitempty"`
	InstructorIDs []int64         `json:"instructorIds" binding:"required,min=1"`
}

// BatchPaymentFailure reports one instructor whose payment could not be saved.
type BatchPaymentFailure struct {
	InstructorID int64     `json:"instructorId"`
	Code         ErrorCode `json:"code"`
	Message      string    `json:"message"`
}

// BatchSavePaymentsResponse reports per-instructor outcomes.
type BatchSavePaymentsResponse struct {
	Saved  []*models.Payment     `json:"saved"`
	Failed []BatchPaymentFailure `json:"failed"`
}

// ManualPaymentRequest enters a fully itemized payment for a single course's
// instructor. TotalAmount is the literal sum of the entered components; the
// rate-consistency invariant does not apply on this path.
type ManualPaymentRequest struct {
	BaseAmount        float64 `json:"baseAmount" binding:"min=0"`
	HDPAllowance      float64 `json:"hdpAllowance" binding:"min=0"`
	PositionAllowance float64 `json:"positionAllowance" binding:"min=0"`
	AdvisorAllowance  float64 `json:"advisorAllowance" binding:"min=0"`
	OverloadAmount    float64 `json:"overloadAmount" binding:"min=0"`
	Remarks           string  `json:"remarks,omitempty"`
}

// PaymentCalculationResponse reports an overload payment calculation.
type PaymentCalculationResponse struct {
	InstructorID int64   `json:"instructorId"`
	TotalLoad    float64 `json:"totalLoad"`
	Overload     float64 `json:"overload"`
	Rate         float64 `json:"rate"`
	Amount       float64 `json:"amount"`
	// LoadIncomplete flags that the instructor still has assigned courses
	// that have not cleared content approval, so TotalLoad may understate
	// the real figure.
	LoadIncomplete bool `json:"loadIncomplete,omitempty"`
}

// WorkloadResponse reports the computed load figures for one instructor.
type WorkloadResponse struct {
	InstructorID      int64           `json:"instructorId"`
	AcademicYear      int             `json:"academicYear"`
	Semester          models.Semester `json:"semester"`
	CourseCount       int             `json:"courseCount"`
	SupplementalHours float64         `json:"supplementalHours"`
	TotalLoad         float64         `json:"totalLoad"`
	Overload          float64         `json:"overload"`
}
