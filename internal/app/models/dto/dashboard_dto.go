package dto

import (
	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/workflow"
)

// StageSummary counts courses relative to one approval stage.
type StageSummary struct {
	Stage    string `json:"stage"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
	Pending  int    `json:"pending"`
}

// DashboardSummaryResponse is the term-wide view of workflow progress.
// Everything here is recomputed from current data on every request; nothing
// is cached.
type DashboardSummaryResponse struct {
	AcademicYear int             `json:"academicYear"`
	Semester     models.Semester `json:"semester"`
	TotalCourses int             `json:"totalCourses"`
	Unassigned   int             `json:"unassigned"`
	Stages       []StageSummary  `json:"stages"`
}

// InstructorRollUp is one instructor's derived status per stage.
type InstructorRollUp struct {
	InstructorID int64                            `json:"instructorId"`
	Name         string                           `json:"name"`
	CourseCount  int                              `json:"courseCount"`
	TotalLoad    float64                          `json:"totalLoad"`
	Overload     float64                          `json:"overload"`
	Stages       map[string]workflow.RollUpStatus `json:"stages"`
}

// InstructorRollUpListResponse lists per-instructor roll-ups for a term.
type InstructorRollUpListResponse struct {
	AcademicYear int                `json:"academicYear"`
	Semester     models.Semester    `json:"semester"`
	Instructors  []InstructorRollUp `json:"instructors"`
}

// ResetSemesterRequest begins or confirms a semester reset.
type ResetSemesterRequest struct {
	AcademicYear int             `json:"academicYear" binding:"required,min=2000"`
	Semester     models.Semester `json:"semester" binding:"required"`
}

// ConfirmResetRequest carries the confirmation token from the begin step
// together with the term it was issued for. A token for a different term is
// rejected.
type ConfirmResetRequest struct {
	ConfirmationToken string          `json:"confirmationToken" binding:"required,uuid"`
	AcademicYear      int             `json:"academicYear" binding:"required,min=2000"`
	Semester          models.Semester `json:"semester" binding:"required"`
}

// BeginResetResponse returns the token the caller must echo back to confirm.
type BeginResetResponse struct {
	ConfirmationToken string `json:"confirmationToken"`
	ExpiresAt         string `json:"expiresAt"`
	CourseCount       int    `json:"courseCount"`
}

// ResetSemesterResponse reports how many courses were rewound.
type ResetSemesterResponse struct {
	ResetCount int `json:"resetCount"`
}
