package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bkassahun/courseload/internal/app/models/dto"
	"github.com/bkassahun/courseload/internal/app/services"
	"github.com/bkassahun/courseload/internal/app/workflow"
	"github.com/bkassahun/courseload/internal/middleware"
)

// DashboardController handles the read-only reporting endpoints
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetTermSummary returns a term's per-stage course counts
// @Summary Term workflow summary
// @Description Counts a term's courses per approval stage. Recomputed from current data on every request.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param academicYear query int true "Academic year"
// @Param semester query string true "Semester (FIRST or SECOND)"
// @Success 200 {object} dto.APIResponse{data=dto.DashboardSummaryResponse} "Summary retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/summary [get]
func (c *DashboardController) GetTermSummary(ctx *gin.Context) {
	year, semester, ok := parseTermQuery(ctx)
	if !ok {
		return
	}

	summary, err := c.dashboardService.TermSummary(ctx, year, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.DashboardSummaryResponse{
		AcademicYear: summary.AcademicYear,
		Semester:     summary.Semester,
		TotalCourses: summary.TotalCourses,
		Unassigned:   summary.Unassigned,
		Stages:       make([]dto.StageSummary, 0, len(summary.Stages)),
	}
	for _, s := range summary.Stages {
		resp.Stages = append(resp.Stages, dto.StageSummary{
			Stage:    s.Stage.String(),
			Approved: s.Approved,
			Rejected: s.Rejected,
			Pending:  s.Pending,
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// GetInstructorRollUps returns per-instructor derived statuses for a term
// @Summary Instructor roll-ups
// @Description Derives each instructor's per-stage status from all of their course statuses, with current load figures.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param academicYear query int true "Academic year"
// @Param semester query string true "Semester (FIRST or SECOND)"
// @Success 200 {object} dto.APIResponse{data=dto.InstructorRollUpListResponse} "Roll-ups retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/instructors [get]
func (c *DashboardController) GetInstructorRollUps(ctx *gin.Context) {
	year, semester, ok := parseTermQuery(ctx)
	if !ok {
		return
	}

	summaries, err := c.dashboardService.InstructorSummaries(ctx, year, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.InstructorRollUpListResponse{
		AcademicYear: year,
		Semester:     semester,
		Instructors:  make([]dto.InstructorRollUp, 0, len(summaries)),
	}
	for _, s := range summaries {
		stages := make(map[string]workflow.RollUpStatus, len(s.Stages))
		for stage, status := range s.Stages {
			stages[stage.String()] = status
		}
		resp.Instructors = append(resp.Instructors, dto.InstructorRollUp{
			InstructorID: s.Instructor.ID,
			Name:         s.Instructor.Name,
			CourseCount:  s.CourseCount,
			TotalLoad:    s.TotalLoad,
			Overload:     s.Overload,
			Stages:       stages,
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
