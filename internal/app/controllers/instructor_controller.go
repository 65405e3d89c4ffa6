package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bkassahun/courseload/internal/app/models/dto"
	"github.com/bkassahun/courseload/internal/app/services"
	"github.com/bkassahun/courseload/internal/middleware"
)

// InstructorController handles instructor roster and workload operations
type InstructorController struct {
	instructorService services.InstructorService
	workloadService   services.WorkloadService
	approvalService   services.ApprovalService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(instructorService services.InstructorService, workloadService services.WorkloadService, approvalService services.ApprovalService) *InstructorController {
	return &InstructorController{
		instructorService: instructorService,
		workloadService:   workloadService,
		approvalService:   approvalService,
	}
}

// CreateInstructor registers an instructor
// @Summary Create a new instructor
// @Tags instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInstructorRequest true "Instructor information"
// @Success 201 {object} dto.APIResponse{data=models.Instructor} "Instructor created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors [post]
func (c *InstructorController) CreateInstructor(ctx *gin.Context) {
	var req dto.CreateInstructorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	instructor, err := c.instructorService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      instructor,
		Timestamp: time.Now(),
	})
}

// GetInstructor retrieves an instructor by ID
// @Summary Get instructor by ID
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=models.Instructor} "Instructor retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid instructor ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id} [get]
func (c *InstructorController) GetInstructor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	instructor, err := c.instructorService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      instructor,
		Timestamp: time.Now(),
	})
}

// GetAllInstructors lists the whole roster
// @Summary List instructors
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Instructor} "Instructors retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors [get]
func (c *InstructorController) GetAllInstructors(ctx *gin.Context) {
	instructors, err := c.instructorService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      instructors,
		Timestamp: time.Now(),
	})
}

// UpdateInstructor updates an instructor
// @Summary Update instructor
// @Description Updates descriptive fields and supplemental hours. Saved payments are not recomputed.
// @Tags instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Param request body dto.UpdateInstructorRequest true "Instructor information"
// @Success 200 {object} dto.APIResponse{data=models.Instructor} "Instructor updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id} [put]
func (c *InstructorController) UpdateInstructor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateInstructorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	instructor, err := c.instructorService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      instructor,
		Timestamp: time.Now(),
	})
}

// DeleteInstructor removes an instructor
// @Summary Delete instructor
// @Description Deletes an instructor with no assigned courses
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Instructor deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid instructor ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 409 {object} dto.ErrorResponse "Instructor still has assigned courses"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id} [delete]
func (c *InstructorController) DeleteInstructor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.instructorService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Instructor deleted"},
		Timestamp: time.Now(),
	})
}

// GetInstructorWorkload computes an instructor's load for a term
// @Summary Get instructor workload
// @Description Computes the instructor's load from fully approved courses plus supplemental hours
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Param academicYear query int true "Academic year"
// @Param semester query string true "Semester (FIRST or SECOND)"
// @Success 200 {object} dto.APIResponse{data=dto.WorkloadResponse} "Workload computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id}/workload [get]
func (c *InstructorController) GetInstructorWorkload(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	year, semester, ok := parseTermQuery(ctx)
	if !ok {
		return
	}

	figures, err := c.workloadService.ComputeInstructorLoad(ctx, id, year, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.WorkloadResponse{
			InstructorID:      figures.InstructorID,
			AcademicYear:      figures.AcademicYear,
			Semester:          figures.Semester,
			CourseCount:       len(figures.CountedCourses),
			SupplementalHours: figures.SupplementalHours,
			TotalLoad:         figures.TotalLoad,
			Overload:          figures.Overload,
		},
		Timestamp: time.Now(),
	})
}

// BulkTransitionCourses applies one action to several of an instructor's courses
// @Summary Bulk workflow action
// @Description Applies one action to several courses assigned to this instructor. Per-course failures do not undo the successes.
// @Tags instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Param request body dto.BulkTransitionRequest true "Bulk transition request"
// @Success 200 {object} dto.APIResponse{data=dto.BulkTransitionResponse} "Per-course outcomes"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or missing remarks"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id}/courses/transition [post]
func (c *InstructorController) BulkTransitionCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.BulkTransitionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	result, err := c.approvalService.BulkTransition(ctx, id, req.CourseIDs, req.Action, actor, req.Remarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      bulkTransitionResponse(result),
		Timestamp: time.Now(),
	})
}

func bulkTransitionResponse(result *services.BulkTransitionResult) dto.BulkTransitionResponse {
	resp := dto.BulkTransitionResponse{
		Succeeded: result.Succeeded,
		Failed:    make([]dto.BulkTransitionFailure, 0, len(result.Failed)),
	}
	if resp.Succeeded == nil {
		resp.Succeeded = []int64{}
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, dto.BulkTransitionFailure{
			CourseID: f.CourseID,
			Code:     errorCodeFor(f.Err),
			Message:  f.Err.Error(),
		})
	}
	return resp
}
