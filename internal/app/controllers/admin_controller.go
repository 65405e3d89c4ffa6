package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bkassahun/courseload/internal/app/models/dto"
	"github.com/bkassahun/courseload/internal/app/services"
	"github.com/bkassahun/courseload/internal/middleware"
)

// AdminController handles administrative operations
type AdminController struct {
	approvalService services.ApprovalService
}

// NewAdminController creates a new AdminController
func NewAdminController(approvalService services.ApprovalService) *AdminController {
	return &AdminController{approvalService: approvalService}
}

// BeginSemesterReset issues a reset confirmation ticket
// @Summary Begin semester reset
// @Description First step of the two-step reset. Returns a short-lived token and the number of courses a confirmed reset would rewind. No course is modified.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResetSemesterRequest true "Term to reset"
// @Success 200 {object} dto.APIResponse{data=dto.BeginResetResponse} "Confirmation ticket issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/semester-reset [post]
func (c *AdminController) BeginSemesterReset(ctx *gin.Context) {
	var req dto.ResetSemesterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	ticket, err := c.approvalService.BeginSemesterReset(ctx, req.AcademicYear, req.Semester, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.BeginResetResponse{
			ConfirmationToken: ticket.Token,
			ExpiresAt:         ticket.ExpiresAt.Format(time.RFC3339),
			CourseCount:       ticket.CourseCount,
		},
		Timestamp: time.Now(),
	})
}

// ConfirmSemesterReset confirms a pending reset
// @Summary Confirm semester reset
// @Description Second step of the two-step reset. Consumes the confirmation token and rewinds every course of the term to unassigned.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ConfirmResetRequest true "Confirmation token and term"
// @Success 200 {object} dto.APIResponse{data=dto.ResetSemesterResponse} "Semester reset"
// @Failure 400 {object} dto.ErrorResponse "Invalid, expired, or mismatched token"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/semester-reset/confirm [post]
func (c *AdminController) ConfirmSemesterReset(ctx *gin.Context) {
	var req dto.ConfirmResetRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	count, err := c.approvalService.ConfirmSemesterReset(ctx, req.ConfirmationToken, req.AcademicYear, req.Semester, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ResetSemesterResponse{ResetCount: count},
		Timestamp: time.Now(),
	})
}
