package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/models/dto"
	"github.com/bkassahun/courseload/internal/app/services"
	"github.com/bkassahun/courseload/internal/middleware"
)

// PaymentController handles overload payment operations
type PaymentController struct {
	paymentService services.PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

func calculationResponse(calc *services.PaymentCalculation) dto.PaymentCalculationResponse {
	return dto.PaymentCalculationResponse{
		InstructorID:   calc.InstructorID,
		TotalLoad:      calc.TotalLoad,
		Overload:       calc.Overload,
		Rate:           calc.Rate,
		Amount:         calc.Amount,
		LoadIncomplete: calc.LoadIncomplete,
	}
}

// CalculatePayment computes an overload payment without saving it
// @Summary Calculate overload payment
// @Description Computes the overload payment one instructor would receive under the given rate. The first calculation of a term pins the run's rate.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Param request body dto.CalculatePaymentRequest true "Calculation request"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentCalculationResponse} "Payment calculated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 409 {object} dto.ErrorResponse "Rate differs from the established run rate"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id}/payments/calculate [post]
func (c *PaymentController) CalculatePayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CalculatePaymentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	calc, err := c.paymentService.Calculate(ctx, id, req.AcademicYear, req.Semester, req.Rate, req.Override, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      calculationResponse(calc),
		Timestamp: time.Now(),
	})
}

// SavePayment computes and saves an overload payment
// @Summary Save overload payment
// @Description Computes and persists the payment for one instructor. Repeating the call for the same term updates the existing record.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SavePaymentRequest true "Save request"
// @Success 200 {object} dto.APIResponse{data=models.Payment} "Payment saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 409 {object} dto.ErrorResponse "Rate differs from the established run rate"
// @Failure 422 {object} dto.ErrorResponse "Instructor load is incomplete"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [post]
func (c *PaymentController) SavePayment(ctx *gin.Context) {
	var req dto.SavePaymentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	pay, err := c.paymentService.Save(ctx, req.InstructorID, req.AcademicYear, req.Semester, req.Rate, req.Override, req.Remarks, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      pay,
		Timestamp: time.Now(),
	})
}

// BatchSavePayments saves payments for several instructors
// @Summary Batch save payments
// @Description Saves payments for several instructors under one shared rate. Per-instructor failures do not undo the successes.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchSavePaymentsRequest true "Batch save request"
// @Success 200 {object} dto.APIResponse{data=dto.BatchSavePaymentsResponse} "Per-instructor outcomes"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Rate differs from the established run rate"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/batch [post]
func (c *PaymentController) BatchSavePayments(ctx *gin.Context) {
	var req dto.BatchSavePaymentsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	result, err := c.paymentService.BatchSave(ctx, req.InstructorIDs, req.AcademicYear, req.Semester, req.Rate, req.Override, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.BatchSavePaymentsResponse{
		Saved:  result.Saved,
		Failed: make([]dto.BatchPaymentFailure, 0, len(result.Failed)),
	}
	if resp.Saved == nil {
		resp.Saved = []*models.Payment{}
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, dto.BatchPaymentFailure{
			InstructorID: f.InstructorID,
			Code:         errorCodeFor(f.Err),
			Message:      f.Err.Error(),
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// SaveManualPayment enters an itemized payment for a course's instructor
// @Summary Save manual payment
// @Description Enters a fully itemized payment for the instructor assigned to a course. The total is the literal sum of the components.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.ManualPaymentRequest true "Itemized payment"
// @Success 200 {object} dto.APIResponse{data=models.Payment} "Payment saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unassigned course"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/payments/manual [post]
func (c *PaymentController) SaveManualPayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ManualPaymentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	entry := &models.Payment{
		BaseAmount:        req.BaseAmount,
		HDPAllowance:      req.HDPAllowance,
		PositionAllowance: req.PositionAllowance,
		AdvisorAllowance:  req.AdvisorAllowance,
		OverloadAmount:    req.OverloadAmount,
		Remarks:           req.Remarks,
	}
	pay, err := c.paymentService.SaveManual(ctx, id, entry, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      pay,
		Timestamp: time.Now(),
	})
}

// ListPayments lists a term's saved payments
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param academicYear query int true "Academic year"
// @Param semester query string true "Semester (FIRST or SECOND)"
// @Success 200 {object} dto.APIResponse{data=[]models.Payment} "Payments retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	year, semester, ok := parseTermQuery(ctx)
	if !ok {
		return
	}

	payments, err := c.paymentService.ListByTerm(ctx, year, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      payments,
		Timestamp: time.Now(),
	})
}

// GetInstructorPayment returns one instructor's payment for a term
// @Summary Get instructor payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Param academicYear query int true "Academic year"
// @Param semester query string true "Semester (FIRST or SECOND)"
// @Success 200 {object} dto.APIResponse{data=models.Payment} "Payment retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id}/payments [get]
func (c *PaymentController) GetInstructorPayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	year, semester, ok := parseTermQuery(ctx)
	if !ok {
		return
	}

	pay, err := c.paymentService.GetByTriple(ctx, id, year, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      pay,
		Timestamp: time.Now(),
	})
}
