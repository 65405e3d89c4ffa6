package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/payment"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
	"github.com/bkassahun/courseload/internal/pkg/logger"
	"github.com/bkassahun/courseload/internal/pkg/notify"
)

// PaymentStore is the slice of the payment repository the service needs.
type PaymentStore interface {
	Upsert(ctx context.Context, payment *models.Payment) error
	GetByTriple(ctx context.Context, instructorID int64, academicYear int, semester models.Semester) (*models.Payment, error)
	ListByTerm(ctx context.Context, academicYear int, semester models.Semester) ([]*models.Payment, error)
	GetFinanceRun(ctx context.Context, academicYear int, semester models.Semester) (*models.FinanceRun, error)
	UpsertFinanceRun(ctx context.Context, run *models.FinanceRun) error
}

// PaymentCalculation is the outcome of a single overload-payment calculation.
type PaymentCalculation struct {
	InstructorID   int64
	AcademicYear   int
	Semester       models.Semester
	TotalLoad      float64
	Overload       float64
	Rate           float64
	Amount         float64
	LoadIncomplete bool
}

// PaymentSaveFailure reports one instructor whose batch save failed.
type PaymentSaveFailure struct {
	InstructorID int64
	Err          error
}

// BatchSaveResult collects per-instructor outcomes of a batch save.
type BatchSaveResult struct {
	Saved  []*models.Payment
	Failed []PaymentSaveFailure
}

// PaymentService computes and persists overload payments.
type PaymentService interface {
	Calculate(ctx context.Context, instructorID int64, academicYear int, semester models.Semester, rate float64, override bool, actor models.Actor) (*PaymentCalculation, error)
	Save(ctx context.Context, instructorID int64, academicYear int, semester models.Semester, rate float64, override bool, remarks string, actor models.Actor) (*models.Payment, error)
	BatchSave(ctx context.Context, instructorIDs []int64, academicYear int, semester models.Semester, rate float64, override bool, actor models.Actor) (*BatchSaveResult, error)
	SaveManual(ctx context.Context, courseID int64, entry *models.Payment, actor models.Actor) (*models.Payment, error)
	ListByTerm(ctx context.Context, academicYear int, semester models.Semester) ([]*models.Payment, error)
	GetByTriple(ctx context.Context, instructorID int64, academicYear int, semester models.Semester) (*models.Payment, error)
}

type paymentService struct {
	payments    PaymentStore
	courses     CourseStore
	instructors InstructorStore
	workload    WorkloadService
	dispatcher  notify.Dispatcher
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(payments PaymentStore, courses CourseStore, instructors InstructorStore, workloadSvc WorkloadService, dispatcher notify.Dispatcher) PaymentService {
	return &paymentService{
		payments:    payments,
		courses:     courses,
		instructors: instructors,
		workload:    workloadSvc,
		dispatcher:  dispatcher,
	}
}

// establishRate resolves the effective rate for a finance run. The first
// calculation of a term pins the run's rate; later calls must stay within
// tolerance of it or carry the override flag, which re-pins the run.
func (s *paymentService) establishRate(ctx context.Context, academicYear int, semester models.Semester, rate float64, override bool, actor models.Actor) (float64, error) {
	run, err := s.payments.GetFinanceRun(ctx, academicYear, semester)
	if err != nil {
		if !errors.Is(err, apperrors.ErrFinanceRunNotFound) {
			return 0, err
		}
		if err := payment.ValidateRate(rate); err != nil {
			return 0, err
		}
		run = &models.FinanceRun{
			AcademicYear: academicYear,
			Semester:     semester,
			Rate:         rate,
			StartedBy:    actor.UserID,
		}
		if err := s.payments.UpsertFinanceRun(ctx, run); err != nil {
			return 0, err
		}
		return rate, nil
	}

	if err := payment.CheckRateConsistency(run.Rate, rate, override); err != nil {
		return 0, err
	}
	if override && rate != run.Rate {
		run.Rate = rate
		run.StartedBy = actor.UserID
		if err := s.payments.UpsertFinanceRun(ctx, run); err != nil {
			return 0, err
		}
		logger.Warn().
			Int("academicYear", academicYear).
			Str("semester", string(semester)).
			Float64("rate", rate).
			Int64("actorId", actor.UserID).
			Msg("Finance run rate overridden")
	}
	return rate, nil
}

// Calculate computes the overload payment one instructor would receive under
// the given rate. The calculation participates in the finance run's rate
// check but persists no payment row.
func (s *paymentService) Calculate(ctx context.Context, instructorID int64, academicYear int, semester models.Semester, rate float64, override bool, actor models.Actor) (*PaymentCalculation, error) {
	effectiveRate, err := s.establishRate(ctx, academicYear, semester, rate, override, actor)
	if err != nil {
		return nil, err
	}
	figures, err := s.workload.ComputeInstructorLoad(ctx, instructorID, academicYear, semester)
	if err != nil {
		return nil, err
	}
	amount, err := payment.OverloadAmount(figures.TotalLoad, effectiveRate)
	if err != nil {
		return nil, err
	}
	return &PaymentCalculation{
		InstructorID:   instructorID,
		AcademicYear:   academicYear,
		Semester:       semester,
		TotalLoad:      figures.TotalLoad,
		Overload:       figures.Overload,
		Rate:           effectiveRate,
		Amount:         amount,
		LoadIncomplete: figures.Incomplete,
	}, nil
}

// Save computes and persists the overload payment for one instructor.
// Repeating the call for the same (instructor, year, semester) updates the
// existing row. A save is refused while the instructor's load is incomplete;
// finishing the approvals first is the fix, not overriding.
func (s *paymentService) Save(ctx context.Context, instructorID int64, academicYear int, semester models.Semester, rate float64, override bool, remarks string, actor models.Actor) (*models.Payment, error) {
	calc, err := s.Calculate(ctx, instructorID, academicYear, semester, rate, override, actor)
	if err != nil {
		return nil, err
	}
	if calc.LoadIncomplete {
		return nil, fmt.Errorf("%w: instructor %d has courses still awaiting approval", apperrors.ErrIncompleteLoad, instructorID)
	}

	pay := &models.Payment{
		InstructorID:   instructorID,
		AcademicYear:   academicYear,
		Semester:       semester,
		OverloadAmount: calc.Amount,
		TotalAmount:    calc.Amount,
		Remarks:        remarks,
	}
	if err := s.payments.Upsert(ctx, pay); err != nil {
		return nil, err
	}
	s.notifyPayment(ctx, pay)
	return pay, nil
}

// BatchSave saves payments for several instructors under one shared rate.
// The rate is pinned once up front; per-instructor failures are collected
// and do not stop the batch.
func (s *paymentService) BatchSave(ctx context.Context, instructorIDs []int64, academicYear int, semester models.Semester, rate float64, override bool, actor models.Actor) (*BatchSaveResult, error) {
	if len(instructorIDs) == 0 {
		return nil, fmt.Errorf("%w: instructorIds must not be empty", apperrors.ErrValidationFailed)
	}
	if _, err := s.establishRate(ctx, academicYear, semester, rate, override, actor); err != nil {
		return nil, err
	}

	result := &BatchSaveResult{}
	for _, id := range instructorIDs {
		// The run rate is already pinned, so the per-save rate check can
		// no longer conflict.
		pay, err := s.Save(ctx, id, academicYear, semester, rate, false, "", actor)
		if err != nil {
			result.Failed = append(result.Failed, PaymentSaveFailure{InstructorID: id, Err: err})
			continue
		}
		result.Saved = append(result.Saved, pay)
	}
	return result, nil
}

// SaveManual persists a fully itemized payment for the instructor assigned
// to a course. The total is the literal sum of the entered components and
// the shared-rate invariant does not apply.
func (s *paymentService) SaveManual(ctx context.Context, courseID int64, entry *models.Payment, actor models.Actor) (*models.Payment, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID == nil {
		return nil, fmt.Errorf("%w: course %d has no assigned instructor", apperrors.ErrValidationFailed, courseID)
	}

	pay := &models.Payment{
		InstructorID:      *course.InstructorID,
		AcademicYear:      course.AcademicYear,
		Semester:          course.Semester,
		BaseAmount:        entry.BaseAmount,
		HDPAllowance:      entry.HDPAllowance,
		PositionAllowance: entry.PositionAllowance,
		AdvisorAllowance:  entry.AdvisorAllowance,
		OverloadAmount:    entry.OverloadAmount,
		Remarks:           entry.Remarks,
	}
	pay.TotalAmount = pay.ComponentSum()
	if err := s.payments.Upsert(ctx, pay); err != nil {
		return nil, err
	}
	s.notifyPayment(ctx, pay)
	return pay, nil
}

// ListByTerm returns every saved payment of a term.
func (s *paymentService) ListByTerm(ctx context.Context, academicYear int, semester models.Semester) ([]*models.Payment, error) {
	return s.payments.ListByTerm(ctx, academicYear, semester)
}

// GetByTriple returns one instructor's payment for a term.
func (s *paymentService) GetByTriple(ctx context.Context, instructorID int64, academicYear int, semester models.Semester) (*models.Payment, error) {
	return s.payments.GetByTriple(ctx, instructorID, academicYear, semester)
}

func (s *paymentService) notifyPayment(ctx context.Context, pay *models.Payment) {
	if s.dispatcher == nil {
		return
	}
	instructor, err := s.instructors.GetByID(ctx, pay.InstructorID)
	if err != nil {
		logger.Warn().Err(err).Int64("instructorId", pay.InstructorID).Msg("Failed to load instructor for payment notification")
		return
	}
	snapshot := *pay
	go func() {
		if err := s.dispatcher.PaymentSaved(instructor.Email, instructor.Name, &snapshot); err != nil {
			logger.Warn().Err(err).Int64("instructorId", snapshot.InstructorID).Msg("Failed to dispatch payment notification")
		}
	}()
}
