package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/repositories"
	"github.com/bkassahun/courseload/internal/app/workflow"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
	"github.com/bkassahun/courseload/internal/pkg/logger"
	"github.com/bkassahun/courseload/internal/pkg/notify"
)

// CourseStore is the slice of the course repository the approval flow needs.
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByTerm(ctx context.Context, academicYear int, semester models.Semester) ([]*models.Course, error)
	GetByInstructorAndTerm(ctx context.Context, instructorID int64, academicYear int, semester models.Semester) ([]*models.Course, error)
	Transition(ctx context.Context, courseID int64, expected models.Status, next models.Status, instructorID *int64, entry *models.ApprovalEntry) (*models.Course, error)
	ResetTerm(ctx context.Context, academicYear int, semester models.Semester, actorID int64) (int, error)
	GetHistory(ctx context.Context, courseID int64) ([]models.ApprovalEntry, error)
}

// InstructorStore is the slice of the instructor repository used by services.
type InstructorStore interface {
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	GetByTerm(ctx context.Context, academicYear int, semester models.Semester) ([]*models.Instructor, error)
}

// ResetStore persists the two-step semester reset confirmations.
type ResetStore interface {
	Create(ctx context.Context, confirmation *repositories.ResetConfirmation) error
	Consume(ctx context.Context, token string) (*repositories.ResetConfirmation, error)
}

// BulkTransitionFailure records a single failed course within a bulk call.
type BulkTransitionFailure struct {
	CourseID int64
	Err      error
}

// BulkTransitionResult is the outcome of a bulk transition. The call itself
// only errors on invalid input; per-course failures are collected here.
type BulkTransitionResult struct {
	Succeeded []int64
	Failed    []BulkTransitionFailure
}

// ResetTicket is the first half of a semester reset. The token must be echoed
// back through ConfirmSemesterReset before the TTL expires.
type ResetTicket struct {
	Token        string
	AcademicYear int
	Semester     models.Semester
	CourseCount  int
	ExpiresAt    time.Time
}

// ApprovalService drives courses through the approval pipeline.
type ApprovalService interface {
	Transition(ctx context.Context, courseID int64, expected models.Status, action models.Action, actor models.Actor, remarks string, instructorID *int64) (*models.Course, error)
	BulkTransition(ctx context.Context, instructorID int64, courseIDs []int64, action models.Action, actor models.Actor, remarks string) (*BulkTransitionResult, error)
	GetHistory(ctx context.Context, courseID int64) ([]models.ApprovalEntry, error)
	BeginSemesterReset(ctx context.Context, academicYear int, semester models.Semester, actor models.Actor) (*ResetTicket, error)
	ConfirmSemesterReset(ctx context.Context, token string, academicYear int, semester models.Semester, actor models.Actor) (int, error)
}

type approvalService struct {
	courses     CourseStore
	instructors InstructorStore
	resets      ResetStore
	dispatcher  notify.Dispatcher
	resetTTL    time.Duration
}

// NewApprovalService creates an ApprovalService.
func NewApprovalService(courses CourseStore, instructors InstructorStore, resets ResetStore, dispatcher notify.Dispatcher, resetTTL time.Duration) ApprovalService {
	return &approvalService{
		courses:     courses,
		instructors: instructors,
		resets:      resets,
		dispatcher:  dispatcher,
		resetTTL:    resetTTL,
	}
}

// Transition applies a single workflow action to a course. The caller states
// the status it believes the course is in; if the stored status has moved on
// since, the repository reports ErrConflict and nothing is written.
func (s *approvalService) Transition(ctx context.Context, courseID int64, expected models.Status, action models.Action, actor models.Actor, remarks string, instructorID *int64) (*models.Course, error) {
	if !expected.Valid() {
		return nil, fmt.Errorf("%w: unknown status '%s'", apperrors.ErrValidationFailed, expected)
	}
	if action == models.ActionReject && remarks == "" {
		return nil, apperrors.ErrRemarksRequired
	}

	next, err := workflow.Apply(expected, action, actor.Role)
	if err != nil {
		return nil, err
	}

	var assignee *int64
	if action == models.ActionAssign {
		if instructorID == nil {
			return nil, fmt.Errorf("%w: instructorId is required for assignment", apperrors.ErrValidationFailed)
		}
		if _, err := s.instructors.GetByID(ctx, *instructorID); err != nil {
			return nil, err
		}
		assignee = instructorID
	}

	entry := &models.ApprovalEntry{
		CourseID:    courseID,
		Role:        actor.Role,
		Action:      action,
		StatusAfter: next,
		Remarks:     remarks,
		ActorID:     actor.UserID,
	}
	course, err := s.courses.Transition(ctx, courseID, expected, next, assignee, entry)
	if err != nil {
		return nil, err
	}

	s.notifyTransition(course, entry)
	return course, nil
}

// BulkTransition applies one action to several courses of a single instructor.
// Each course is transitioned from its current stored status; failures do not
// stop the remaining courses.
func (s *approvalService) BulkTransition(ctx context.Context, instructorID int64, courseIDs []int64, action models.Action, actor models.Actor, remarks string) (*BulkTransitionResult, error) {
	if len(courseIDs) == 0 {
		return nil, fmt.Errorf("%w: courseIds must not be empty", apperrors.ErrValidationFailed)
	}
	if action == models.ActionReject && remarks == "" {
		return nil, apperrors.ErrRemarksRequired
	}
	if _, err := s.instructors.GetByID(ctx, instructorID); err != nil {
		return nil, err
	}

	result := &BulkTransitionResult{}
	for _, id := range courseIDs {
		if err := s.transitionOwned(ctx, id, instructorID, action, actor, remarks); err != nil {
			result.Failed = append(result.Failed, BulkTransitionFailure{CourseID: id, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}

func (s *approvalService) transitionOwned(ctx context.Context, courseID, instructorID int64, action models.Action, actor models.Actor, remarks string) error {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.InstructorID == nil || *course.InstructorID != instructorID {
		return fmt.Errorf("%w: course %d is not assigned to instructor %d", apperrors.ErrValidationFailed, courseID, instructorID)
	}
	next, err := workflow.Apply(course.Status, action, actor.Role)
	if err != nil {
		return err
	}
	entry := &models.ApprovalEntry{
		CourseID:    courseID,
		Role:        actor.Role,
		Action:      action,
		StatusAfter: next,
		Remarks:     remarks,
		ActorID:     actor.UserID,
	}
	updated, err := s.courses.Transition(ctx, courseID, course.Status, next, nil, entry)
	if err != nil {
		return err
	}
	s.notifyTransition(updated, entry)
	return nil
}

// GetHistory returns a course's approval history, oldest first.
func (s *approvalService) GetHistory(ctx context.Context, courseID int64) ([]models.ApprovalEntry, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courses.GetHistory(ctx, courseID)
}

// BeginSemesterReset issues a confirmation ticket describing what a reset of
// the given term would touch. No course is modified here.
func (s *approvalService) BeginSemesterReset(ctx context.Context, academicYear int, semester models.Semester, actor models.Actor) (*ResetTicket, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}
	if !semester.Valid() {
		return nil, fmt.Errorf("%w: unknown semester '%s'", apperrors.ErrValidationFailed, semester)
	}
	courses, err := s.courses.GetByTerm(ctx, academicYear, semester)
	if err != nil {
		return nil, err
	}

	confirmation := &repositories.ResetConfirmation{
		Token:        uuid.New().String(),
		AcademicYear: academicYear,
		Semester:     semester,
		RequestedBy:  actor.UserID,
		ExpiresAt:    time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, confirmation); err != nil {
		return nil, err
	}
	return &ResetTicket{
		Token:        confirmation.Token,
		AcademicYear: academicYear,
		Semester:     semester,
		CourseCount:  len(courses),
		ExpiresAt:    confirmation.ExpiresAt,
	}, nil
}

// ConfirmSemesterReset consumes a confirmation ticket and resets every course
// of the term to unassigned. The supplied term must match the one the ticket
// was issued for.
func (s *approvalService) ConfirmSemesterReset(ctx context.Context, token string, academicYear int, semester models.Semester, actor models.Actor) (int, error) {
	if actor.Role != models.RoleAdmin {
		return 0, apperrors.ErrPermissionDenied
	}
	confirmation, err := s.resets.Consume(ctx, token)
	if err != nil {
		return 0, err
	}
	if confirmation.AcademicYear != academicYear || confirmation.Semester != semester {
		return 0, fmt.Errorf("%w: token was issued for %d %s", apperrors.ErrResetTokenInvalid, confirmation.AcademicYear, confirmation.Semester)
	}
	count, err := s.courses.ResetTerm(ctx, academicYear, semester, actor.UserID)
	if err != nil {
		return 0, err
	}
	logger.Info().
		Int("academicYear", academicYear).
		Str("semester", string(semester)).
		Int("courses", count).
		Int64("actorId", actor.UserID).
		Msg("Semester reset completed")
	return count, nil
}

// notifyTransition dispatches instructor notifications in the background.
// Delivery failures are logged and never surface to the caller.
func (s *approvalService) notifyTransition(course *models.Course, entry *models.ApprovalEntry) {
	if s.dispatcher == nil || course.InstructorID == nil {
		return
	}
	if entry.Action != models.ActionApprove && entry.Action != models.ActionReject {
		return
	}
	instructorID := *course.InstructorID
	snapshot := *course
	record := *entry
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		instructor, err := s.instructors.GetByID(ctx, instructorID)
		if err != nil {
			logger.Warn().Err(err).Int64("instructorId", instructorID).Msg("Failed to load instructor for notification")
			return
		}
		if err := s.dispatcher.CourseTransitioned(instructor.Email, instructor.Name, &snapshot, &record); err != nil {
			logger.Warn().Err(err).Int64("courseId", snapshot.ID).Msg("Failed to dispatch transition notification")
		}
	}()
}
