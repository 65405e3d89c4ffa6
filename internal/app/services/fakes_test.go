package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/repositories"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

// In-memory stores for service tests. They mirror the repository error
// contracts closely enough to exercise the service logic without a database.

type fakeCourseStore struct {
	courses map[int64]*models.Course
	history map[int64][]models.ApprovalEntry
}

func newFakeCourseStore(courses ...*models.Course) *fakeCourseStore {
	s := &fakeCourseStore{
		courses: make(map[int64]*models.Course),
		history: make(map[int64][]models.ApprovalEntry),
	}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (s *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", apperrors.ErrCourseNotFound, id)
	}
	return c, nil
}

func (s *fakeCourseStore) GetByTerm(_ context.Context, academicYear int, semester models.Semester) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range s.courses {
		if c.AcademicYear == academicYear && c.Semester == semester {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCourseStore) GetByInstructorAndTerm(_ context.Context, instructorID int64, academicYear int, semester models.Semester) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range s.courses {
		if c.InstructorID != nil && *c.InstructorID == instructorID &&
			c.AcademicYear == academicYear && c.Semester == semester {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCourseStore) Transition(_ context.Context, courseID int64, expected, next models.Status, instructorID *int64, entry *models.ApprovalEntry) (*models.Course, error) {
	c, ok := s.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", apperrors.ErrCourseNotFound, courseID)
	}
	if c.Status != expected {
		return nil, fmt.Errorf("%w: course %d is %s, expected %s", apperrors.ErrConflict, courseID, c.Status, expected)
	}
	c.Status = next
	if instructorID != nil {
		c.InstructorID = instructorID
	}
	if next == models.StatusUnassigned {
		c.InstructorID = nil
	}
	s.history[courseID] = append(s.history[courseID], *entry)
	return c, nil
}

func (s *fakeCourseStore) ResetTerm(_ context.Context, academicYear int, semester models.Semester, actorID int64) (int, error) {
	count := 0
	for _, c := range s.courses {
		if c.AcademicYear != academicYear || c.Semester != semester {
			continue
		}
		c.Status = models.StatusUnassigned
		c.InstructorID = nil
		s.history[c.ID] = append(s.history[c.ID], models.ApprovalEntry{
			CourseID:    c.ID,
			Role:        models.RoleAdmin,
			Action:      models.ActionReset,
			StatusAfter: models.StatusUnassigned,
			Remarks:     "semester-reset",
			ActorID:     actorID,
		})
		count++
	}
	return count, nil
}

func (s *fakeCourseStore) GetHistory(_ context.Context, courseID int64) ([]models.ApprovalEntry, error) {
	return s.history[courseID], nil
}

type fakeInstructorStore struct {
	instructors map[int64]*models.Instructor
	order       []int64
}

func newFakeInstructorStore(instructors ...*models.Instructor) *fakeInstructorStore {
	s := &fakeInstructorStore{instructors: make(map[int64]*models.Instructor)}
	for _, in := range instructors {
		s.instructors[in.ID] = in
		s.order = append(s.order, in.ID)
	}
	return s
}

func (s *fakeInstructorStore) GetByID(_ context.Context, id int64) (*models.Instructor, error) {
	in, ok := s.instructors[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", apperrors.ErrInstructorNotFound, id)
	}
	return in, nil
}

func (s *fakeInstructorStore) GetByTerm(_ context.Context, _ int, _ models.Semester) ([]*models.Instructor, error) {
	out := make([]*models.Instructor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.instructors[id])
	}
	return out, nil
}

type fakeResetStore struct {
	confirmations map[string]*repositories.ResetConfirmation
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{confirmations: make(map[string]*repositories.ResetConfirmation)}
}

func (s *fakeResetStore) Create(_ context.Context, confirmation *repositories.ResetConfirmation) error {
	s.confirmations[confirmation.Token] = confirmation
	return nil
}

func (s *fakeResetStore) Consume(_ context.Context, token string) (*repositories.ResetConfirmation, error) {
	c, ok := s.confirmations[token]
	if !ok {
		return nil, apperrors.ErrResetTokenInvalid
	}
	delete(s.confirmations, token)
	if time.Now().After(c.ExpiresAt) {
		return nil, apperrors.ErrResetTokenInvalid
	}
	return c, nil
}

type paymentKey struct {
	instructorID int64
	academicYear int
	semester     models.Semester
}

type termKey struct {
	academicYear int
	semester     models.Semester
}

type fakePaymentStore struct {
	payments map[paymentKey]*models.Payment
	runs     map[termKey]*models.FinanceRun
	nextID   int64
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{
		payments: make(map[paymentKey]*models.Payment),
		runs:     make(map[termKey]*models.FinanceRun),
	}
}

func (s *fakePaymentStore) Upsert(_ context.Context, payment *models.Payment) error {
	key := paymentKey{payment.InstructorID, payment.AcademicYear, payment.Semester}
	if existing, ok := s.payments[key]; ok {
		payment.ID = existing.ID
	} else {
		s.nextID++
		payment.ID = s.nextID
	}
	stored := *payment
	s.payments[key] = &stored
	return nil
}

func (s *fakePaymentStore) GetByTriple(_ context.Context, instructorID int64, academicYear int, semester models.Semester) (*models.Payment, error) {
	p, ok := s.payments[paymentKey{instructorID, academicYear, semester}]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	return p, nil
}

func (s *fakePaymentStore) ListByTerm(_ context.Context, academicYear int, semester models.Semester) ([]*models.Payment, error) {
	var out []*models.Payment
	for key, p := range s.payments {
		if key.academicYear == academicYear && key.semester == semester {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePaymentStore) GetFinanceRun(_ context.Context, academicYear int, semester models.Semester) (*models.FinanceRun, error) {
	run, ok := s.runs[termKey{academicYear, semester}]
	if !ok {
		return nil, apperrors.ErrFinanceRunNotFound
	}
	return run, nil
}

func (s *fakePaymentStore) UpsertFinanceRun(_ context.Context, run *models.FinanceRun) error {
	s.runs[termKey{run.AcademicYear, run.Semester}] = run
	return nil
}

type stubWorkloadService struct {
	figures map[int64]*WorkloadFigures
}

func (s *stubWorkloadService) ComputeInstructorLoad(_ context.Context, instructorID int64, _ int, _ models.Semester) (*WorkloadFigures, error) {
	f, ok := s.figures[instructorID]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", apperrors.ErrInstructorNotFound, instructorID)
	}
	return f, nil
}

func int64Ptr(v int64) *int64 { return &v }
