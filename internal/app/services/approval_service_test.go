package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

func newApprovalFixture(courses ...*models.Course) (ApprovalService, *fakeCourseStore, *fakeResetStore) {
	courseStore := newFakeCourseStore(courses...)
	instructorStore := newFakeInstructorStore(
		&models.Instructor{ID: 7, Name: "Alemu Bekele", Email: "alemu@courseload.local"},
	)
	resetStore := newFakeResetStore()
	svc := NewApprovalService(courseStore, instructorStore, resetStore, nil, 10*time.Minute)
	return svc, courseStore, resetStore
}

func TestTransitionAssign(t *testing.T) {
	svc, _, _ := newApprovalFixture(
		&models.Course{ID: 1, AcademicYear: 2025, Semester: models.SemesterFirst, Status: models.StatusUnassigned},
	)
	actor := models.Actor{UserID: 10, Role: models.RoleDeptHead}

	course, err := svc.Transition(context.Background(), 1, models.StatusUnassigned, models.ActionAssign, actor, "", int64Ptr(7))
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeptHeadReview, course.Status)
	require.NotNil(t, course.InstructorID)
	assert.Equal(t, int64(7), *course.InstructorID)

	history, err := svc.GetHistory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionAssign, history[0].Action)
	assert.Equal(t, models.StatusDeptHeadReview, history[0].StatusAfter)
	assert.Equal(t, int64(10), history[0].ActorID)
}

func TestTransitionAssignRequiresInstructor(t *testing.T) {
	svc, _, _ := newApprovalFixture(
		&models.Course{ID: 1, Status: models.StatusUnassigned},
	)
	actor := models.Actor{UserID: 10, Role: models.RoleDeptHead}

	_, err := svc.Transition(context.Background(), 1, models.StatusUnassigned, models.ActionAssign, actor, "", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Transition(context.Background(), 1, models.StatusUnassigned, models.ActionAssign, actor, "", int64Ptr(99))
	assert.ErrorIs(t, err, apperrors.ErrInstructorNotFound)
}

func TestTransitionRejectRequiresRemarks(t *testing.T) {
	svc, _, _ := newApprovalFixture(
		&models.Course{ID: 1, InstructorID: int64Ptr(7), Status: models.StatusDeanReview},
	)
	actor := models.Actor{UserID: 20, Role: models.RoleDean}

	_, err := svc.Transition(context.Background(), 1, models.StatusDeanReview, models.ActionReject, actor, "", nil)
	assert.ErrorIs(t, err, apperrors.ErrRemarksRequired)

	course, err := svc.Transition(context.Background(), 1, models.StatusDeanReview, models.ActionReject, actor, "syllabus incomplete", nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeanRejected, course.Status)
}

func TestTransitionDeptHeadRejectReturnsToPool(t *testing.T) {
	svc, store, _ := newApprovalFixture(
		&models.Course{ID: 1, InstructorID: int64Ptr(7), Status: models.StatusDeptHeadReview},
	)
	actor := models.Actor{UserID: 10, Role: models.RoleDeptHead}

	course, err := svc.Transition(context.Background(), 1, models.StatusDeptHeadReview, models.ActionReject, actor, "wrong instructor", nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnassigned, course.Status)
	// Back in the pool means no instructor link either.
	assert.Nil(t, course.InstructorID)

	stored, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, stored.InstructorID)
}

func TestTransitionStaleExpectedStatus(t *testing.T) {
	svc, _, _ := newApprovalFixture(
		&models.Course{ID: 1, InstructorID: int64Ptr(7), Status: models.StatusDeanApproved},
	)
	actor := models.Actor{UserID: 20, Role: models.RoleDean}

	// The caller believes the course is still in dept-head approved, but it
	// has already moved on. Nothing may be written.
	_, err := svc.Transition(context.Background(), 1, models.StatusDeptHeadApproved, models.ActionApprove, actor, "", nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	history, err := svc.GetHistory(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc, _, _ := newApprovalFixture(
		&models.Course{ID: 1, Status: models.StatusUnassigned},
	)
	actor := models.Actor{UserID: 10, Role: models.RoleDeptHead}

	_, err := svc.Transition(context.Background(), 1, models.Status("LIMBO"), models.ActionApprove, actor, "", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestBulkTransitionPartialFailure(t *testing.T) {
	svc, _, _ := newApprovalFixture(
		&models.Course{ID: 1, InstructorID: int64Ptr(7), Status: models.StatusDeptHeadApproved},
		&models.Course{ID: 2, InstructorID: int64Ptr(7), Status: models.StatusUnassigned},
		&models.Course{ID: 3, InstructorID: int64Ptr(8), Status: models.StatusDeptHeadApproved},
	)
	actor := models.Actor{UserID: 20, Role: models.RoleDean}

	result, err := svc.BulkTransition(context.Background(), 7, []int64{1, 2, 3, 4}, models.ActionApprove, actor, "")
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, result.Succeeded)
	require.Len(t, result.Failed, 3)

	failures := make(map[int64]error, len(result.Failed))
	for _, f := range result.Failed {
		failures[f.CourseID] = f.Err
	}
	// Course 2 is not in the dean's queue, course 3 belongs to another
	// instructor, course 4 does not exist.
	assert.ErrorIs(t, failures[2], apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, failures[3], apperrors.ErrValidationFailed)
	assert.ErrorIs(t, failures[4], apperrors.ErrCourseNotFound)
}

func TestBulkTransitionEmptyInput(t *testing.T) {
	svc, _, _ := newApprovalFixture()
	actor := models.Actor{UserID: 20, Role: models.RoleDean}

	_, err := svc.BulkTransition(context.Background(), 7, nil, models.ActionApprove, actor, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.BulkTransition(context.Background(), 7, []int64{1}, models.ActionReject, actor, "")
	assert.ErrorIs(t, err, apperrors.ErrRemarksRequired)
}

func TestBeginSemesterResetAdminOnly(t *testing.T) {
	svc, _, _ := newApprovalFixture()

	for _, role := range []models.RoleType{models.RoleDeptHead, models.RoleDean, models.RoleFinance} {
		_, err := svc.BeginSemesterReset(context.Background(), 2025, models.SemesterFirst, models.Actor{UserID: 1, Role: role})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "role %s", role)
	}
}

func TestSemesterResetRoundTrip(t *testing.T) {
	svc, store, _ := newApprovalFixture(
		&models.Course{ID: 1, AcademicYear: 2025, Semester: models.SemesterFirst, InstructorID: int64Ptr(7), Status: models.StatusFinanceApproved},
		&models.Course{ID: 2, AcademicYear: 2025, Semester: models.SemesterFirst, InstructorID: int64Ptr(7), Status: models.StatusDeanReview},
		&models.Course{ID: 3, AcademicYear: 2025, Semester: models.SemesterSecond, InstructorID: int64Ptr(7), Status: models.StatusDeanReview},
	)
	admin := models.Actor{UserID: 1, Role: models.RoleAdmin}
	dean := models.Actor{UserID: 20, Role: models.RoleDean}

	// Give course 2 some history before the reset.
	_, err := svc.Transition(context.Background(), 2, models.StatusDeanReview, models.ActionApprove, dean, "", nil)
	require.NoError(t, err)

	// A payment already saved for the term must survive the reset.
	payments := newFakePaymentStore()
	require.NoError(t, payments.Upsert(context.Background(), &models.Payment{
		InstructorID: 7, AcademicYear: 2025, Semester: models.SemesterFirst, TotalAmount: 3000,
	}))

	ticket, err := svc.BeginSemesterReset(context.Background(), 2025, models.SemesterFirst, admin)
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.Token)
	assert.Equal(t, 2, ticket.CourseCount)
	assert.True(t, ticket.ExpiresAt.After(time.Now()))

	count, err := svc.ConfirmSemesterReset(context.Background(), ticket.Token, 2025, models.SemesterFirst, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, id := range []int64{1, 2} {
		c, err := store.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusUnassigned, c.Status)
		assert.Nil(t, c.InstructorID)
	}

	// Each reset course gains exactly one RESET entry; prior entries stay.
	history, err := svc.GetHistory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionReset, history[0].Action)

	history, err = svc.GetHistory(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.ActionApprove, history[0].Action)
	assert.Equal(t, models.ActionReset, history[1].Action)
	assert.Equal(t, models.StatusUnassigned, history[1].StatusAfter)
	assert.Equal(t, int64(1), history[1].ActorID)

	pay, err := payments.GetByTriple(context.Background(), 7, 2025, models.SemesterFirst)
	require.NoError(t, err)
	assert.InDelta(t, 3000.0, pay.TotalAmount, 1e-9)

	// The other semester is untouched.
	c, err := store.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeanReview, c.Status)
	history, err = svc.GetHistory(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, history, 0)
}

func TestConfirmSemesterResetTermMismatch(t *testing.T) {
	svc, store, _ := newApprovalFixture(
		&models.Course{ID: 1, AcademicYear: 2025, Semester: models.SemesterFirst, InstructorID: int64Ptr(7), Status: models.StatusDeanReview},
	)
	admin := models.Actor{UserID: 1, Role: models.RoleAdmin}

	ticket, err := svc.BeginSemesterReset(context.Background(), 2025, models.SemesterFirst, admin)
	require.NoError(t, err)

	_, err = svc.ConfirmSemesterReset(context.Background(), ticket.Token, 2025, models.SemesterSecond, admin)
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)

	c, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeanReview, c.Status)
}

func TestConfirmSemesterResetTokenSingleUse(t *testing.T) {
	svc, _, _ := newApprovalFixture(
		&models.Course{ID: 1, AcademicYear: 2025, Semester: models.SemesterFirst, Status: models.StatusUnassigned},
	)
	admin := models.Actor{UserID: 1, Role: models.RoleAdmin}

	ticket, err := svc.BeginSemesterReset(context.Background(), 2025, models.SemesterFirst, admin)
	require.NoError(t, err)

	_, err = svc.ConfirmSemesterReset(context.Background(), ticket.Token, 2025, models.SemesterFirst, admin)
	require.NoError(t, err)

	_, err = svc.ConfirmSemesterReset(context.Background(), ticket.Token, 2025, models.SemesterFirst, admin)
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestConfirmSemesterResetUnknownToken(t *testing.T) {
	svc, _, _ := newApprovalFixture()
	admin := models.Actor{UserID: 1, Role: models.RoleAdmin}

	_, err := svc.ConfirmSemesterReset(context.Background(), "no-such-token", 2025, models.SemesterFirst, admin)
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}
