package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/models/dto"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

type fakeCourseAdminStore struct {
	*fakeCourseStore
	nextID int64
}

func newFakeCourseAdminStore(courses ...*models.Course) *fakeCourseAdminStore {
	s := &fakeCourseAdminStore{fakeCourseStore: newFakeCourseStore(courses...)}
	for _, c := range courses {
		if c.ID > s.nextID {
			s.nextID = c.ID
		}
	}
	return s
}

func (s *fakeCourseAdminStore) Create(_ context.Context, course *models.Course) error {
	s.nextID++
	course.ID = s.nextID
	if course.Status == "" {
		course.Status = models.StatusUnassigned
	}
	s.courses[course.ID] = course
	return nil
}

func (s *fakeCourseAdminStore) List(_ context.Context, academicYear int, semester models.Semester, status models.Status, _ uint64, _ int) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, c := range s.courses {
		if c.AcademicYear != academicYear || c.Semester != semester {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (s *fakeCourseAdminStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := s.courses[course.ID]; !ok {
		return fmt.Errorf("%w: id %d", apperrors.ErrCourseNotFound, course.ID)
	}
	s.courses[course.ID] = course
	return nil
}

func (s *fakeCourseAdminStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.courses[id]; !ok {
		return fmt.Errorf("%w: id %d", apperrors.ErrCourseNotFound, id)
	}
	delete(s.courses, id)
	return nil
}

func TestCreateCourseStartsUnassigned(t *testing.T) {
	store := newFakeCourseAdminStore()
	svc := NewCourseService(store)

	course, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Code:            "CS101",
		Title:           "Introduction to Programming",
		School:          "Computing",
		Department:      "Software Engineering",
		AcademicYear:    2025,
		Semester:        models.SemesterFirst,
		LectureHours:    3,
		LectureSections: 2,
	})
	require.NoError(t, err)
	assert.NotZero(t, course.ID)
	assert.Equal(t, models.StatusUnassigned, course.Status)
	assert.Nil(t, course.InstructorID)
}

func TestCreateCourseUnknownSemester(t *testing.T) {
	svc := NewCourseService(newFakeCourseAdminStore())

	_, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Code: "CS101", Title: "Intro", School: "Computing", Department: "SE",
		AcademicYear: 2025, Semester: models.Semester("THIRD"),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateCoursePreservesWorkflowState(t *testing.T) {
	store := newFakeCourseAdminStore(&models.Course{
		ID: 1, Code: "CS101", AcademicYear: 2025, Semester: models.SemesterFirst,
		InstructorID: int64Ptr(7), Status: models.StatusDeanReview,
	})
	svc := NewCourseService(store)

	course, err := svc.Update(context.Background(), 1, &dto.UpdateCourseRequest{
		Code: "CS102", Title: "Data Structures", School: "Computing", Department: "SE",
		AcademicYear: 2025, Semester: models.SemesterFirst,
		LectureHours: 4, LectureSections: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "CS102", course.Code)
	assert.Equal(t, models.StatusDeanReview, course.Status)
	require.NotNil(t, course.InstructorID)
	assert.Equal(t, int64(7), *course.InstructorID)
}

func TestDeleteCourseBlockedWhileAssigned(t *testing.T) {
	store := newFakeCourseAdminStore(
		&models.Course{ID: 1, InstructorID: int64Ptr(7), Status: models.StatusDeanReview},
		&models.Course{ID: 2, Status: models.StatusUnassigned},
	)
	svc := NewCourseService(store)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, svc.Delete(context.Background(), 2))
	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestListCoursesRejectsUnknownStatus(t *testing.T) {
	svc := NewCourseService(newFakeCourseAdminStore())

	_, _, err := svc.List(context.Background(), 2025, models.SemesterFirst, models.Status("LIMBO"), 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
