package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

func TestComputeInstructorLoad(t *testing.T) {
	courseStore := newFakeCourseStore(
		// 3 lecture hours x 2 sections = 6, fully approved.
		&models.Course{ID: 1, AcademicYear: 2025, Semester: models.SemesterFirst, InstructorID: int64Ptr(7),
			Status: models.StatusFinanceApproved, LectureHours: 3, LectureSections: 2},
		// 3 + 3*0.67 = 5.01, cleared content approval, waiting on finance.
		&models.Course{ID: 2, AcademicYear: 2025, Semester: models.SemesterFirst, InstructorID: int64Ptr(7),
			Status: models.StatusFinanceReview, LectureHours: 3, LectureSections: 1, LabHours: 3, LabSections: 1},
		// Still in dean review, does not count yet.
		&models.Course{ID: 3, AcademicYear: 2025, Semester: models.SemesterFirst, InstructorID: int64Ptr(7),
			Status: models.StatusDeanReview, LectureHours: 4, LectureSections: 1},
		// Another term, ignored entirely.
		&models.Course{ID: 4, AcademicYear: 2025, Semester: models.SemesterSecond, InstructorID: int64Ptr(7),
			Status: models.StatusFinanceApproved, LectureHours: 3, LectureSections: 1},
	)
	instructorStore := newFakeInstructorStore(
		&models.Instructor{ID: 7, Name: "Alemu Bekele", HDPHours: 2, PositionHours: 1},
	)
	svc := NewWorkloadService(courseStore, instructorStore)

	figures, err := svc.ComputeInstructorLoad(context.Background(), 7, 2025, models.SemesterFirst)
	require.NoError(t, err)

	assert.Len(t, figures.CountedCourses, 2)
	assert.Len(t, figures.PendingCourses, 1)
	assert.True(t, figures.Incomplete)

	assert.InDelta(t, 11.01, figures.CourseLoad, 1e-9)
	assert.InDelta(t, 3.0, figures.SupplementalHours, 1e-9)
	assert.InDelta(t, 14.01, figures.TotalLoad, 1e-9)
	assert.InDelta(t, 2.01, figures.Overload, 1e-9)
}

func TestComputeInstructorLoadCompleteBelowThreshold(t *testing.T) {
	courseStore := newFakeCourseStore(
		&models.Course{ID: 1, AcademicYear: 2025, Semester: models.SemesterFirst, InstructorID: int64Ptr(7),
			Status: models.StatusScientificDirectorApproved, LectureHours: 3, LectureSections: 2},
	)
	instructorStore := newFakeInstructorStore(&models.Instructor{ID: 7})
	svc := NewWorkloadService(courseStore, instructorStore)

	figures, err := svc.ComputeInstructorLoad(context.Background(), 7, 2025, models.SemesterFirst)
	require.NoError(t, err)

	assert.False(t, figures.Incomplete)
	assert.InDelta(t, 6.0, figures.TotalLoad, 1e-9)
	assert.Zero(t, figures.Overload)
}

func TestComputeInstructorLoadFinanceRejectedStillCounts(t *testing.T) {
	courseStore := newFakeCourseStore(
		&models.Course{ID: 1, AcademicYear: 2025, Semester: models.SemesterFirst, InstructorID: int64Ptr(7),
			Status: models.StatusFinanceRejected, LectureHours: 3, LectureSections: 1},
	)
	instructorStore := newFakeInstructorStore(&models.Instructor{ID: 7})
	svc := NewWorkloadService(courseStore, instructorStore)

	// A finance rejection disputes the payment, not the teaching. The course
	// already cleared content approval, so its load stands.
	figures, err := svc.ComputeInstructorLoad(context.Background(), 7, 2025, models.SemesterFirst)
	require.NoError(t, err)
	assert.Len(t, figures.CountedCourses, 1)
	assert.False(t, figures.Incomplete)
	assert.InDelta(t, 3.0, figures.TotalLoad, 1e-9)
}

func TestComputeInstructorLoadUnknownInstructor(t *testing.T) {
	svc := NewWorkloadService(newFakeCourseStore(), newFakeInstructorStore())

	_, err := svc.ComputeInstructorLoad(context.Background(), 99, 2025, models.SemesterFirst)
	assert.ErrorIs(t, err, apperrors.ErrInstructorNotFound)
}
