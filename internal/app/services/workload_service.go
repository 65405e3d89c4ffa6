package services

import (
	"context"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/workflow"
	"github.com/bkassahun/courseload/internal/app/workload"
)

// WorkloadFigures is an instructor's computed load for a single term.
type WorkloadFigures struct {
	InstructorID int64
	AcademicYear int
	Semester     models.Semester

	// Courses whose loads counted (fully content-approved) and courses still
	// somewhere in the approval pipeline.
	CountedCourses []*models.Course
	PendingCourses []*models.Course

	CourseLoad        float64
	SupplementalHours float64
	TotalLoad         float64
	Overload          float64

	// Incomplete is true while any assigned course has not yet cleared the
	// content approval chain, meaning the figures above may still grow.
	Incomplete bool
}

// WorkloadService computes instructor loads from stored courses.
type WorkloadService interface {
	ComputeInstructorLoad(ctx context.Context, instructorID int64, academicYear int, semester models.Semester) (*WorkloadFigures, error)
}

type workloadService struct {
	courses     CourseStore
	instructors InstructorStore
}

// NewWorkloadService creates a WorkloadService.
func NewWorkloadService(courses CourseStore, instructors InstructorStore) WorkloadService {
	return &workloadService{courses: courses, instructors: instructors}
}

// ComputeInstructorLoad computes the load figures for one instructor and
// term. Only courses that cleared the content approval chain count toward
// load; courses still in review leave the result marked incomplete.
func (s *workloadService) ComputeInstructorLoad(ctx context.Context, instructorID int64, academicYear int, semester models.Semester) (*WorkloadFigures, error) {
	instructor, err := s.instructors.GetByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.GetByInstructorAndTerm(ctx, instructorID, academicYear, semester)
	if err != nil {
		return nil, err
	}

	figures := &WorkloadFigures{
		InstructorID: instructorID,
		AcademicYear: academicYear,
		Semester:     semester,
	}
	for _, c := range courses {
		if workflow.CountsTowardLoad(c.Status) {
			figures.CountedCourses = append(figures.CountedCourses, c)
		} else {
			figures.PendingCourses = append(figures.PendingCourses, c)
		}
	}
	figures.Incomplete = len(figures.PendingCourses) > 0

	supplemental := workload.SupplementalHours{
		HDP:          instructor.HDPHours,
		Position:     instructor.PositionHours,
		BatchAdvisor: instructor.BatchAdvisorHours,
	}
	figures.SupplementalHours = workload.Round2(supplemental.Total())
	figures.TotalLoad = workload.TotalLoad(figures.CountedCourses, supplemental)
	figures.CourseLoad = workload.Round2(figures.TotalLoad - figures.SupplementalHours)
	figures.Overload = workload.Overload(figures.TotalLoad)
	return figures, nil
}
