package services

import (
	"context"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/workflow"
	"github.com/bkassahun/courseload/internal/app/workload"
)

// StageCounts counts a term's courses relative to one approval stage.
type StageCounts struct {
	Stage    workflow.Stage
	Approved int
	Rejected int
	Pending  int
}

// TermSummary is the term-wide workflow progress view. It is recomputed from
// current rows on every request; nothing is cached or stored.
type TermSummary struct {
	AcademicYear int
	Semester     models.Semester
	TotalCourses int
	Unassigned   int
	Stages       []StageCounts
}

// InstructorSummary is one instructor's derived per-stage status plus load.
type InstructorSummary struct {
	Instructor  *models.Instructor
	CourseCount int
	TotalLoad   float64
	Overload    float64
	Stages      map[workflow.Stage]workflow.RollUpStatus
}

// DashboardService answers the read-only reporting queries.
type DashboardService interface {
	TermSummary(ctx context.Context, academicYear int, semester models.Semester) (*TermSummary, error)
	InstructorSummaries(ctx context.Context, academicYear int, semester models.Semester) ([]*InstructorSummary, error)
}

type dashboardService struct {
	courses     CourseStore
	instructors InstructorStore
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(courses CourseStore, instructors InstructorStore) DashboardService {
	return &dashboardService{courses: courses, instructors: instructors}
}

// TermSummary counts a term's courses per stage. A course is approved for a
// stage once it has reached that stage's approval or moved beyond it,
// rejected while it sits in that stage's rejected status, and pending
// otherwise. Unassigned courses are counted separately and appear as pending
// in every stage.
func (s *dashboardService) TermSummary(ctx context.Context, academicYear int, semester models.Semester) (*TermSummary, error) {
	courses, err := s.courses.GetByTerm(ctx, academicYear, semester)
	if err != nil {
		return nil, err
	}

	summary := &TermSummary{
		AcademicYear: academicYear,
		Semester:     semester,
		TotalCourses: len(courses),
	}
	for _, c := range courses {
		if c.Status == models.StatusUnassigned {
			summary.Unassigned++
		}
	}
	for _, stage := range workflow.Stages() {
		counts := StageCounts{Stage: stage}
		for _, c := range courses {
			switch {
			case workflow.ReachedApproval(c.Status, stage):
				counts.Approved++
			case c.Status != models.StatusUnassigned && c.Status == stage.RejectedStatus():
				counts.Rejected++
			default:
				counts.Pending++
			}
		}
		summary.Stages = append(summary.Stages, counts)
	}
	return summary, nil
}

// InstructorSummaries computes the per-instructor roll-up for a term: each
// stage's derived status over all of the instructor's courses, plus the
// current load figures.
func (s *dashboardService) InstructorSummaries(ctx context.Context, academicYear int, semester models.Semester) ([]*InstructorSummary, error) {
	instructors, err := s.instructors.GetByTerm(ctx, academicYear, semester)
	if err != nil {
		return nil, err
	}

	summaries := make([]*InstructorSummary, 0, len(instructors))
	for _, instructor := range instructors {
		courses, err := s.courses.GetByInstructorAndTerm(ctx, instructor.ID, academicYear, semester)
		if err != nil {
			return nil, err
		}

		statuses := make([]models.Status, len(courses))
		counted := make([]*models.Course, 0, len(courses))
		for i, c := range courses {
			statuses[i] = c.Status
			if workflow.CountsTowardLoad(c.Status) {
				counted = append(counted, c)
			}
		}

		stages := make(map[workflow.Stage]workflow.RollUpStatus, len(workflow.Stages()))
		for _, stage := range workflow.Stages() {
			stages[stage] = workflow.RollUp(statuses, stage)
		}

		total := workload.TotalLoad(counted, workload.SupplementalHours{
			HDP:          instructor.HDPHours,
			Position:     instructor.PositionHours,
			BatchAdvisor: instructor.BatchAdvisorHours,
		})
		summaries = append(summaries, &InstructorSummary{
			Instructor:  instructor,
			CourseCount: len(courses),
			TotalLoad:   total,
			Overload:    workload.Overload(total),
			Stages:      stages,
		})
	}
	return summaries, nil
}
