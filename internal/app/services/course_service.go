package services

import (
	"context"
	"fmt"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/models/dto"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
	"github.com/bkassahun/courseload/internal/pkg/helpers"
)

// CourseAdminStore extends CourseStore with the CRUD the catalog needs.
type CourseAdminStore interface {
	CourseStore
	Create(ctx context.Context, course *models.Course) error
	List(ctx context.Context, academicYear int, semester models.Semester, status models.Status, offset uint64, limit int) ([]*models.Course, int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CourseService manages the course catalog. Workflow transitions live in
// ApprovalService; this service never touches course status.
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, academicYear int, semester models.Semester, status models.Status, page, pageSize int) ([]*models.Course, int64, error)
	Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

type courseService struct {
	courses CourseAdminStore
}

// NewCourseService creates a CourseService.
func NewCourseService(courses CourseAdminStore) CourseService {
	return &courseService{courses: courses}
}

// Create registers a course. New courses always start unassigned regardless
// of what the caller sends.
func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if !req.Semester.Valid() {
		return nil, fmt.Errorf("%w: unknown semester '%s'", apperrors.ErrValidationFailed, req.Semester)
	}
	course := &models.Course{
		Code:             req.Code,
		Title:            req.Title,
		School:           req.School,
		Department:       req.Department,
		AcademicYear:     req.AcademicYear,
		Semester:         req.Semester,
		LectureHours:     req.LectureHours,
		LectureSections:  req.LectureSections,
		LabHours:         req.LabHours,
		LabSections:      req.LabSections,
		TutorialHours:    req.TutorialHours,
		TutorialSections: req.TutorialSections,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// GetByID returns one course.
func (s *courseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// List returns a page of a term's courses, optionally filtered by status.
func (s *courseService) List(ctx context.Context, academicYear int, semester models.Semester, status models.Status, page, pageSize int) ([]*models.Course, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status '%s'", apperrors.ErrValidationFailed, status)
	}
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.courses.List(ctx, academicYear, semester, status, offset, limit)
}

// Update changes a course's descriptive and hour-configuration fields. The
// status and instructor are untouched; those only move through the workflow.
func (s *courseService) Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if !req.Semester.Valid() {
		return nil, fmt.Errorf("%w: unknown semester '%s'", apperrors.ErrValidationFailed, req.Semester)
	}
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Code = req.Code
	course.Title = req.Title
	course.School = req.School
	course.Department = req.Department
	course.AcademicYear = req.AcademicYear
	course.Semester = req.Semester
	course.LectureHours = req.LectureHours
	course.LectureSections = req.LectureSections
	course.LabHours = req.LabHours
	course.LabSections = req.LabSections
	course.TutorialHours = req.TutorialHours
	course.TutorialSections = req.TutorialSections

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course. Courses that already entered the workflow keep
// their history rows until the course row goes; the history is deleted with
// it by the foreign key.
func (s *courseService) Delete(ctx context.Context, id int64) error {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if course.InstructorID != nil {
		return fmt.Errorf("%w: course %d is assigned; reset or reject it first", apperrors.ErrConflict, id)
	}
	return s.courses.Delete(ctx, id)
}
