package services

import (
	"context"
	"fmt"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/app/models/dto"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

// InstructorAdminStore extends InstructorStore with CRUD.
type InstructorAdminStore interface {
	InstructorStore
	Create(ctx context.Context, instructor *models.Instructor) error
	GetAll(ctx context.Context) ([]*models.Instructor, error)
	Update(ctx context.Context, instructor *models.Instructor) error
	Delete(ctx context.Context, id int64) error
}

// InstructorService manages the instructor roster.
type InstructorService interface {
	Create(ctx context.Context, req *dto.CreateInstructorRequest) (*models.Instructor, error)
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	GetAll(ctx context.Context) ([]*models.Instructor, error)
	Update(ctx context.Context, id int64, req *dto.UpdateInstructorRequest) (*models.Instructor, error)
	Delete(ctx context.Context, id int64) error
}

type instructorService struct {
	instructors InstructorAdminStore
}

// NewInstructorService creates an InstructorService.
func NewInstructorService(instructors InstructorAdminStore) InstructorService {
	return &instructorService{instructors: instructors}
}

// Create registers an instructor. Supplemental hours may be zero.
func (s *instructorService) Create(ctx context.Context, req *dto.CreateInstructorRequest) (*models.Instructor, error) {
	if req.HDPHours < 0 || req.PositionHours < 0 || req.BatchAdvisorHours < 0 {
		return nil, fmt.Errorf("%w: supplemental hours must not be negative", apperrors.ErrValidationFailed)
	}
	instructor := &models.Instructor{
		Name:              req.Name,
		Email:             req.Email,
		School:            req.School,
		Department:        req.Department,
		HDPHours:          req.HDPHours,
		PositionHours:     req.PositionHours,
		BatchAdvisorHours: req.BatchAdvisorHours,
	}
	if err := s.instructors.Create(ctx, instructor); err != nil {
		return nil, err
	}
	return instructor, nil
}

// GetByID returns one instructor.
func (s *instructorService) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	return s.instructors.GetByID(ctx, id)
}

// GetAll returns the whole roster.
func (s *instructorService) GetAll(ctx context.Context) ([]*models.Instructor, error) {
	return s.instructors.GetAll(ctx)
}

// Update changes an instructor's descriptive fields and supplemental hours.
// Changed supplemental hours take effect on the next load computation; saved
// payments are not recomputed.
func (s *instructorService) Update(ctx context.Context, id int64, req *dto.UpdateInstructorRequest) (*models.Instructor, error) {
	if req.HDPHours < 0 || req.PositionHours < 0 || req.BatchAdvisorHours < 0 {
		return nil, fmt.Errorf("%w: supplemental hours must not be negative", apperrors.ErrValidationFailed)
	}
	instructor, err := s.instructors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	instructor.Name = req.Name
	instructor.Email = req.Email
	instructor.School = req.School
	instructor.Department = req.Department
	instructor.HDPHours = req.HDPHours
	instructor.PositionHours = req.PositionHours
	instructor.BatchAdvisorHours = req.BatchAdvisorHours

	if err := s.instructors.Update(ctx, instructor); err != nil {
		return nil, err
	}
	return instructor, nil
}

// Delete removes an instructor. The repository refuses while courses are
// still assigned to them.
func (s *instructorService) Delete(ctx context.Context, id int64) error {
	return s.instructors.Delete(ctx, id)
}
