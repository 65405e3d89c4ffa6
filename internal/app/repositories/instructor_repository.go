package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
	"github.com/bkassahun/courseload/internal/pkg/dberrors"
)

// Instructor error types
var (
	ErrInstructorEmailExists = errors.New("instructor with this email already exists")
)

// InstructorRepository handles database operations for instructors
type InstructorRepository struct {
	db *pgxpool.Pool
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
	}
}

const instructorColumns = `
	id, name, email, school, department, hdp_hours, position_hours, batch_advisor_hours
`

func scanInstructor(row pgx.Row) (*models.Instructor, error) {
	var instructor models.Instructor
	err := row.Scan(
		&instructor.ID,
		&instructor.Name,
		&instructor.Email,
		&instructor.School,
		&instructor.Department,
		&instructor.HDPHours,
		&instructor.PositionHours,
		&instructor.BatchAdvisorHours,
	)
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

// Create creates a new instructor
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (name, email, school, department, hdp_hours, position_hours, batch_advisor_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		instructor.Name, instructor.Email, instructor.School, instructor.Department,
		instructor.HDPHours, instructor.PositionHours, instructor.BatchAdvisorHours,
	).Scan(&instructor.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_email_key") {
			return ErrInstructorEmailExists
		}
		return fmt.Errorf("error creating instructor: %w", err)
	}

	return nil
}

// GetByID retrieves an instructor by ID
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	query := `SELECT ` + instructorColumns + ` FROM instructors WHERE id = $1`

	instructor, err := scanInstructor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	return instructor, nil
}

// GetAll retrieves all instructors
func (r *InstructorRepository) GetAll(ctx context.Context) ([]*models.Instructor, error) {
	query := `SELECT ` + instructorColumns + ` FROM instructors ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instructors []*models.Instructor
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, err
		}
		instructors = append(instructors, instructor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return instructors, nil
}

// GetByTerm retrieves instructors that hold at least one course in the term.
func (r *InstructorRepository) GetByTerm(ctx context.Context, academicYear int, semester models.Semester) ([]*models.Instructor, error) {
	query := `
		SELECT DISTINCT i.id, i.name, i.email, i.school, i.department,
			i.hdp_hours, i.position_hours, i.batch_advisor_hours
		FROM instructors i
		JOIN courses c ON c.instructor_id = i.id
		WHERE c.academic_year = $1 AND c.semester = $2
		ORDER BY i.name
	`

	rows, err := r.db.Query(ctx, query, academicYear, semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instructors []*models.Instructor
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, err
		}
		instructors = append(instructors, instructor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return instructors, nil
}

// Update updates an existing instructor
func (r *InstructorRepository) Update(ctx context.Context, instructor *models.Instructor) error {
	query := `
		UPDATE instructors
		SET name = $1, email = $2, school = $3, department = $4,
			hdp_hours = $5, position_hours = $6, batch_advisor_hours = $7
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		instructor.Name, instructor.Email, instructor.School, instructor.Department,
		instructor.HDPHours, instructor.PositionHours, instructor.BatchAdvisorHours,
		instructor.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_email_key") {
			return ErrInstructorEmailExists
		}
		return fmt.Errorf("error updating instructor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstructorNotFound
	}

	return nil
}

// Delete deletes an instructor by ID. Instructors with assigned courses
// cannot be deleted.
func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	var hasCourses bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE instructor_id = $1)`, id).Scan(&hasCourses)
	if err != nil {
		return fmt.Errorf("error checking instructor courses: %w", err)
	}

	if hasCourses {
		return errors.New("instructor has assigned courses and cannot be deleted")
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting instructor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstructorNotFound
	}

	return nil
}
