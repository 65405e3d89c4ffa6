package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

// CourseRepository handles database operations for courses and their
// approval history.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

const courseColumns = `
	id, code, title, school, department, academic_year, semester,
	lecture_hours, lecture_sections, lab_hours, lab_sections,
	tutorial_hours, tutorial_sections, instructor_id, status
`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.Code,
		&course.Title,
		&course.School,
		&course.Department,
		&course.AcademicYear,
		&course.Semester,
		&course.LectureHours,
		&course.LectureSections,
		&course.LabHours,
		&course.LabSections,
		&course.TutorialHours,
		&course.TutorialSections,
		&course.InstructorID,
		&course.Status,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course. New courses always start UNASSIGNED.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	course.Status = models.StatusUnassigned

	query := `
		INSERT INTO courses (
			code, title, school, department, academic_year, semester,
			lecture_hours, lecture_sections, lab_hours, lab_sections,
			tutorial_hours, tutorial_sections, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		course.Code, course.Title, course.School, course.Department,
		course.AcademicYear, course.Semester,
		course.LectureHours, course.LectureSections,
		course.LabHours, course.LabSections,
		course.TutorialHours, course.TutorialSections,
		course.Status,
	).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetByTerm retrieves all courses for one (academicYear, semester).
func (r *CourseRepository) GetByTerm(ctx context.Context, academicYear int, semester models.Semester) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE academic_year = $1 AND semester = $2 ORDER BY id`

	rows, err := r.db.Query(ctx, query, academicYear, semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCourses(rows)
}

// GetByInstructorAndTerm retrieves an instructor's courses for one term.
func (r *CourseRepository) GetByInstructorAndTerm(ctx context.Context, instructorID int64, academicYear int, semester models.Semester) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE instructor_id = $1 AND academic_year = $2 AND semester = $3 ORDER BY id`

	rows, err := r.db.Query(ctx, query, instructorID, academicYear, semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCourses(rows)
}

// List retrieves courses with optional status filtering and pagination.
func (r *CourseRepository) List(ctx context.Context, academicYear int, semester models.Semester, status models.Status, offset uint64, limit int) ([]*models.Course, int64, error) {
	where := `WHERE academic_year = $1 AND semester = $2`
	args := []interface{}{academicYear, semester}
	if status != "" {
		where += ` AND status = $3`
		args = append(args, status)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM courses %s ORDER BY id LIMIT %d OFFSET %d`, courseColumns, where, limit, offset)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	courses, err := collectCourses(rows)
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func collectCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// Update updates a course's descriptive and hour-configuration fields.
// Status and instructor assignment change only through transitions.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET code = $1, title = $2, school = $3, department = $4,
			academic_year = $5, semester = $6,
			lecture_hours = $7, lecture_sections = $8,
			lab_hours = $9, lab_sections = $10,
			tutorial_hours = $11, tutorial_sections = $12
		WHERE id = $13
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Code, course.Title, course.School, course.Department,
		course.AcademicYear, course.Semester,
		course.LectureHours, course.LectureSections,
		course.LabHours, course.LabSections,
		course.TutorialHours, course.TutorialSections,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Transition atomically moves a course from expected status to next and
// appends the history entry. The UPDATE is guarded by the expected status:
// when the stored status no longer matches, the transition fails with
// ErrConflict and nothing changes. instructorID, when non-nil, is written as
// the course's instructor (assignment); a transition to UNASSIGNED clears the
// instructor instead.
func (r *CourseRepository) Transition(ctx context.Context, courseID int64, expected, next models.Status, instructorID *int64, entry *models.ApprovalEntry) (*models.Course, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cmdQuery string
	var args []interface{}
	switch {
	case next == models.StatusUnassigned:
		// Returning to the pool severs the instructor link; an unassigned
		// course never keeps an instructor.
		cmdQuery = `UPDATE courses SET status = $1, instructor_id = NULL WHERE id = $2 AND status = $3`
		args = []interface{}{next, courseID, expected}
	case instructorID != nil:
		cmdQuery = `UPDATE courses SET status = $1, instructor_id = $2 WHERE id = $3 AND status = $4`
		args = []interface{}{next, *instructorID, courseID, expected}
	default:
		cmdQuery = `UPDATE courses SET status = $1 WHERE id = $2 AND status = $3`
		args = []interface{}{next, courseID, expected}
	}

	cmdTag, err := tx.Exec(ctx, cmdQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating course status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing course from a stale expected status.
		var current models.Status
		err := tx.QueryRow(ctx, `SELECT status FROM courses WHERE id = $1`, courseID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("error checking course status: %w", err)
		}
		return nil, fmt.Errorf("%w: expected %s but course is %s", apperrors.ErrConflict, expected, current)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO approval_history (course_id, role, action, status_after, remarks, actor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, courseID, entry.Role, entry.Action, entry.StatusAfter, entry.Remarks, entry.ActorID).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error appending approval history: %w", err)
	}
	entry.CourseID = courseID

	course, err := scanCourse(tx.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, courseID))
	if err != nil {
		return nil, fmt.Errorf("error reloading course: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return course, nil
}

// ResetTerm rewinds every course in the term to UNASSIGNED, clears the
// instructor links, and appends one history entry per course. Prior history
// entries and payments are untouched.
func (r *CourseRepository) ResetTerm(ctx context.Context, academicYear int, semester models.Semester, actorID int64) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `SELECT id FROM courses WHERE academic_year = $1 AND semester = $2`, academicYear, semester)
	if err != nil {
		return 0, fmt.Errorf("error selecting term courses: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `UPDATE courses SET status = $1, instructor_id = NULL WHERE academic_year = $2 AND semester = $3`,
		models.StatusUnassigned, academicYear, semester); err != nil {
		return 0, fmt.Errorf("error resetting course statuses: %w", err)
	}

	for _, id := range ids {
		if _, err := tx.Exec(ctx, `
			INSERT INTO approval_history (course_id, role, action, status_after, remarks, actor_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, models.RoleAdmin, models.ActionReset, models.StatusUnassigned, "semester-reset", actorID); err != nil {
			return 0, fmt.Errorf("error appending reset history: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(ids), nil
}

// GetHistory returns a course's approval history, oldest first.
func (r *CourseRepository) GetHistory(ctx context.Context, courseID int64) ([]models.ApprovalEntry, error) {
	query := `
		SELECT id, course_id, role, action, status_after, remarks, actor_id, created_at
		FROM approval_history
		WHERE course_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ApprovalEntry
	for rows.Next() {
		var entry models.ApprovalEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.CourseID,
			&entry.Role,
			&entry.Action,
			&entry.StatusAfter,
			&entry.Remarks,
			&entry.ActorID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
