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

// PaymentRepository handles database operations for payments and finance runs.
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		db: db,
	}
}

const paymentColumns = `
	id, instructor_id, academic_year, semester,
	base_amount, hdp_allowance, position_allowance, advisor_allowance,
	overload_amount, total_amount, remarks, created_at, updated_at
`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.InstructorID,
		&payment.AcademicYear,
		&payment.Semester,
		&payment.BaseAmount,
		&payment.HDPAllowance,
		&payment.PositionAllowance,
		&payment.AdvisorAllowance,
		&payment.OverloadAmount,
		&payment.TotalAmount,
		&payment.Remarks,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Upsert creates the payment row for an (instructor, year, semester) triple
// or updates the existing one. The unique constraint on the triple makes the
// save idempotent: repeated saves touch one row.
func (r *PaymentRepository) Upsert(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (
			instructor_id, academic_year, semester,
			base_amount, hdp_allowance, position_allowance, advisor_allowance,
			overload_amount, total_amount, remarks
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (instructor_id, academic_year, semester)
		DO UPDATE SET
			base_amount = EXCLUDED.base_amount,
			hdp_allowance = EXCLUDED.hdp_allowance,
			position_allowance = EXCLUDED.position_allowance,
			advisor_allowance = EXCLUDED.advisor_allowance,
			overload_amount = EXCLUDED.overload_amount,
			total_amount = EXCLUDED.total_amount,
			remarks = EXCLUDED.remarks,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		payment.InstructorID, payment.AcademicYear, payment.Semester,
		payment.BaseAmount, payment.HDPAllowance, payment.PositionAllowance,
		payment.AdvisorAllowance, payment.OverloadAmount, payment.TotalAmount,
		payment.Remarks,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving payment: %w", err)
	}

	return nil
}

// GetByTriple retrieves the payment for one (instructor, year, semester).
func (r *PaymentRepository) GetByTriple(ctx context.Context, instructorID int64, academicYear int, semester models.Semester) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE instructor_id = $1 AND academic_year = $2 AND semester = $3`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, instructorID, academicYear, semester))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error retrieving payment: %w", err)
	}

	return payment, nil
}

// ListByTerm retrieves all payments for one term.
func (r *PaymentRepository) ListByTerm(ctx context.Context, academicYear int, semester models.Semester) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE academic_year = $1 AND semester = $2 ORDER BY instructor_id`

	rows, err := r.db.Query(ctx, query, academicYear, semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

// GetFinanceRun retrieves the rate context for one term's finance session.
func (r *PaymentRepository) GetFinanceRun(ctx context.Context, academicYear int, semester models.Semester) (*models.FinanceRun, error) {
	query := `
		SELECT id, academic_year, semester, rate, started_by, created_at, updated_at
		FROM finance_runs
		WHERE academic_year = $1 AND semester = $2
	`

	var run models.FinanceRun
	err := r.db.QueryRow(ctx, query, academicYear, semester).Scan(
		&run.ID,
		&run.AcademicYear,
		&run.Semester,
		&run.Rate,
		&run.StartedBy,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFinanceRunNotFound
		}
		return nil, fmt.Errorf("error retrieving finance run: %w", err)
	}

	return &run, nil
}

// UpsertFinanceRun establishes or updates the term's shared rate.
func (r *PaymentRepository) UpsertFinanceRun(ctx context.Context, run *models.FinanceRun) error {
	query := `
		INSERT INTO finance_runs (academic_year, semester, rate, started_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (academic_year, semester)
		DO UPDATE SET rate = EXCLUDED.rate, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		run.AcademicYear, run.Semester, run.Rate, run.StartedBy,
	).Scan(&run.ID, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving finance run: %w", err)
	}

	return nil
}
