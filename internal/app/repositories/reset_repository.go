package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

// ResetConfirmation is a pending semester-reset request awaiting its second
// confirmation step.
type ResetConfirmation struct {
	Token        string
	AcademicYear int
	Semester     models.Semester
	RequestedBy  int64
	ExpiresAt    time.Time
}

// ResetRepository handles database operations for semester-reset
// confirmation tokens.
type ResetRepository struct {
	db *pgxpool.Pool
}

// NewResetRepository creates a new reset repository
func NewResetRepository(db *pgxpool.Pool) *ResetRepository {
	return &ResetRepository{
		db: db,
	}
}

// Create stores a confirmation token.
func (r *ResetRepository) Create(ctx context.Context, confirmation *ResetConfirmation) error {
	query := `
		INSERT INTO reset_confirmations (token, academic_year, semester, requested_by, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		confirmation.Token, confirmation.AcademicYear, confirmation.Semester,
		confirmation.RequestedBy, confirmation.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("error creating reset confirmation: %w", err)
	}

	return nil
}

// Consume retrieves and deletes a confirmation token in one step so each
// token authorizes at most one reset. Expired tokens are rejected.
func (r *ResetRepository) Consume(ctx context.Context, token string) (*ResetConfirmation, error) {
	query := `
		DELETE FROM reset_confirmations
		WHERE token = $1
		RETURNING token, academic_year, semester, requested_by, expires_at
	`

	var confirmation ResetConfirmation
	err := r.db.QueryRow(ctx, query, token).Scan(
		&confirmation.Token,
		&confirmation.AcademicYear,
		&confirmation.Semester,
		&confirmation.RequestedBy,
		&confirmation.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("error consuming reset confirmation: %w", err)
	}

	if time.Now().After(confirmation.ExpiresAt) {
		return nil, apperrors.ErrResetTokenInvalid
	}

	return &confirmation, nil
}
