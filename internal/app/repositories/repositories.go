package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	CourseRepository     *CourseRepository
	InstructorRepository *InstructorRepository
	PaymentRepository    *PaymentRepository
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	ResetRepository      *ResetRepository
}

// NewRepositories creates all repositories with the shared connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:     NewCourseRepository(db),
		InstructorRepository: NewInstructorRepository(db),
		PaymentRepository:    NewPaymentRepository(db),
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		ResetRepository:      NewResetRepository(db),
	}
}
