// Package services holds the business logic between the HTTP controllers and
// the repositories.
//
// Services defined in this package:
//   - AuthService: authentication and token refresh
//   - CourseService: course CRUD and approval history access
//   - InstructorService: instructor CRUD
//   - ApprovalService: workflow transitions, bulk transitions, semester reset
//   - WorkloadService: load and overload computation
//   - PaymentService: payment calculation, idempotent saves, batch saves
//   - DashboardService: stateless roll-up queries
package services

import (
	"time"

	"github.com/bkassahun/courseload/internal/app/repositories"
	"github.com/bkassahun/courseload/internal/pkg/auth"
	"github.com/bkassahun/courseload/internal/pkg/notify"
)

// Services bundles every service for dependency injection.
type Services struct {
	Auth       AuthService
	Course     CourseService
	Instructor InstructorService
	Approval   ApprovalService
	Workload   WorkloadService
	Payment    PaymentService
	Dashboard  DashboardService
}

// NewServices wires the services over the repository container.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, dispatcher notify.Dispatcher, resetTTL time.Duration) *Services {
	workloadSvc := NewWorkloadService(repos.CourseRepository, repos.InstructorRepository)
	return &Services{
		Auth:       NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		Course:     NewCourseService(repos.CourseRepository),
		Instructor: NewInstructorService(repos.InstructorRepository),
		Approval:   NewApprovalService(repos.CourseRepository, repos.InstructorRepository, repos.ResetRepository, dispatcher, resetTTL),
		Workload:   workloadSvc,
		Payment:    NewPaymentService(repos.PaymentRepository, repos.CourseRepository, repos.InstructorRepository, workloadSvc, dispatcher),
		Dashboard:  NewDashboardService(repos.CourseRepository, repos.InstructorRepository),
	}
}
