package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bkassahun/courseload/internal/app/controllers"
	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	instructorController *controllers.InstructorController,
	paymentController *controllers.PaymentController,
	dashboardController *controllers.DashboardController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Course catalog. Any authenticated role may read; the department
		// head owns the catalog and assignments.
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:id", courseController.GetCourse)
			courses.GET("/:id/history", courseController.GetCourseHistory)

			coursesDeptHead := courses.Group("")
			coursesDeptHead.Use(authMiddleware.RoleRequired(models.RoleDeptHead))
			{
				coursesDeptHead.POST("", courseController.CreateCourse)
				coursesDeptHead.PUT("/:id", courseController.UpdateCourse)
				coursesDeptHead.DELETE("/:id", courseController.DeleteCourse)
			}

			// Any reviewer role may post a transition; the workflow engine
			// decides whether that role owns the current status.
			coursesReviewer := courses.Group("")
			coursesReviewer.Use(authMiddleware.RoleRequired(
				models.RoleDeptHead, models.RoleDean, models.RoleViceDirector,
				models.RoleScientificDirector, models.RoleFinance,
			))
			{
				coursesReviewer.POST("/:id/transition", courseController.TransitionCourse)
			}

			coursesFinance := courses.Group("")
			coursesFinance.Use(authMiddleware.RoleRequired(models.RoleFinance))
			{
				coursesFinance.POST("/:id/payments/manual", paymentController.SaveManualPayment)
			}
		}

		// Instructor roster and per-instructor views.
		instructors := authenticated.Group("/instructors")
		{
			instructors.GET("", instructorController.GetAllInstructors)
			instructors.GET("/:id", instructorController.GetInstructor)
			instructors.GET("/:id/workload", instructorController.GetInstructorWorkload)

			instructorsDeptHead := instructors.Group("")
			instructorsDeptHead.Use(authMiddleware.RoleRequired(models.RoleDeptHead))
			{
				instructorsDeptHead.POST("", instructorController.CreateInstructor)
				instructorsDeptHead.PUT("/:id", instructorController.UpdateInstructor)
				instructorsDeptHead.DELETE("/:id", instructorController.DeleteInstructor)
			}

			instructorsReviewer := instructors.Group("")
			instructorsReviewer.Use(authMiddleware.RoleRequired(
				models.RoleDeptHead, models.RoleDean, models.RoleViceDirector,
				models.RoleScientificDirector, models.RoleFinance,
			))
			{
				instructorsReviewer.POST("/:id/courses/transition", instructorController.BulkTransitionCourses)
			}

			instructorsFinance := instructors.Group("")
			instructorsFinance.Use(authMiddleware.RoleRequired(models.RoleFinance))
			{
				instructorsFinance.POST("/:id/payments/calculate", paymentController.CalculatePayment)
				instructorsFinance.GET("/:id/payments", paymentController.GetInstructorPayment)
			}
		}

		// Payments are the finance role's surface.
		payments := authenticated.Group("/payments")
		payments.Use(authMiddleware.RoleRequired(models.RoleFinance))
		{
			payments.GET("", paymentController.ListPayments)
			payments.POST("", paymentController.SavePayment)
			payments.POST("/batch", paymentController.BatchSavePayments)
		}

		// Dashboard is readable by every authenticated role.
		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/summary", dashboardController.GetTermSummary)
			dashboard.GET("/instructors", dashboardController.GetInstructorRollUps)
		}

		// Admin operations. RoleRequired lets admins through everywhere, but
		// these routes accept nobody else.
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired())
		{
			admin.POST("/semester-reset", adminController.BeginSemesterReset)
			admin.POST("/semester-reset/confirm", adminController.ConfirmSemesterReset)
		}
	}
}
