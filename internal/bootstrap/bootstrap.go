package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/bkassahun/courseload/docs" // Import generated swagger docs
	appControllers "github.com/bkassahun/courseload/internal/app/controllers"
	appMigrations "github.com/bkassahun/courseload/internal/app/migrations"
	appRepos "github.com/bkassahun/courseload/internal/app/repositories"
	appRoutes "github.com/bkassahun/courseload/internal/app/routes"
	appServices "github.com/bkassahun/courseload/internal/app/services"
	"github.com/bkassahun/courseload/internal/config"
	"github.com/bkassahun/courseload/internal/db"
	appMiddleware "github.com/bkassahun/courseload/internal/middleware"
	pkgAuth "github.com/bkassahun/courseload/internal/pkg/auth"
	"github.com/bkassahun/courseload/internal/pkg/helpers"
	"github.com/bkassahun/courseload/internal/pkg/logger"
	"github.com/bkassahun/courseload/internal/pkg/notify"
	"github.com/bkassahun/courseload/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *appServices.Services
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	InstructorController *appControllers.InstructorController
	PaymentController    *appControllers.PaymentController
	DashboardController  *appControllers.DashboardController
	AdminController      *appControllers.AdminController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	dispatcher := notify.NewSMTPDispatcher(notify.SMTPConfig{
		Host:      cfg.Notify.SMTPHost,
		Port:      cfg.Notify.SMTPPort,
		Username:  cfg.Notify.Username,
		Password:  cfg.Notify.Password,
		FromName:  cfg.Notify.FromName,
		FromEmail: cfg.Notify.FromEmail,
	}, lgr)

	resetTTL := helpers.ParseDuration(cfg.Reset.ConfirmationTTL, 10*time.Minute)
	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, dispatcher, resetTTL)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth)
	deps.CourseController = appControllers.NewCourseController(deps.Services.Course, deps.Services.Approval)
	deps.InstructorController = appControllers.NewInstructorController(deps.Services.Instructor, deps.Services.Workload, deps.Services.Approval)
	deps.PaymentController = appControllers.NewPaymentController(deps.Services.Payment)
	deps.DashboardController = appControllers.NewDashboardController(deps.Services.Dashboard)
	deps.AdminController = appControllers.NewAdminController(deps.Services.Approval)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.InstructorController,
		deps.PaymentController,
		deps.DashboardController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	return router
}
