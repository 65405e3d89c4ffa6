package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/bkassahun/courseload/internal/pkg/logger"
	"github.com/bkassahun/courseload/internal/server"
)

// @title Course Load Approval API
// @version 1.0
// @description API for the university course-load approval workflow and overload payment engine

// @contact.name API Support
// @contact.email support@courseload.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
