package main

import (
	"os"

	"github.com/schooldesk/api/internal/pkg/logger" // Still needed for initial error logging
	"github.com/schooldesk/api/internal/server"
)

// @title SchoolDesk API
// @version 1.0
// @description Administration dashboard API for student records, curriculum, payments and staff accounts

// @contact.name API Support
// @contact.email support@schooldesk.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	// NewServer orchestrates LoadConfigAndSetupLogger, SetupDatabase,
	// BuildDependencies and SetupRouter
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
