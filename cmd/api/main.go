package main

import (
	"flag"
	"os"

	"github.com/bathudi/admissions/internal/bootstrap"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/bathudi/admissions/internal/server"
)

// @title Bathudi Admissions API
// @version 1.0
// @description Admissions backend for the Bathudi Automotive Technical Center: course catalog, applications, review workflow and website content.

// @contact.name Bathudi Support
// @contact.url https://bathudi.co.za
// @contact.email info@bathudi.co.za

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
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
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
