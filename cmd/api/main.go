package main

import (
	_ "time/tzdata" // exam dates are evaluated in the configured zone

	"github.com/yigit/uniportal/internal/pkg/logger"
	"github.com/yigit/uniportal/internal/server"
)

// @title UniPortal API
// @version 1.0
// @description API for the UniPortal student course portal

// @contact.name API Support

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
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	// blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped with errors")
	}

	logger.Info().Msg("Bye")
}
