package main

import (
	"resto/config"
	"resto/di"
	"resto/helper"
	"resto/shared/logger"
	"resto/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Resto API
// @version 1.0
// @description Restaurant menu, reservation and contact API.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
