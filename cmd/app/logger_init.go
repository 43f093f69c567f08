package main

import (
	"github.com/gevornos/Life-is-RPG/internal/config"
	"github.com/gevornos/Life-is-RPG/internal/handler"
	"github.com/gevornos/Life-is-RPG/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Determine if we should add source info (only in dev)
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "life-rpg",
		Version:     handler.Version,
		Environment: cfg.Environment,
		AddSource:   addSource,
	}

	logger.Init(loggerConfig)
}
