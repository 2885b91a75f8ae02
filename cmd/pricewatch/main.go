package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"pricewatch/internal/cli"
	"pricewatch/internal/config"
	"pricewatch/internal/logging"
)

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("PRICEWATCH_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pricewatch: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLoggerWithConfig(logging.LogConfig{
		Level:      cfg.Logging.Level,
		Console:    true,
		File:       cfg.Logging.File,
		FilePath:   cfg.Logging.Path,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     30,
	})

	if err := cli.Execute(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
