// Package main provides the entry point for the Happy Place listings server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ericfisherdev/happyplace/internal/config"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/server"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.AutoLoadEnv("."); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog, err := logger.New(logger.Options{
		Level:         cfg.GetLogLevel(),
		HumanReadable: cfg.IsLogHumanReadable(),
		Writer:        os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return server.Run(ctx, cfg, appLog)
}
