package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aicuts/faceshape-api/internal/api"
	"github.com/aicuts/faceshape-api/internal/config"
	"github.com/aicuts/faceshape-api/internal/detector"
	"github.com/aicuts/faceshape-api/internal/mailer"
	"github.com/aicuts/faceshape-api/internal/metrics"
	"github.com/aicuts/faceshape-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting face shape API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("detector", cfg.DetectorType),
	)

	det, err := detector.New(cfg)
	if err != nil {
		return fmt.Errorf("create detector: %w", err)
	}

	m, err := mailer.New(cfg)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	deps := &api.Dependencies{
		Classifier: service.NewFaceShapeService(det, logger),
		Mailer:     m,
		Metrics:    metrics.NewDefault(),
	}

	router := api.NewRouter(logger, deps)
	router.Setup()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
