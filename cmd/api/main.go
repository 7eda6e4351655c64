package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/caloria/backend/config"
	"github.com/pageza/caloria/backend/internal/logger"
	"github.com/pageza/caloria/backend/internal/server"
	"github.com/pageza/caloria/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel)

	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		if errs.Fatal(cfg.Environment) {
			logger.WithError(errs).Fatal("Invalid configuration")
		}
		logger.WithError(errs).Warn("Configuration incomplete; analysis requests will fail until it is fixed")
	}

	// Wire services
	llmClient := service.NewOpenAIClient(cfg)
	analysisService := service.NewFoodAnalysisService(cfg, llmClient)

	srv := server.New(cfg, analysisService)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		logger.WithFields(logrus.Fields{
			"environment": cfg.Environment,
			"model":       cfg.OpenAIModel,
		}).Info("Starting CalorIA API")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			logger.WithError(err).Fatal("Server error")
		}
		return
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("Received signal")
	}

	// Gracefully shutdown the server
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server shutdown error")
	}
	logger.Info("Server stopped")
}
