package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"discount-manager/internal/codes"
	"discount-manager/internal/config"
	"discount-manager/internal/database"
	"discount-manager/internal/handler"
	"discount-manager/internal/repository"
	"discount-manager/internal/router"
	"discount-manager/internal/service"
	"discount-manager/internal/shopify"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting discount manager API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	discountRepo := repository.NewDiscountRepository(pool, logger)
	sessionRepo := repository.NewSessionRepository(pool, logger)
	eventRepo := repository.NewWebhookEventRepository(pool, logger)

	// Initialize the Admin API gateway
	client := shopify.NewClient(cfg.Shopify.APIVersion, logger)
	gateway := shopify.NewGateway(client, logger)

	// Initialize code file loader with S3 and local fallback
	fileLoader := codes.NewFileLoader(logger)
	var codeLoader codes.Loader

	if cfg.CodeFiles.S3Enabled {
		s3Loader, err := codes.NewS3Loader(ctx, cfg.CodeFiles.Bucket, cfg.CodeFiles.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			codeLoader = fileLoader
		} else {
			codeLoader = codes.NewFallbackLoader(s3Loader, fileLoader, cfg.CodeFiles.Prefix, true, logger)
		}
	} else {
		codeLoader = fileLoader
		logger.Info().Msg("using local file system for code files (S3 disabled)")
	}

	// Initialize services
	discountService := service.NewDiscountService(discountRepo, sessionRepo, gateway, codeLoader, logger)
	webhookService := service.NewWebhookService(discountRepo, sessionRepo, eventRepo, gateway, logger)
	catalogService := service.NewCatalogService(sessionRepo, gateway, logger)

	// Initialize HTTP handlers
	discountHandler := handler.NewDiscountHandler(discountService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	webhookHandler := handler.NewWebhookHandler(webhookService, logger)

	// Initialize router
	mux := router.New(discountHandler, catalogHandler, webhookHandler, cfg.Auth.APIKey, cfg.Shopify.WebhookSecret, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
