package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/event"
	"storefront/internal/handler"
	"storefront/internal/image"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Sync(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to sync schema: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	addressRepo := repository.NewAddressRepository(pool, logger)

	// Initialize image store with S3 and local fallback
	imageStore, err := newImageStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize image store: %w", err)
	}

	// Initialize order event publisher
	publisher := event.NewNopPublisher()
	if cfg.Events.Enabled {
		amqpPublisher, err := event.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Exchange, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to AMQP broker, order events disabled")
		} else {
			publisher = amqpPublisher
			defer publisher.Close()
		}
	}

	// Initialize session store and cart engine
	sessionStore := session.NewPostgresStore(pool, logger)
	cartEngine := cart.NewEngine(sessionStore, productRepo, logger)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, categoryRepo, userRepo, logger)
	cartService := service.NewCartService(cartEngine, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, userRepo, addressRepo, cartEngine, publisher, logger)
	accountService := service.NewAccountService(userRepo, addressRepo, tokens, logger)

	// Make sure the back office is reachable on a fresh database
	if err := accountService.EnsureManager(ctx, cfg.Auth.ManagerEmail, cfg.Auth.ManagerName, cfg.Auth.ManagerPassword); err != nil {
		return fmt.Errorf("failed to bootstrap manager account: %w", err)
	}

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	accountHandler := handler.NewAccountHandler(accountService, logger)
	adminHandler := handler.NewAdminHandler(catalogService, orderService, accountService, imageStore, logger)

	// Initialize router
	mux := router.New(catalogHandler, cartHandler, orderHandler, accountHandler, adminHandler, tokens, logger)

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

// newImageStore wires S3 when configured and falls back to the local
// filesystem when S3 is disabled or unreachable.
func newImageStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (image.Store, error) {
	if cfg.Images.S3Enabled {
		s3Store, err := image.NewS3Store(ctx, cfg.Images.Bucket, cfg.Images.Region, cfg.Images.Prefix, logger)
		if err == nil {
			return s3Store, nil
		}
		logger.Warn().Err(err).Msg("failed to initialise S3 image store, falling back to local file system")
	} else {
		logger.Info().Msg("using local file system for product images (S3 disabled)")
	}
	return image.NewFSStore(cfg.Images.LocalDir, logger)
}
