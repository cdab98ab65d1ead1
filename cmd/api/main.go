package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/williamscesar21/RikoApi/config"
	httpHandler "github.com/williamscesar21/RikoApi/internal/adapter/http/handler"
	"github.com/williamscesar21/RikoApi/internal/adapter/storage/localdisk"
	pgStorage "github.com/williamscesar21/RikoApi/internal/adapter/storage/postgres"
	redisStorage "github.com/williamscesar21/RikoApi/internal/adapter/storage/redis"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/internal/service"
	"github.com/williamscesar21/RikoApi/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Riko API")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	clientRepo := pgStorage.NewClientRepo(pool)
	restaurantRepo := pgStorage.NewRestaurantRepo(pool)
	courierRepo := pgStorage.NewCourierRepo(pool)
	adminRepo := pgStorage.NewAdminRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	productRepo := pgStorage.NewProductRepo(pool)
	comboRepo := pgStorage.NewComboRepo(pool)
	cartRepo := pgStorage.NewCartRepo(pool)
	orderRepo := pgStorage.NewOrderRepo(pool)
	ratingRepo := pgStorage.NewRatingRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	priceCache := redisStorage.NewPriceCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize local file storage for uploads
	fileStore, err := localdisk.New(cfg.Uploads, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize upload storage")
	}

	// Initialize core services
	hashSvc := service.NewBcryptHashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	walletSvc := service.NewWalletService(walletRepo, txRepo, clientRepo, restaurantRepo, courierRepo, transactor, log)
	authSvc := service.NewAuthService(clientRepo, restaurantRepo, courierRepo, adminRepo, hashSvc, tokenSvc, log)
	accountSvc := service.NewAccountService(clientRepo, restaurantRepo, courierRepo, adminRepo, cartRepo, ratingRepo, walletSvc, hashSvc, transactor, log)
	catalogSvc := service.NewCatalogService(productRepo, comboRepo, restaurantRepo, ratingRepo, priceCache, transactor, log)
	cartSvc := service.NewCartService(cartRepo, productRepo, priceCache, log)
	orderSvc := service.NewOrderService(orderRepo, cartRepo, productRepo, courierRepo, walletSvc, cartSvc, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		AccountSvc:     accountSvc,
		WalletSvc:      walletSvc,
		CatalogSvc:     catalogSvc,
		CartSvc:        cartSvc,
		OrderSvc:       orderSvc,
		TokenSvc:       tokenSvc,
		FileStore:      fileStore,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		UploadsDir:     cfg.Uploads.Dir,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
