package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"internboard/internal/app"
	"internboard/internal/config"
	"internboard/internal/database"
	apphttp "internboard/internal/http"
	"internboard/internal/http/handlers"
	"internboard/internal/http/metrics"
	httpmw "internboard/internal/http/middleware"
	"internboard/internal/http/response"
	"internboard/internal/observability"
	"internboard/internal/repository/postgres"
	"internboard/internal/security"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	identityRepo := postgres.NewIdentityRepository(db)
	offerRepo := postgres.NewOfferRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	ownership := app.NewOwnershipResolver(offerRepo, applicationRepo)

	authService := app.NewAuthService(identityRepo, jwtProvider, logger, cfg.AccessTokenTTL)
	accountService := app.NewAccountService(identityRepo)
	offerService := app.NewOfferService(offerRepo, identityRepo, ownership)
	applicationService := app.NewApplicationService(applicationRepo, offerRepo, identityRepo, ownership)
	statsService := app.NewStatsService(identityRepo, offerRepo, applicationRepo)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}
	seedCancel()

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to parse redis url: %v", err)
		}
		limiter = httpmw.NewRedisLimiter(redis.NewClient(opts))
	}

	authHandler := handlers.NewAuthHandler(authService, limiter)
	offerHandler := handlers.NewOfferHandler(offerService, applicationService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, limiter)
	studentHandler := handlers.NewStudentHandler(accountService)
	adminHandler := handlers.NewAdminHandler(accountService, statsService)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		OfferHandler:       offerHandler,
		ApplicationHandler: applicationHandler,
		StudentHandler:     studentHandler,
		AdminHandler:       adminHandler,
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     middleware,
		Metrics:            collector,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
