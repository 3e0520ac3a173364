package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jihan212/BUBT-DX/internal/app"
	"github.com/jihan212/BUBT-DX/internal/config"
	"github.com/jihan212/BUBT-DX/internal/database"
	"github.com/jihan212/BUBT-DX/internal/database/migrations"
	apphttp "github.com/jihan212/BUBT-DX/internal/http"
	"github.com/jihan212/BUBT-DX/internal/http/handlers"
	"github.com/jihan212/BUBT-DX/internal/http/metrics"
	httpmw "github.com/jihan212/BUBT-DX/internal/http/middleware"
	"github.com/jihan212/BUBT-DX/internal/http/response"
	"github.com/jihan212/BUBT-DX/internal/maintenance"
	"github.com/jihan212/BUBT-DX/internal/observability"
	"github.com/jihan212/BUBT-DX/internal/repository/postgres"
	"github.com/jihan212/BUBT-DX/internal/security"
)

func main() {
	observability.Setup()
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	db, err := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to postgres")
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	userRepo := postgres.NewUserRepository(db)
	refreshRepo := postgres.NewRefreshTokenRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, refreshRepo, analyticsRepo, jwtProvider, observability.NewLogger("auth"), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := app.NewUserService(userRepo, analyticsRepo)
	jobService := app.NewJobService(jobRepo, userRepo, analyticsRepo)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, userRepo, analyticsRepo)
	statsService := app.NewStatsService(analyticsRepo)

	var rateLimiter httpmw.Limiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rateLimiter = httpmw.NewRedisLimiter(client)
		defer client.Close()
	} else {
		rateLimiter = httpmw.NewRateLimiter()
	}

	authHandler := handlers.NewAuthHandler(authService, rateLimiter)
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, rateLimiter)
	statsHandler := handlers.NewStatsHandler(statsService)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	scheduler := maintenance.NewScheduler(authService)
	if err := scheduler.Start(cfg.TokenPurgeSpec); err != nil {
		logrus.WithError(err).Fatal("failed to start scheduler")
	}
	defer scheduler.Stop()

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		JobHandler:         jobHandler,
		ApplicationHandler: applicationHandler,
		StatsHandler:       statsHandler,
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
		logrus.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("shutdown failed")
	}
}
