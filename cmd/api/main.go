package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"focustime/internal/adapter/cache"
	"focustime/internal/adapter/database"
	httpadapter "focustime/internal/adapter/http"
	"focustime/internal/adapter/http/handler"
	"focustime/internal/adapter/ws"
	"focustime/internal/core/port"
	"focustime/internal/core/service"
	"focustime/pkg/auth"
	"focustime/pkg/config"
	"focustime/pkg/logger"
	"focustime/pkg/metrics"
	"focustime/pkg/ratelimit"
	"focustime/pkg/tracing"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	lokiLogger, err := logger.NewLokiLogger("focustime", cfg.LokiURL)

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer lokiLogger.Sync()

	telemetry, err := tracing.InitTelemetry(ctx, tracing.TelemetryConfig{
		ServiceName:    "focustime",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetry.Shutdown(context.Background())

	appMetrics := metrics.NewAppMetrics(telemetry.PrometheusRegistry)
	appMetrics.StartSystemMetrics(ctx)

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, cfg.MigrationsPath)

	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	defer db.Close()

	var summaryCache port.SummaryCache

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()

		summaryCache = cache.NewSummaryCache(redisClient)
	}

	uow := database.NewUnitOfWork(db)
	tokens := &auth.JWT{Secret: cfg.JWTSecret}

	authSvc := service.NewAuthService(uow, tokens)
	projectSvc := service.NewProjectService(uow, summaryCache)
	taskSvc := service.NewTaskService(uow)
	todoSvc := service.NewToDoService(uow)
	focusSvc := service.NewFocusSessionService(uow, summaryCache)

	registry := ws.NewRegistry()
	hub := ws.NewHub(registry, appMetrics)
	go hub.Run(ctx)

	var limiter *ratelimit.RateLimiter

	if cfg.RateLimitEnabled {
		limiter = ratelimit.NewRateLimiter(lokiLogger.Logger.Logger, appMetrics, tokens)
	}

	router := httpadapter.SetupRouter(httpadapter.RouterConfig{
		AuthHandler:         handler.NewAuthHandler(authSvc, lokiLogger),
		ProjectHandler:      handler.NewProjectHandler(projectSvc, lokiLogger, appMetrics),
		TaskHandler:         handler.NewTaskHandler(taskSvc, lokiLogger, appMetrics),
		ToDoHandler:         handler.NewToDoHandler(todoSvc, lokiLogger),
		FocusSessionHandler: handler.NewFocusSessionHandler(focusSvc, lokiLogger, appMetrics),
		Hub:                 hub,
		Tokens:              tokens,
		Logger:              lokiLogger,
		Metrics:             appMetrics,
		RateLimiter:         limiter,
		Registry:            telemetry.PrometheusRegistry,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		lokiLogger.Logger.Sugar().Infow("Server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"rate_limit_enabled", cfg.RateLimitEnabled,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	lokiLogger.Logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lokiLogger.Logger.Sugar().Errorw("Server shutdown failed", "error", err)
	}

	cancel()
}
