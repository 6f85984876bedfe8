package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/config"
	"github.com/farmsight-ag/farmsight/pkg/database"
	"github.com/farmsight-ag/farmsight/pkg/handlers"
	"github.com/farmsight-ag/farmsight/pkg/logging"
	"github.com/farmsight-ag/farmsight/pkg/middleware"
	"github.com/farmsight-ag/farmsight/pkg/repositories"
	"github.com/farmsight-ag/farmsight/pkg/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.Database.URL(), cfg.Database.MaxConnections)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database.URL(), cfg.API.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	farmRepo := repositories.NewFarmRepository(db)
	fieldRepo := repositories.NewFieldRepository(db)
	cycleRepo := repositories.NewCropCycleRepository(db)
	predictionRepo := repositories.NewPredictionRepository(db)
	sensorRepo := repositories.NewSensorReadingRepository(db)

	farmService := services.NewFarmService(farmRepo, fieldRepo, logger)
	fieldService := services.NewFieldService(fieldRepo, farmRepo, cycleRepo, logger)
	cycleService := services.NewCropCycleService(cycleRepo, fieldRepo, logger)
	predictionService := services.NewPredictionService(predictionRepo, fieldRepo, cycleRepo, logger)
	sensorService := services.NewSensorService(sensorRepo, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, db, logger).RegisterRoutes(mux)
	handlers.NewFarmsHandler(farmService, logger).RegisterRoutes(mux)
	handlers.NewFieldsHandler(fieldService, logger).RegisterRoutes(mux)
	handlers.NewCropCyclesHandler(cycleService, logger).RegisterRoutes(mux)
	handlers.NewPredictionsHandler(predictionService, logger).RegisterRoutes(mux)
	handlers.NewSensorDataHandler(sensorService, logger).RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	var handler http.Handler = mux
	if len(cfg.API.CORSAllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: cfg.API.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		}).Handler(handler)
	}
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.RequestID(handler)

	addr := net.JoinHostPort(cfg.API.BindAddr, cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Starting farmsight-api", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
