package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/config"
	"github.com/farmsight-ag/farmsight/pkg/database"
	"github.com/farmsight-ag/farmsight/pkg/ingest"
	"github.com/farmsight-ag/farmsight/pkg/logging"
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

	sensorService := services.NewSensorService(repositories.NewSensorReadingRepository(db), logger)

	listener := ingest.NewListener(cfg.MQTT, sensorService, logger)
	if err := listener.Start(); err != nil {
		logger.Fatal("Failed to start ingest listener", zap.Error(err))
	}
	defer listener.Stop()

	// Metrics-only HTTP surface.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MQTT.MetricsAddr, mux); err != nil {
			logger.Warn("Metrics server stopped", zap.Error(err))
		}
	}()

	logger.Info("Ingest listener running",
		zap.String("broker", cfg.MQTT.BrokerURL),
		zap.String("topic_prefix", cfg.MQTT.TopicPrefix))

	<-ctx.Done()
	logger.Info("Shutting down")
}
