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

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/config"
	"github.com/farmsight-ag/farmsight/pkg/console"
	"github.com/farmsight-ag/farmsight/pkg/gateway"
	"github.com/farmsight-ag/farmsight/pkg/logging"
	"github.com/farmsight-ag/farmsight/pkg/middleware"
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

	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Console.RequestTimeoutSeconds) * time.Second,
	}
	gw := gateway.New(cfg.Console.BackendBaseURL, httpClient, logger)

	mux := http.NewServeMux()
	console.NewServer(gw, logger).RegisterRoutes(mux)

	var handler http.Handler = mux
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.RequestID(handler)

	addr := net.JoinHostPort(cfg.Console.BindAddr, cfg.Console.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Starting farmsight-console",
			zap.String("addr", addr),
			zap.String("backend", cfg.Console.BackendBaseURL))
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
