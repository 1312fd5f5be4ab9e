package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-directory-backend/common"
	"employee-directory-backend/config"
	"employee-directory-backend/employee"
	"employee-directory-backend/metrics"
	"employee-directory-backend/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := common.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	store, err := newStore(ctx, cfg, logger, m)
	if err != nil {
		logger.Fatal("Failed to create employee store", zap.Error(err))
	}

	srv := &http.Server{
		Addr: net.JoinHostPort("", cfg.Port),
		Handler: server.New(employee.Instrument(store, m), logger,
			server.WithMetrics(m, registry),
			server.WithAllowedOrigins(cfg.AllowedOrigins),
		).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("App listening",
			zap.String("address", srv.Addr),
			zap.String("store", cfg.Store),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
}

func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (employee.Store, error) {
	if cfg.Store == config.StoreDynamoDB {
		client, err := common.NewDynamoDBClient(ctx, cfg.DynamoDBEndpoint)
		if err != nil {
			return nil, err
		}
		return employee.NewDynamoStore(client, cfg.TableName,
			employee.WithLogger(logger),
			employee.WithMetrics(m),
		), nil
	}

	matcher := employee.FoldCase
	if cfg.FilterCaseSensitive {
		matcher = employee.ExactCase
	}
	return employee.NewMemoryStore(employee.SeedEmployees(),
		employee.WithLogger(logger),
		employee.WithMatcher(matcher),
	), nil
}
