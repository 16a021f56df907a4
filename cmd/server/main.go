package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/alexivanou/weather-history-api/internal/api"
	"github.com/alexivanou/weather-history-api/internal/config"
	"github.com/alexivanou/weather-history-api/internal/database"
	"github.com/alexivanou/weather-history-api/internal/geocode"
	"github.com/alexivanou/weather-history-api/internal/repository"
	"github.com/alexivanou/weather-history-api/internal/service"
	"github.com/alexivanou/weather-history-api/internal/stats"
	"github.com/alexivanou/weather-history-api/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var records repository.RecordRepository
	if cfg.Store.IsMemory() {
		db, err := database.ConnectSQLite(ctx, cfg.Store.SQLiteDSN)
		if err != nil {
			logger.Fatal("Failed to connect to sqlite", zap.Error(err))
		}
		defer db.Close()
		records = repository.NewSQLiteRepository(db)
	} else {
		client, err := database.ConnectMongo(ctx, cfg.Store)
		if err != nil {
			logger.Fatal("Failed to connect to mongodb", zap.Error(err))
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		records = repository.NewMongoRepository(client.Database(cfg.Store.Database))
	}
	logger.Info("Connected to record store", zap.String("type", string(cfg.Store.Type)))

	resolver := geocode.NewResolver(cfg.Upstream, logger)
	weatherClient := weather.NewClient(cfg.Upstream, logger)

	svc := service.NewService(resolver, weatherClient, records, logger)
	metrics := stats.NewMetrics()
	router := api.NewRouter(svc, logger, metrics, cfg.GoogleMapsAPIKey)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
