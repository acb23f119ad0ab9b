package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tenant-portal/internal/api"
	"tenant-portal/internal/auth"
	"tenant-portal/internal/config"
	"tenant-portal/internal/consumer"
	"tenant-portal/internal/logger"
	"tenant-portal/internal/messaging"
	"tenant-portal/internal/metrics"
	"tenant-portal/internal/storage"
)

// @title Tenant Portal API
// @version 1.0
// @description Multi-tenant administration backend: tenants, teams, members, files, token usage
// @host localhost:8080
// @BasePath /
// @schemes http

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// Init Metrics
	metrics.Init()

	// Load Configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Get().Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg); err != nil {
		logger.Get().Fatalf("Failed to init logger: %v", err)
	}
	log := logger.Get()
	log.Info("Configuration loaded")

	// Setup token signing
	ttl, err := time.ParseDuration(cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("Invalid auth.token_ttl: %v", err)
	}
	auth.Configure(cfg.Auth.JWTSecret, ttl)

	// Init PostgreSQL
	db, err := storage.NewStorage(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	log.Info("PostgreSQL connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional async usage ingestion
	var rabbit *messaging.RabbitClient
	var usageConsumer *consumer.Consumer
	if cfg.RabbitMQ.URL != "" {
		rabbit, err = messaging.NewRabbitClient(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbit.Close()
		if err := rabbit.DeclareUsageQueue(); err != nil {
			log.Fatalf("Failed to declare usage queue: %v", err)
		}

		usageConsumer, err = consumer.StartConsumer(rabbit.GetConnection(), db, cfg.Workers)
		if err != nil {
			log.Fatalf("Failed to start usage consumer: %v", err)
		}
		log.Info("RabbitMQ connected, usage ingestion enabled")

		// Background loop refreshing the queue depth gauge
		go func() {
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					rabbit.UpdateQueueDepth()
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Init API
	apiHandler := api.NewAPI(db, cfg)
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: apiHandler.Router(),
	}

	go func() {
		log.Infof("Starting API server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done() // Wait for interrupt signal
	log.Info("Shutdown initiated...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP shutdown error: %v", err)
	}

	if usageConsumer != nil {
		usageConsumer.Stop()
	}

	log.Info("Graceful shutdown complete")
}
