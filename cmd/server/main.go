package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "equishare-storefront/internal/api/grpc"
	httpapi "equishare-storefront/internal/api/http"
	"equishare-storefront/internal/cache"
	"equishare-storefront/internal/config"
	"equishare-storefront/internal/events"
	"equishare-storefront/internal/jobs"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/repository"
	"equishare-storefront/internal/repository/memory"
	"equishare-storefront/internal/repository/postgres"
	"equishare-storefront/internal/scheduler"
	"equishare-storefront/internal/security"
	"equishare-storefront/internal/service"
	"equishare-storefront/internal/session"
)

type repositories struct {
	users   repository.UserRepository
	catalog repository.CatalogRepository
	orders  repository.OrderRepository
}

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EquiShare storefront...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http", cfg.GetServerAddress(), "grpc", cfg.GetGRPCAddress(), "data", cfg.Data.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Repositories
	repos, closeRepos := openRepositories(ctx, cfg)
	defer closeRepos()

	// Initialize catalog cache
	var catalogCache service.CatalogCache
	var jobCache jobs.CacheInvalidator
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		rc := cache.NewCatalogCache(client, "storefront", cfg.CacheTTL())
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("Redis unreachable, continuing without catalog cache", "addr", cfg.Redis.Addr, "error", err)
		} else {
			logger.Info("Catalog cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.CacheTTL())
			catalogCache, jobCache = rc, rc
		}
	}

	// Initialize order event producer
	var publisher service.OrderPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := events.NewOrderProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
		defer producer.Close()
		publisher = producer
		logger.Info("Publishing order events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.OrdersTopic)
	}

	// Initialize notification services
	emailSvc := service.NewEmailService(cfg.Email)
	pushSvc, err := service.NewPushService(ctx, cfg.Push)
	if err != nil {
		logger.Error("Failed to initialize push notifications", "error", err)
		log.Fatalf("Failed to initialize push notifications: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	// Initialize Services
	authSvc := service.NewAuthService(repos.users, tokenManager)
	userSvc := service.NewUserService(repos.users)
	catalogSvc := service.NewCatalogService(repos.catalog, catalogCache)
	orderSvc := service.NewOrderService(repos.orders, repos.users, publisher, emailSvc, pushSvc)

	// Initialize sessions
	sessions := session.NewManager(catalogSvc, cfg.SessionIdleTimeout())

	// Consume fulfillment events
	if len(cfg.Kafka.Brokers) > 0 {
		consumer := events.NewFulfillmentConsumer(
			cfg.Kafka.Brokers,
			cfg.Kafka.FulfillmentTopic,
			cfg.Kafka.GroupID,
			session.FulfillmentHandler(sessions, orderSvc),
		)
		defer consumer.Close()
		go func() {
			logger.Info("Consuming fulfillment events", "topic", cfg.Kafka.FulfillmentTopic, "group", cfg.Kafka.GroupID)
			if err := consumer.Run(ctx); err != nil {
				logger.Error("Fulfillment consumer stopped", "error", err)
			}
		}()
	}

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(sessions, jobCache, cfg)
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to register scheduled jobs: %v", err)
	}
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Set up gRPC health server
	health := grpcapi.NewHealthServer(catalogSvc)
	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCAddress())
		log.Fatalf("Failed to listen: %v", err)
	}
	go health.Watch(ctx, 30*time.Second)
	go func() {
		logger.Info("gRPC health server listening", "address", cfg.GetGRPCAddress())
		if err := health.Server().Serve(lis); err != nil {
			logger.Error("Failed to serve gRPC", "error", err)
		}
	}()

	// Set up HTTP API
	handler := httpapi.NewHandler(sessions, authSvc, userSvc, catalogSvc, orderSvc, tokenManager)
	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		logger.Info("HTTP API listening", "address", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	health.Shutdown()
	logger.Info("Storefront stopped. Goodbye!")
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, func()) {
	if cfg.Data.Backend == "postgres" {
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Failed to prepare schema: %v", err)
		}
		logger.Info("Database connection established")

		store := postgres.NewStore(db)
		return repositories{store.UserRepository, store.CatalogRepository, store.OrderRepository}, func() { db.Close() }
	}

	logger.Info("Using in-memory repositories with demo data")
	store, err := memory.NewSeededStore()
	if err != nil {
		log.Fatalf("Failed to seed in-memory data: %v", err)
	}
	return repositories{store.UserRepository, store.CatalogRepository, store.OrderRepository}, func() {}
}
