package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ms-directory/internal/config"
	"ms-directory/internal/database"
	"ms-directory/internal/flash"
	"ms-directory/internal/kafka"
	listing_db "ms-directory/internal/listings/db"
	"ms-directory/internal/listings/listing_api"
	"ms-directory/internal/listings/service"
	"ms-directory/internal/logger"
	"ms-directory/internal/sse"
	"ms-directory/internal/web"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
)

func newLogger(cfg config.LogConfig) *logger.Logger {
	log, err := logger.New(logger.Options{
		Dir:      cfg.Dir,
		Service:  cfg.Service,
		MinLevel: logger.ParseLevel(cfg.Level),
	})
	if err != nil {
		// Without a writable log directory the terminal output still works.
		log = logger.NewLogger()
		log.Warn("LOGGER", fmt.Sprintf("Persisted log disabled: %v", err))
	}
	return log
}

func verifyConnections(ctx context.Context, cfg *config.Config, log *logger.Logger) (*bun.DB, *redis.Client) {
	bunDB, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}

	if cfg.Database.AutoSchema {
		if err := database.CreateSchema(ctx, bunDB); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Schema bootstrap failed: %v", err))
		}
		log.Info("DATABASE", "Schema ensured (venues, artists, shows)")
	}

	if !cfg.Redis.Enabled {
		return bunDB, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("✅ Redis connection successful to %s (DB: %d)", cfg.Redis.Addr, cfg.Redis.DB))
	return bunDB, redisClient
}

// setupPublisher returns the Kafka producer, or a no-op publisher when events
// are switched off.
func setupPublisher(ctx context.Context, cfg config.KafkaConfig, log *logger.Logger) (service.Publisher, func()) {
	if !cfg.Enabled {
		log.Info("KAFKA", "Listing events disabled")
		return kafka.NopPublisher{}, func() {}
	}

	log.Info("KAFKA", fmt.Sprintf("Using Kafka brokers: %s", strings.Join(cfg.Brokers, ",")))
	producer := kafka.NewProducer(cfg.Brokers, cfg.TopicPrefix, log)

	if err := kafka.EnsureTopicsExist(ctx, cfg.Brokers, kafka.Topics(cfg.TopicPrefix), log); err != nil {
		log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
	} else {
		log.Info("KAFKA", "Listing topics ensured successfully")
	}

	return producer, func() {
		if err := producer.Close(); err != nil {
			log.Error("KAFKA", fmt.Sprintf("Failed to close producer: %v", err))
		}
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, ".env file not found, using environment variables")
	}

	cfg := config.Load()
	log := newLogger(cfg.Log)
	defer log.Close()

	log.Info("APP", "Starting Directory Service initialization")
	if err := cfg.Validate(); err != nil {
		log.Fatal("CONFIG", err.Error())
	}

	ctx := context.Background()

	log.Info("APP", "Verifying storage connections")
	bunDB, redisClient := verifyConnections(ctx, cfg, log)
	defer bunDB.Close()

	var store flash.Store
	if redisClient != nil {
		defer redisClient.Close()
		store = flash.NewRedisStore(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.FlashTTL)
		log.Info("FLASH", "Flash messages stored in Redis")
	} else {
		store = flash.NewMemoryStore()
		log.Info("FLASH", "Flash messages stored in memory")
	}

	publisher, closePublisher := setupPublisher(ctx, cfg.Kafka, log)
	defer closePublisher()

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal("WEB", fmt.Sprintf("Failed to parse templates: %v", err))
	}

	// Browsers on /events see the same committed changes as the broker.
	emitter := sse.NewListingEventEmitter()
	listingService := service.NewListingService(&listing_db.DB{Bun: bunDB}, service.Publishers{publisher, emitter}, log)
	handler := listing_api.NewHandler(listingService, renderer, store, log)
	handler.Events = emitter

	log.Info("HTTP", "Setting up router and middleware")
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler.NewRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Directory Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "✅ Directory Service shutdown complete")
	}
}
