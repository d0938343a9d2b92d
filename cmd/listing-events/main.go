package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ms-directory/internal/config"
	"ms-directory/internal/kafka"
	"ms-directory/internal/logger"

	"github.com/joho/godotenv"
)

// describe renders one event as a log line.
func describe(ev kafka.ListingEvent) string {
	name := ev.Name
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("%s %s id=%d name=%q at %s", ev.Kind, ev.Action, ev.ID, name, ev.OccurredAt.Format("2006-01-02 15:04:05"))
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, ".env file not found, using environment variables")
	}

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("CONFIG", "KAFKA_BROKERS is empty")
	}

	groupID := os.Getenv("KAFKA_GROUP_ID")
	if groupID == "" {
		groupID = cfg.Kafka.TopicPrefix + "-listing-events"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, groupID, log)
	defer consumer.Close()

	log.Info("APP", fmt.Sprintf("Tailing listing events under %s.* as group %s", cfg.Kafka.TopicPrefix, groupID))
	err := consumer.Start(ctx, func(ev kafka.ListingEvent) {
		log.LogListing(ev.Action, ev.Kind, ev.ID, describe(ev))
	})
	if err != nil {
		log.Fatal("KAFKA", fmt.Sprintf("Consumer stopped: %v", err))
	}
	log.Info("APP", "✅ Listing event consumer shutdown complete")
}
