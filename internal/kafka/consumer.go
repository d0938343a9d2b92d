package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ms-directory/internal/logger"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader MessageReader
	logger *logger.Logger
}

// NewConsumer subscribes a consumer group to every listing topic under prefix.
func NewConsumer(brokers []string, prefix, groupID string, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupTopics: Topics(prefix),
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6, // 10MB
	})
	return &Consumer{reader: reader, logger: log}
}

// Start reads events until ctx is cancelled. Undecodable messages are logged
// and skipped.
func (c *Consumer) Start(ctx context.Context, handler func(ListingEvent)) error {
	c.logger.Info("KAFKA", "🔄 Listing event consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("KAFKA", fmt.Sprintf("Error reading message: %v", err))
			return err
		}

		var ev ListingEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.logger.Warn("KAFKA", fmt.Sprintf("Failed to unmarshal message on %s: %v", msg.Topic, err))
			continue
		}

		c.logger.LogKafka("RECEIVE", msg.Topic, fmt.Sprintf("%s %d", ev.Kind, ev.ID))
		handler(ev)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
