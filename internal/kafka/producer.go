package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"ms-directory/internal/logger"

	"github.com/segmentio/kafka-go"
)

const (
	KindVenue  = "venue"
	KindArtist = "artist"
	KindShow   = "show"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ListingEvent is published after a listing mutation commits.
type ListingEvent struct {
	Kind       string    `json:"kind"`
	Action     string    `json:"action"`
	ID         int64     `json:"id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// MessageWriter is the part of kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	Writer MessageWriter
	Prefix string
	Logger *logger.Logger
}

func NewProducer(brokers []string, prefix string, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return &Producer{Writer: writer, Prefix: prefix, Logger: log}
}

// Topic names the stream for one kind of listing change.
func Topic(prefix, kind, action string) string {
	return fmt.Sprintf("%s.%s.%s", prefix, kind, action)
}

// Topics lists every listing topic under prefix.
func Topics(prefix string) []string {
	var topics []string
	for _, kind := range []string{KindVenue, KindArtist, KindShow} {
		for _, action := range []string{ActionCreated, ActionUpdated, ActionDeleted} {
			topics = append(topics, Topic(prefix, kind, action))
		}
	}
	return topics
}

// PublishListing streams a listing event keyed by the record id.
func (p *Producer) PublishListing(ctx context.Context, ev ListingEvent) error {
	msgBytes, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	topic := Topic(p.Prefix, ev.Kind, ev.Action)
	if p.Logger != nil {
		p.Logger.LogKafka("PUBLISH", topic, string(msgBytes))
	}

	return p.Writer.WriteMessages(ctx,
		kafka.Message{
			Topic: topic,
			Key:   []byte(strconv.FormatInt(ev.ID, 10)),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

// NopPublisher drops events. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishListing(context.Context, ListingEvent) error { return nil }
