package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/storefront/internal/catalog"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var ErrMalformedEvent = errors.New("malformed catalog event")

// EventHandler processes one decoded catalog event.
type EventHandler func(ctx context.Context, event catalog.Event) error

type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{
		reader: reader,
		logger: logger.With(zap.String("topic", topic), zap.String("group", groupID)),
	}
}

// Consume blocks until ctx is done. A message is committed once handled;
// malformed messages and handler failures are logged and committed too, so
// one bad event cannot stall the group.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("failed to fetch message", zap.Error(err))
			continue
		}

		event, err := DecodeEvent(msg.Value)
		if err != nil {
			c.logger.Warn("skipping message",
				zap.ByteString("key", msg.Key),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		} else if err := handler(ctx, event); err != nil {
			c.logger.Error("failed to handle event",
				zap.String("event_id", event.ID),
				zap.String("type", event.Type),
				zap.Error(err),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("failed to commit offset", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// DecodeEvent parses a message value into a catalog event.
func DecodeEvent(value []byte) (catalog.Event, error) {
	var event catalog.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return catalog.Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if event.ID == "" || event.Type == "" {
		return catalog.Event{}, fmt.Errorf("%w: missing id or type", ErrMalformedEvent)
	}
	return event, nil
}
