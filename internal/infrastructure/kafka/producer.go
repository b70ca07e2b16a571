package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/storefront/internal/catalog"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventTypeHeader carries catalog.Event.Type so consumers can route without
// decoding the body.
const EventTypeHeader = "event-type"

type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	if logger == nil {
		logger = zap.NewNop()
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: writer, logger: logger.With(zap.String("topic", topic))}
}

// Publish writes event keyed by aggregate so every change to one shop or
// product lands on the same partition in order.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	msg, err := encodeMessage(key, event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	p.logger.Debug("event published", zap.String("key", key), zap.ByteString("type", headerValue(msg, EventTypeHeader)))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func encodeMessage(key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	switch e := event.(type) {
	case catalog.Event:
		msg.Headers = append(msg.Headers, kafka.Header{Key: EventTypeHeader, Value: []byte(e.Type)})
		msg.Time = e.OccurredAt
	case *catalog.Event:
		msg.Headers = append(msg.Headers, kafka.Header{Key: EventTypeHeader, Value: []byte(e.Type)})
		msg.Time = e.OccurredAt
	}
	return msg, nil
}

func headerValue(msg kafka.Message, key string) []byte {
	for _, h := range msg.Headers {
		if h.Key == key {
			return h.Value
		}
	}
	return nil
}
