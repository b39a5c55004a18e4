package outbox

import (
	"context"
	"log/slog"

	"class-booking/internal/infra/record"
	"class-booking/internal/pkg/config"
	"class-booking/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const headerEventType = "event-type"

// KafkaPublisher writes events keyed by class id, so every event of one class
// lands on the same partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.KafkaConfig) (*KafkaPublisher, error) {
	if !cfg.Enabled() {
		return nil, errs.New("at least one kafka broker is required")
	}
	if cfg.Topic == "" {
		return nil, errs.New("kafka topic cannot be empty")
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Logger:       kafka.LoggerFunc(func(string, ...any) {}),
			ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
				slog.Error("kafka writer error", "message", msg, "args", args)
			}),
		},
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, events []record.Event) error {
	if len(events) == 0 {
		return nil
	}
	return p.writer.WriteMessages(ctx, toMessages(events)...)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toMessages(events []record.Event) []kafka.Message {
	msgs := make([]kafka.Message, len(events))
	for i, e := range events {
		msgs[i] = kafka.Message{
			Key:   []byte(e.ClassID.String()),
			Value: e.Payload,
			Time:  e.OccurredAt,
			Headers: []kafka.Header{
				{Key: headerEventType, Value: []byte(e.Type)},
				{Key: "event-id", Value: []byte(e.ID.String())},
			},
		}
	}
	return msgs
}
