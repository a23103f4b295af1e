package repository

import (
	"context"

	"SignalForge/internal/domain/models"
	"SignalForge/internal/domain/repository"
	pkgkafka "SignalForge/pkg/kafka"
)

// KafkaSignalPublisher implements SignalPublisher on a Kafka producer.
// Signals are keyed by symbol so per-symbol ordering survives partitioning.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSignalPublisher creates a Kafka-backed signal publisher.
func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) repository.SignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

func (p *KafkaSignalPublisher) Publish(ctx context.Context, s *models.TradeSignal) error {
	return p.producer.Publish(ctx, p.topic, []byte(s.Symbol), s)
}

// PublishMessage sends an arbitrary payload to topic without a partition
// key. It satisfies logger.Publisher for aggregated error-log shipping.
func (p *KafkaSignalPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaSignalPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopSignalPublisher is used when Kafka fan-out is disabled.
type NopSignalPublisher struct{}

func (NopSignalPublisher) Publish(ctx context.Context, s *models.TradeSignal) error { return nil }
func (NopSignalPublisher) Close() error                                             { return nil }
