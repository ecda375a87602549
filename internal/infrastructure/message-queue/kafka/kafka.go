package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/alimikegami/point-of-sales/admin-console/config"
	"github.com/alimikegami/point-of-sales/admin-console/internal/dto"
)

// Publisher writes console audit events to the configured topic.
type Publisher struct {
	writer *kafka.Writer
}

func CreateKafkaPublisher(config *config.Config) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(config.KafkaConfig.BrokerAddress),
			Topic:        config.KafkaConfig.BrokerTopic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
