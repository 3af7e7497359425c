// Package kafka publishes accepted items to a topic for downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"tradewire/types"
)

// Publisher sends every post-deduplication item to a Kafka topic, keyed by
// item ID so re-runs of the same story land on the same partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// PublisherConfig holds Kafka producer configuration.
type PublisherConfig struct {
	Brokers []string
	Topic   string
}

// NewPublisher creates a synchronous Kafka publisher.
func NewPublisher(config PublisherConfig) (*Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Publisher{producer: producer, topic: config.Topic}, nil
}

// PublishItems sends each item as one JSON message. The first send error
// aborts the batch; already-sent messages are not retracted.
func (p *Publisher) PublishItems(ctx context.Context, items []*types.EnrichedItem) error {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode item %s: %w", item.ID, err)
		}

		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(item.ID),
			Value: sarama.ByteEncoder(payload),
		}
		if _, _, err := p.producer.SendMessage(msg); err != nil {
			return fmt.Errorf("failed to publish item %s: %w", item.ID, err)
		}
	}
	return nil
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
