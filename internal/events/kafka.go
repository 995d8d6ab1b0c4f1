package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// KafkaPublisher writes statement events to a Kafka topic.
// Messages are keyed by user id so one user's events stay on one partition, in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates an asynchronous writer; delivery failures are logged
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			Async:                  true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					logrus.WithFields(logrus.Fields{
						"topic":    topic,
						"messages": len(messages),
						"error":    err.Error(),
					}).Error("Statement event delivery failed")
				}
			},
		},
	}
}

// newMessage encodes event as a JSON message keyed by its user id
func newMessage(event StatementCreated) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode statement event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}, nil
}

// Publish enqueues event for delivery
func (p *KafkaPublisher) Publish(ctx context.Context, event StatementCreated) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ Publisher = (*KafkaPublisher)(nil)
