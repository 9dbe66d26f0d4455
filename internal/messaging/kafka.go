package messaging

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher opens a writer per publish, mirroring AMQPPublisher.
type KafkaPublisher struct {
	brokers []string
	topic   string

	newWriter func(brokers []string, topic string) kafkaWriter
}

func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		brokers: splitBrokers(brokers),
		topic:   topic,
		newWriter: func(brokers []string, topic string) kafkaWriter {
			return &kafka.Writer{
				Addr:                   kafka.TCP(brokers...),
				Topic:                  topic,
				Balancer:               &kafka.Hash{},
				RequiredAcks:           kafka.RequireAll,
				AllowAutoTopicCreation: true,
			}
		},
	}
}

func (p *KafkaPublisher) PublishNewOrder(ctx context.Context, msg OrderCreatedMessage) error {
	body, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPublish, err)
	}

	w := p.newWriter(p.brokers, p.topic)
	defer closeQuietly(ctx, "kafka writer", w.Close)

	err = w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.OrderID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	logger.FromCtx(ctx).Debug("order message published",
		zap.String("topic", p.topic),
		zap.String("order_id", msg.OrderID),
	)
	return nil
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
