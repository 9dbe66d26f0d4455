package messaging

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/config"
)

var (
	ErrConnect = errors.New("queue connection failed")
	ErrPublish = errors.New("queue publish failed")
)

// Publisher delivers order notifications to a broker. Implementations open
// and release their broker resources inside each call.
type Publisher interface {
	PublishNewOrder(ctx context.Context, msg OrderCreatedMessage) error
}

// NewPublisher picks the implementation named by cfg.QueueDriver.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	switch cfg.QueueDriver {
	case config.QueueDriverAMQP:
		return NewAMQPPublisher(cfg.RabbitMQURL, cfg.QueueNew), nil
	case config.QueueDriverKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.QueueNew), nil
	case config.QueueDriverNone:
		return NopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown queue driver %q", cfg.QueueDriver)
	}
}
