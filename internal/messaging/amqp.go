package messaging

import (
	"context"
	"fmt"

	"storefront/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// amqpConn is the part of *amqp.Connection the publisher uses.
type amqpConn interface {
	Channel() (*amqp.Channel, error)
	Close() error
}

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher dials RabbitMQ once per publish and always closes the
// connection before returning. No connection is shared between orders.
type AMQPPublisher struct {
	url   string
	queue string

	dial    func(url string) (amqpConn, error)
	channel func(c amqpConn) (amqpChannel, error)
}

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{
		url:   url,
		queue: queue,
		dial: func(url string) (amqpConn, error) {
			return amqp.Dial(url)
		},
		channel: func(c amqpConn) (amqpChannel, error) {
			return c.Channel()
		},
	}
}

func (p *AMQPPublisher) PublishNewOrder(ctx context.Context, msg OrderCreatedMessage) error {
	body, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPublish, err)
	}

	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}
	defer closeQuietly(ctx, "amqp connection", conn.Close)

	ch, err := p.channel(conn)
	if err != nil {
		return fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}
	defer closeQuietly(ctx, "amqp channel", ch.Close)

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("%w: declare %s: %v", ErrPublish, p.queue, err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.OrderID,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	logger.FromCtx(ctx).Debug("order message published",
		zap.String("queue", p.queue),
		zap.String("order_id", msg.OrderID),
	)
	return nil
}

func closeQuietly(ctx context.Context, what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.FromCtx(ctx).Debug("close "+what, zap.Error(err))
	}
}
