package messaging

import (
	"context"

	"storefront/internal/logger"

	"go.uber.org/zap"
)

// NopPublisher drops messages. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishNewOrder(ctx context.Context, msg OrderCreatedMessage) error {
	logger.FromCtx(ctx).Info("queue disabled, order message dropped", zap.String("order_id", msg.OrderID))
	return nil
}
