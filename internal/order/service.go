package order

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"storefront/internal/logger"
	"storefront/internal/messaging"
	"storefront/internal/metrics"
	"storefront/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ordersCreated       = metrics.NewCounter("orders_created_total")
	notificationsFailed = metrics.NewCounter("order_notifications_failed_total")
)

type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListUserOrders(ctx context.Context, userID int64) ([]*Order, error)
}

type service struct {
	repo      Repository
	publisher messaging.Publisher
}

func NewService(repo Repository, publisher messaging.Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
	)
	timer := metrics.StartTimer()

	// 1. Validate
	if len(input.Items) == 0 {
		log.Warn("create order rejected: no items")
		return nil, validation.Wrap(ErrEmptyOrder, "items", ErrEmptyOrder.Error())
	}
	input = normalizeInput(input)
	if err := validateInput(input); err != nil {
		log.Warn("create order rejected: invalid input", zap.Error(err))
		return nil, err
	}

	// 2. Order header
	o := &Order{
		ID:             uuid.NewString(),
		UserID:         input.UserID,
		Username:       input.Username,
		FullName:       input.FullName,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		City:           input.City,
		PostalCode:     input.PostalCode,
		DeliveryMethod: input.DeliveryMethod,
		PaymentMethod:  input.PaymentMethod,
		Status:         StatusNew,
		TotalPrice:     decimal.Zero,
		CreatedAt:      time.Now().UTC(),
	}
	if o.Username == "" {
		o.Username = o.FullName
	}
	if input.Notes != "" {
		notes := input.Notes
		o.Notes = &notes
	}

	// 3. Card: keep the last four digits only
	if input.CardNumber != "" {
		last4 := input.CardNumber[len(input.CardNumber)-4:]
		o.CardLastFour = &last4
	}

	// 4. Items snapshot and totals
	o.Items = make([]*OrderItem, 0, len(input.Items))
	for _, li := range input.Items {
		subtotal := li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
		o.Items = append(o.Items, &OrderItem{
			ProductID:   li.ProductID,
			ProductName: li.ProductName,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Subtotal:    subtotal,
		})
		o.TotalQuantity += li.Quantity
		o.TotalPrice = o.TotalPrice.Add(subtotal)
	}

	// 5. Persist
	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Error("failed to persist order", zap.String("order_id", o.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	// 6. Notify, best effort
	ordersCreated.Inc()
	if err := s.publisher.PublishNewOrder(ctx, ToCreatedMessage(o)); err != nil {
		notificationsFailed.Inc()
		log.Warn("order created but notification failed",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int("total_quantity", o.TotalQuantity),
		zap.String("total_price", o.TotalPrice.StringFixed(2)),
		zap.Duration("duration", timer.Duration()),
	)
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrOrderNotFound
	}
	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) ListUserOrders(ctx context.Context, userID int64) ([]*Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list user orders",
			zap.String("layer", "service"),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	return orders, nil
}

func normalizeInput(in CreateOrderInput) CreateOrderInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	in.DeliveryMethod = strings.TrimSpace(in.DeliveryMethod)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.Notes = strings.TrimSpace(in.Notes)

	if UsesCard(in.PaymentMethod) {
		in.CardNumber = stripSpaces(in.CardNumber)
	} else {
		in.CardNumber = ""
	}
	return in
}

// Validate runs the checks CreateOrder applies, minus the empty-items rule.
// Checkout pages use it to reject a form before the confirm step.
func Validate(in CreateOrderInput) error {
	return validateInput(normalizeInput(in))
}

func validateInput(in CreateOrderInput) error {
	fields := map[string]string{}

	if err := validation.Struct(in); err != nil {
		ve, ok := validation.As(err)
		if !ok {
			return err
		}
		for k, v := range ve.Fields {
			fields[k] = v
		}
	}

	if _, set := fields["paymentMethod"]; !set && !slices.Contains(PaymentMethods, in.PaymentMethod) {
		fields["paymentMethod"] = "must be one of: " + strings.Join(PaymentMethods, ", ")
	}
	if _, set := fields["deliveryMethod"]; !set && !slices.Contains(DeliveryMethods, in.DeliveryMethod) {
		fields["deliveryMethod"] = "must be one of: " + strings.Join(DeliveryMethods, ", ")
	}
	if UsesCard(in.PaymentMethod) && in.CardNumber == "" {
		fields["cardNumber"] = "card number must contain 12-19 digits"
	}

	if len(fields) == 0 {
		return nil
	}
	return &validation.Error{Fields: fields}
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
