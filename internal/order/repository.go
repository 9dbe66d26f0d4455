package order

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, order *Order) error
	GetOrderDetail(ctx context.Context, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, user_id, username, full_name, email, phone, address, city,
	postal_code, delivery_method, payment_method, card_last_four, notes,
	status, total_quantity, total_price, created_at
`

// CreateOrderTx writes the order row and then each item row in one
// transaction. Item ids are filled in from the database.
func (r *repository) CreateOrderTx(ctx context.Context, order *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_id", order.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Insert order
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		order.ID,
		order.UserID,
		order.Username,
		order.FullName,
		order.Email,
		order.Phone,
		order.Address,
		order.City,
		order.PostalCode,
		order.DeliveryMethod,
		order.PaymentMethod,
		order.CardLastFour,
		order.Notes,
		order.Status,
		order.TotalQuantity,
		order.TotalPrice,
		order.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	// 2. Insert items
	for _, item := range order.Items {
		item.OrderID = order.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, product_name,
				quantity, unit_price, subtotal
			) VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`,
			order.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, orderID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// ListByUser returns the user's orders newest first, with items attached.
func (r *repository) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		orders []*Order
		ids    []string
	)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}
	return orders, nil
}

// DeleteOrder removes the items and then the order row. The foreign key
// cascade is never relied on.
func (r *repository) DeleteOrder(ctx context.Context, orderID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return tx.Commit()
}

func (r *repository) itemsFor(ctx context.Context, orderIDs []string) (map[string][]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]*OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			item      OrderItem
			productID sql.NullInt64
		)
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&productID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		); err != nil {
			return nil, err
		}
		if productID.Valid {
			id := productID.Int64
			item.ProductID = &id
		}
		out[item.OrderID] = append(out[item.OrderID], &item)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(s rowScanner) (*Order, error) {
	var (
		o            Order
		userID       sql.NullInt64
		cardLastFour sql.NullString
		notes        sql.NullString
	)
	err := s.Scan(
		&o.ID,
		&userID,
		&o.Username,
		&o.FullName,
		&o.Email,
		&o.Phone,
		&o.Address,
		&o.City,
		&o.PostalCode,
		&o.DeliveryMethod,
		&o.PaymentMethod,
		&cardLastFour,
		&notes,
		&o.Status,
		&o.TotalQuantity,
		&o.TotalPrice,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		id := userID.Int64
		o.UserID = &id
	}
	if cardLastFour.Valid {
		o.CardLastFour = &cardLastFour.String
	}
	if notes.Valid {
		o.Notes = &notes.String
	}
	return &o, nil
}
