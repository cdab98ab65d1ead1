package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OrderRepo implements ports.OrderRepository. Purchased lines are frozen into
// a JSONB column at placement time so later price edits never change history.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `id, client_id, restaurant_id, courier_id, status, delivery_address,
		lines, total::text, settled, opened_at, closed_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	o := &domain.Order{}
	var status, total string
	var lines []byte
	err := row.Scan(&o.ID, &o.ClientID, &o.RestaurantID, &o.CourierID, &status,
		&o.DeliveryAddress, &lines, &total, &o.Settled, &o.OpenedAt, &o.ClosedAt)
	if err != nil {
		return nil, err
	}
	o.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse order total: %w", err)
	}
	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return nil, fmt.Errorf("decode order lines: %w", err)
	}
	o.Status = domain.OrderStatus(status)
	return o, nil
}

// Create inserts a new order.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}

	query := `INSERT INTO orders (id, client_id, restaurant_id, courier_id, status, delivery_address,
		lines, total, settled, opened_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10, $11)`

	_, err = r.pool.Exec(ctx, query,
		o.ID, o.ClientID, o.RestaurantID, o.CourierID, string(o.Status), o.DeliveryAddress,
		lines, o.Total.String(), o.Settled, o.OpenedAt, o.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID fetches an order by its UUID.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return o, nil
}

// ListByClient fetches every order placed by one client.
func (r *OrderRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Order, error) {
	return r.listBy(ctx, "client_id", clientID)
}

// ListByRestaurant fetches every order received by one restaurant.
func (r *OrderRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Order, error) {
	return r.listBy(ctx, "restaurant_id", restaurantID)
}

// ListByCourier fetches every order assigned to one courier.
func (r *OrderRepo) ListByCourier(ctx context.Context, courierID uuid.UUID) ([]domain.Order, error) {
	return r.listBy(ctx, "courier_id", courierID)
}

func (r *OrderRepo) listBy(ctx context.Context, column string, id uuid.UUID) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + column + ` = $1 ORDER BY opened_at`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list orders by %s: %w", column, err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// Update persists the order's lifecycle fields. Lines and total are frozen at
// placement and never rewritten.
func (r *OrderRepo) Update(ctx context.Context, o *domain.Order) error {
	query := `UPDATE orders SET courier_id = $1, status = $2, settled = $3, closed_at = $4
		WHERE id = $5`

	tag, err := r.pool.Exec(ctx, query, o.CourierID, string(o.Status), o.Settled, o.ClosedAt, o.ID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order not found: %s", o.ID)
	}
	return nil
}
