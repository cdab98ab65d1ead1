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

// CartRepo implements ports.CartRepository. Each client has exactly one cart
// row; the item lines live in a JSONB column.
type CartRepo struct {
	pool Pool
}

// NewCartRepo creates a new CartRepo.
func NewCartRepo(pool Pool) *CartRepo {
	return &CartRepo{pool: pool}
}

const cartColumns = `id, client_id, items, total::text, created_at, updated_at`

func scanCart(row pgx.Row) (*domain.Cart, error) {
	c := &domain.Cart{}
	var total string
	var items []byte
	err := row.Scan(&c.ID, &c.ClientID, &items, &total, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse cart total: %w", err)
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	return c, nil
}

// Create inserts a new, typically empty, cart.
func (r *CartRepo) Create(ctx context.Context, c *domain.Cart) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("encode cart items: %w", err)
	}

	query := `INSERT INTO carts (id, client_id, items, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6)`

	_, err = r.pool.Exec(ctx, query, c.ID, c.ClientID, items, c.Total.String(), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

// GetByClient fetches the cart owned by one client.
func (r *CartRepo) GetByClient(ctx context.Context, clientID uuid.UUID) (*domain.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE client_id = $1`

	c, err := scanCart(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart by client: %w", err)
	}
	return c, nil
}

// Update replaces the cart's items and recomputed total.
func (r *CartRepo) Update(ctx context.Context, c *domain.Cart) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("encode cart items: %w", err)
	}

	query := `UPDATE carts SET items = $1, total = $2::numeric, updated_at = NOW() WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, items, c.Total.String(), c.ID)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cart not found: %s", c.ID)
	}
	return nil
}
