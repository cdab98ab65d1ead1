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

// ComboRepo implements ports.ComboRepository. Combo items are stored as a
// JSONB document alongside the scalar columns.
type ComboRepo struct {
	pool Pool
}

// NewComboRepo creates a new ComboRepo.
func NewComboRepo(pool Pool) *ComboRepo {
	return &ComboRepo{pool: pool}
}

const comboColumns = `id, name, price::text, items, images, description, restaurant_id,
		rating_count, rating_average, created_at, updated_at`

func scanCombo(row pgx.Row) (*domain.Combo, error) {
	c := &domain.Combo{}
	var price string
	var items []byte
	err := row.Scan(&c.ID, &c.Name, &price, &items, &c.Images, &c.Description,
		&c.RestaurantID, &c.Rating.Count, &c.Rating.Average, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse combo price: %w", err)
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, fmt.Errorf("decode combo items: %w", err)
	}
	return c, nil
}

// Create inserts a new combo.
func (r *ComboRepo) Create(ctx context.Context, c *domain.Combo) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("encode combo items: %w", err)
	}

	query := `INSERT INTO combos (id, name, price, items, images, description, restaurant_id,
		rating_count, rating_average, created_at, updated_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.pool.Exec(ctx, query,
		c.ID, c.Name, c.Price.String(), items, c.Images, c.Description, c.RestaurantID,
		c.Rating.Count, c.Rating.Average, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert combo: %w", err)
	}
	return nil
}

// GetByID fetches a combo by its UUID.
func (r *ComboRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Combo, error) {
	query := `SELECT ` + comboColumns + ` FROM combos WHERE id = $1`

	c, err := scanCombo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get combo by id: %w", err)
	}
	return c, nil
}

// List fetches every combo.
func (r *ComboRepo) List(ctx context.Context) ([]domain.Combo, error) {
	query := `SELECT ` + comboColumns + ` FROM combos ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list combos: %w", err)
	}
	defer rows.Close()
	return collectCombos(rows)
}

// ListByRestaurant fetches every combo offered by one restaurant.
func (r *ComboRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Combo, error) {
	query := `SELECT ` + comboColumns + ` FROM combos WHERE restaurant_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list combos by restaurant: %w", err)
	}
	defer rows.Close()
	return collectCombos(rows)
}

func collectCombos(rows pgx.Rows) ([]domain.Combo, error) {
	combos := []domain.Combo{}
	for rows.Next() {
		c, err := scanCombo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan combo: %w", err)
		}
		combos = append(combos, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate combos: %w", err)
	}
	return combos, nil
}

// Update persists all mutable combo fields except the rating aggregate.
func (r *ComboRepo) Update(ctx context.Context, c *domain.Combo) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("encode combo items: %w", err)
	}

	query := `UPDATE combos SET name = $1, price = $2::numeric, items = $3, images = $4,
		description = $5, updated_at = NOW()
		WHERE id = $6`

	tag, err := r.pool.Exec(ctx, query,
		c.Name, c.Price.String(), items, c.Images, c.Description, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update combo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("combo not found: %s", c.ID)
	}
	return nil
}

// Delete removes a combo.
func (r *ComboRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM combos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete combo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("combo not found: %s", id)
	}
	return nil
}

// UpdateRating persists a recomputed aggregate inside a transaction.
func (r *ComboRepo) UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error {
	query := `UPDATE combos SET rating_count = $1, rating_average = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, rating.Count, rating.Average, id)
	if err != nil {
		return fmt.Errorf("update combo rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("combo not found: %s", id)
	}
	return nil
}
