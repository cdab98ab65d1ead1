package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RestaurantRepo implements ports.RestaurantRepository. The weekly schedule
// is stored as JSONB; rating aggregates live in two plain columns.
type RestaurantRepo struct {
	pool Pool
}

// NewRestaurantRepo creates a new RestaurantRepo.
func NewRestaurantRepo(pool Pool) *RestaurantRepo {
	return &RestaurantRepo{pool: pool}
}

const restaurantColumns = `id, name, description, email, phone, password_hash, location, logo_url,
		schedule, rating_count, rating_average, suspended, status, created_at, updated_at`

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	rt := &domain.Restaurant{}
	var status string
	var schedule []byte
	err := row.Scan(&rt.ID, &rt.Name, &rt.Description, &rt.Email, &rt.Phone,
		&rt.PasswordHash, &rt.Location, &rt.LogoURL, &schedule,
		&rt.Rating.Count, &rt.Rating.Average, &rt.Suspended, &status,
		&rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rt.Status = domain.AccountStatus(status)
	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &rt.Schedule); err != nil {
			return nil, fmt.Errorf("decode schedule: %w", err)
		}
	}
	return rt, nil
}

// Create inserts a new restaurant.
func (r *RestaurantRepo) Create(ctx context.Context, rt *domain.Restaurant) error {
	schedule, err := json.Marshal(rt.Schedule)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	query := `INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = r.pool.Exec(ctx, query,
		rt.ID, rt.Name, rt.Description, rt.Email, rt.Phone,
		rt.PasswordHash, rt.Location, rt.LogoURL, schedule,
		rt.Rating.Count, rt.Rating.Average, rt.Suspended, string(rt.Status),
		rt.CreatedAt, rt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// GetByID fetches a restaurant by its UUID.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	rt, err := scanRestaurant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant by id: %w", err)
	}
	return rt, nil
}

// GetByEmail fetches a restaurant by email.
func (r *RestaurantRepo) GetByEmail(ctx context.Context, email string) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE email = $1`

	rt, err := scanRestaurant(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant by email: %w", err)
	}
	return rt, nil
}

// List fetches every restaurant.
func (r *RestaurantRepo) List(ctx context.Context) ([]domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		rt, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		restaurants = append(restaurants, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return restaurants, nil
}

// Update persists all mutable restaurant fields except the rating aggregate.
func (r *RestaurantRepo) Update(ctx context.Context, rt *domain.Restaurant) error {
	schedule, err := json.Marshal(rt.Schedule)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	query := `UPDATE restaurants SET name = $1, description = $2, email = $3, phone = $4,
		password_hash = $5, location = $6, logo_url = $7, schedule = $8,
		suspended = $9, status = $10, updated_at = NOW()
		WHERE id = $11`

	tag, err := r.pool.Exec(ctx, query,
		rt.Name, rt.Description, rt.Email, rt.Phone,
		rt.PasswordHash, rt.Location, rt.LogoURL, schedule,
		rt.Suspended, string(rt.Status), rt.ID,
	)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("restaurant not found: %s", rt.ID)
	}
	return nil
}

// Delete removes a restaurant.
func (r *RestaurantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("restaurant not found: %s", id)
	}
	return nil
}

// UpdateRating persists a recomputed aggregate inside a transaction.
func (r *RestaurantRepo) UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error {
	query := `UPDATE restaurants SET rating_count = $1, rating_average = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, rating.Count, rating.Average, id)
	if err != nil {
		return fmt.Errorf("update restaurant rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("restaurant not found: %s", id)
	}
	return nil
}
