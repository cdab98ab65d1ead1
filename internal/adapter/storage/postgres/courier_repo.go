package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CourierRepo implements ports.CourierRepository.
type CourierRepo struct {
	pool Pool
}

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(pool Pool) *CourierRepo {
	return &CourierRepo{pool: pool}
}

const courierColumns = `id, first_name, last_name, email, phone, password_hash, vehicle, location,
		rating_count, rating_average, suspended, status, created_at, updated_at`

func scanCourier(row pgx.Row) (*domain.Courier, error) {
	c := &domain.Courier{}
	var status string
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.PasswordHash, &c.Vehicle, &c.Location,
		&c.Rating.Count, &c.Rating.Average, &c.Suspended, &status,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = domain.AccountStatus(status)
	return c, nil
}

// Create inserts a new courier.
func (r *CourierRepo) Create(ctx context.Context, c *domain.Courier) error {
	query := `INSERT INTO couriers (` + courierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.PasswordHash, c.Vehicle, c.Location,
		c.Rating.Count, c.Rating.Average, c.Suspended, string(c.Status),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert courier: %w", err)
	}
	return nil
}

// GetByID fetches a courier by its UUID.
func (r *CourierRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Courier, error) {
	query := `SELECT ` + courierColumns + ` FROM couriers WHERE id = $1`

	c, err := scanCourier(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier by id: %w", err)
	}
	return c, nil
}

// GetByEmail fetches a courier by email.
func (r *CourierRepo) GetByEmail(ctx context.Context, email string) (*domain.Courier, error) {
	query := `SELECT ` + courierColumns + ` FROM couriers WHERE email = $1`

	c, err := scanCourier(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier by email: %w", err)
	}
	return c, nil
}

// List fetches every courier.
func (r *CourierRepo) List(ctx context.Context) ([]domain.Courier, error) {
	query := `SELECT ` + courierColumns + ` FROM couriers ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list couriers: %w", err)
	}
	defer rows.Close()

	couriers := []domain.Courier{}
	for rows.Next() {
		c, err := scanCourier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan courier: %w", err)
		}
		couriers = append(couriers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate couriers: %w", err)
	}
	return couriers, nil
}

// Update persists all mutable courier fields except the rating aggregate.
func (r *CourierRepo) Update(ctx context.Context, c *domain.Courier) error {
	query := `UPDATE couriers SET first_name = $1, last_name = $2, email = $3, phone = $4,
		password_hash = $5, vehicle = $6, location = $7, suspended = $8, status = $9, updated_at = NOW()
		WHERE id = $10`

	tag, err := r.pool.Exec(ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone,
		c.PasswordHash, c.Vehicle, c.Location, c.Suspended, string(c.Status), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update courier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("courier not found: %s", c.ID)
	}
	return nil
}

// Delete removes a courier.
func (r *CourierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM couriers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete courier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("courier not found: %s", id)
	}
	return nil
}

// UpdateRating persists a recomputed aggregate inside a transaction.
func (r *CourierRepo) UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error {
	query := `UPDATE couriers SET rating_count = $1, rating_average = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, rating.Count, rating.Average, id)
	if err != nil {
		return fmt.Errorf("update courier rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("courier not found: %s", id)
	}
	return nil
}
