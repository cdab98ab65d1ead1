package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ClientRepo implements ports.ClientRepository.
type ClientRepo struct {
	pool Pool
}

// NewClientRepo creates a new ClientRepo.
func NewClientRepo(pool Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

const clientColumns = `id, first_name, last_name, email, phone, password_hash, location, suspended, status, created_at, updated_at`

func scanClient(row pgx.Row) (*domain.Client, error) {
	c := &domain.Client{}
	var status string
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.PasswordHash, &c.Location, &c.Suspended, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = domain.AccountStatus(status)
	return c, nil
}

// Create inserts a new client.
func (r *ClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.PasswordHash, c.Location, c.Suspended, string(c.Status),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID fetches a client by its UUID.
func (r *ClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}
	return c, nil
}

// GetByEmail fetches a client by email.
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`

	c, err := scanClient(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by email: %w", err)
	}
	return c, nil
}

// List fetches every client.
func (r *ClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

// Update persists all mutable client fields.
func (r *ClientRepo) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET first_name = $1, last_name = $2, email = $3, phone = $4,
		password_hash = $5, location = $6, suspended = $7, status = $8, updated_at = NOW()
		WHERE id = $9`

	tag, err := r.pool.Exec(ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone,
		c.PasswordHash, c.Location, c.Suspended, string(c.Status), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client not found: %s", c.ID)
	}
	return nil
}

// Delete removes a client.
func (r *ClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client not found: %s", id)
	}
	return nil
}
