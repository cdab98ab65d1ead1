package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductRepo implements ports.ProductRepository.
type ProductRepo struct {
	pool Pool
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(pool Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

const productColumns = `id, name, price::text, images, description, restaurant_id, tags,
		status, suspended, rating_count, rating_average, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	p := &domain.Product{}
	var price, status string
	err := row.Scan(&p.ID, &p.Name, &price, &p.Images, &p.Description,
		&p.RestaurantID, &p.Tags, &status, &p.Suspended,
		&p.Rating.Count, &p.Rating.Average, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse product price: %w", err)
	}
	p.Status = domain.ProductStatus(status)
	return p, nil
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (id, name, price, images, description, restaurant_id, tags,
		status, suspended, rating_count, rating_average, created_at, updated_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Price.String(), p.Images, p.Description, p.RestaurantID, p.Tags,
		string(p.Status), p.Suspended, p.Rating.Count, p.Rating.Average,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by its UUID.
func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return p, nil
}

// List fetches every product.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListByRestaurant fetches every product on one restaurant's menu.
func (r *ProductRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE restaurant_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list products by restaurant: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// Update persists all mutable product fields except the rating aggregate.
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name = $1, price = $2::numeric, images = $3, description = $4,
		tags = $5, status = $6, suspended = $7, updated_at = NOW()
		WHERE id = $8`

	tag, err := r.pool.Exec(ctx, query,
		p.Name, p.Price.String(), p.Images, p.Description,
		p.Tags, string(p.Status), p.Suspended, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %s", p.ID)
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %s", id)
	}
	return nil
}

// UpdateRating persists a recomputed aggregate inside a transaction.
func (r *ProductRepo) UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error {
	query := `UPDATE products SET rating_count = $1, rating_average = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, rating.Count, rating.Average, id)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %s", id)
	}
	return nil
}
