package ports

import (
	"context"

	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ClientRepository defines persistence operations for client accounts.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RestaurantRepository defines persistence operations for restaurant accounts.
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Restaurant, error)
	List(ctx context.Context) ([]domain.Restaurant, error)
	Update(ctx context.Context, r *domain.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
	// UpdateRating persists a recomputed aggregate inside a transaction,
	// together with the score row that changed it.
	UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error
}

// CourierRepository defines persistence operations for courier accounts.
type CourierRepository interface {
	Create(ctx context.Context, c *domain.Courier) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Courier, error)
	GetByEmail(ctx context.Context, email string) (*domain.Courier, error)
	List(ctx context.Context) ([]domain.Courier, error)
	Update(ctx context.Context, c *domain.Courier) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error
}

// AdminRepository defines persistence operations for admin accounts.
type AdminRepository interface {
	Create(ctx context.Context, a *domain.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, w *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	GetByOwner(ctx context.Context, owner domain.OwnerRef) ([]domain.Wallet, error)
	List(ctx context.Context) ([]domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
}

// TransactionRepository defines persistence for the append-only ledger history.
type TransactionRepository interface {
	// Append writes a ledger entry within the same database transaction that
	// mutates the wallet balance.
	Append(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	// ListByWallet returns entries in insertion order.
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error)
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error
}

// ComboRepository defines persistence operations for combos.
type ComboRepository interface {
	Create(ctx context.Context, c *domain.Combo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Combo, error)
	List(ctx context.Context) ([]domain.Combo, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Combo, error)
	Update(ctx context.Context, c *domain.Combo) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateRating(ctx context.Context, tx pgx.Tx, id uuid.UUID, rating domain.RatingSummary) error
}

// RatingRepository stores the flat list of scores behind every aggregate.
type RatingRepository interface {
	Append(ctx context.Context, tx pgx.Tx, entity domain.RatedEntity, entityID uuid.UUID, score int) error
	ListScores(ctx context.Context, tx pgx.Tx, entity domain.RatedEntity, entityID uuid.UUID) ([]int, error)
}

// CartRepository defines persistence operations for client carts.
type CartRepository interface {
	Create(ctx context.Context, c *domain.Cart) error
	GetByClient(ctx context.Context, clientID uuid.UUID) (*domain.Cart, error)
	Update(ctx context.Context, c *domain.Cart) error
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Order, error)
	ListByCourier(ctx context.Context, courierID uuid.UUID) ([]domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
