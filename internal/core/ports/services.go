package ports

import (
	"context"
	"time"

	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(accountID uuid.UUID, role domain.AccountKind) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	AccountID uuid.UUID
	Role      domain.AccountKind
}

// HashService handles password hashing.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// PriceCache is a read-through cache for product prices, consulted by the
// cart total recompute before falling back to the product store.
type PriceCache interface {
	Get(ctx context.Context, productID uuid.UUID) (decimal.Decimal, bool, error)
	Set(ctx context.Context, productID uuid.UUID, price decimal.Decimal, ttl time.Duration) error
	Invalidate(ctx context.Context, productID uuid.UUID) error
}

// FileStore persists uploaded bytes behind a single narrow interface and
// returns a public URL for the stored object.
type FileStore interface {
	Store(ctx context.Context, name string, contentType string, data []byte) (string, error)
}

// --- Service Ports (Business Logic) ---

// TransferResult carries both sides of a completed two-wallet posting.
type TransferResult struct {
	FromWallet *domain.Wallet `json:"fromWallet"`
	ToWallet   *domain.Wallet `json:"toWallet"`
}

// WalletService is the only sanctioned mutation path for balances.
type WalletService interface {
	CreateWallet(ctx context.Context, ownerID uuid.UUID, ownerKind domain.AccountKind) (*domain.Wallet, error)
	AddFunds(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, description string) (*domain.Wallet, error)
	WithdrawFunds(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, description string) (*domain.Wallet, error)
	TransferFunds(ctx context.Context, fromWalletID, toWalletID uuid.UUID, amount decimal.Decimal, description string) (*TransferResult, error)
	ChargeUser(ctx context.Context, fromWalletID, toWalletID uuid.UUID, amount decimal.Decimal, description string) (*TransferResult, error)
	GetTransactions(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error)
	GetWalletsByOwner(ctx context.Context, ownerID uuid.UUID, ownerKind domain.AccountKind) ([]domain.Wallet, error)
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
}

// RegisterClientRequest holds validated input for client registration.
type RegisterClientRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Location  string
}

// RegisterRestaurantRequest holds validated input for restaurant registration.
type RegisterRestaurantRequest struct {
	Name        string
	Description string
	Email       string
	Phone       string
	Password    string
	Location    string
	Schedule    []domain.WorkInterval
}

// RegisterCourierRequest holds validated input for courier registration.
type RegisterCourierRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Vehicle   string
	Location  string
}

// RegisterAdminRequest holds validated input for admin registration.
type RegisterAdminRequest struct {
	Username string
	Password string
}

// AccountService manages the four account collections. Registration of a
// wallet-owning kind also provisions its wallet (and, for clients, a cart).
type AccountService interface {
	RegisterClient(ctx context.Context, req RegisterClientRequest) (*domain.Client, error)
	RegisterRestaurant(ctx context.Context, req RegisterRestaurantRequest) (*domain.Restaurant, error)
	RegisterCourier(ctx context.Context, req RegisterCourierRequest) (*domain.Courier, error)
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*domain.Admin, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
	DeleteAdmin(ctx context.Context, id uuid.UUID) error

	GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	UpdateClientProperty(ctx context.Context, id uuid.UUID, property, value string) (*domain.Client, error)
	SuspendClient(ctx context.Context, id uuid.UUID, suspended bool) (*domain.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error

	GetRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	UpdateRestaurantProperty(ctx context.Context, id uuid.UUID, property, value string) (*domain.Restaurant, error)
	SetRestaurantLogo(ctx context.Context, id uuid.UUID, logoURL string) (*domain.Restaurant, error)
	SuspendRestaurant(ctx context.Context, id uuid.UUID, suspended bool) (*domain.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error
	RateRestaurant(ctx context.Context, id uuid.UUID, score int) (*domain.Restaurant, error)

	GetCourier(ctx context.Context, id uuid.UUID) (*domain.Courier, error)
	ListCouriers(ctx context.Context) ([]domain.Courier, error)
	UpdateCourierProperty(ctx context.Context, id uuid.UUID, property, value string) (*domain.Courier, error)
	SuspendCourier(ctx context.Context, id uuid.UUID, suspended bool) (*domain.Courier, error)
	DeleteCourier(ctx context.Context, id uuid.UUID) error
	RateCourier(ctx context.Context, id uuid.UUID, score int) (*domain.Courier, error)
}

// AuthService authenticates each account kind and issues JWTs.
type AuthService interface {
	LoginClient(ctx context.Context, email, password string) (string, time.Time, error)
	LoginRestaurant(ctx context.Context, email, password string) (string, time.Time, error)
	LoginCourier(ctx context.Context, email, password string) (string, time.Time, error)
	LoginAdmin(ctx context.Context, username, password string) (string, time.Time, error)
}

// CreateProductRequest holds validated input for adding a menu item.
type CreateProductRequest struct {
	Name         string
	Price        decimal.Decimal
	Description  string
	RestaurantID uuid.UUID
	Tags         []string
	Images       []string
}

// CreateComboRequest holds validated input for adding a combo.
type CreateComboRequest struct {
	Name         string
	Price        decimal.Decimal
	Description  string
	RestaurantID uuid.UUID
	Items        []domain.ComboItem
	Images       []string
}

// CatalogService manages products and combos, including rating aggregation.
type CatalogService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error)
	UpdateProductProperty(ctx context.Context, id uuid.UUID, property, value string) (*domain.Product, error)
	SetProductStatus(ctx context.Context, id uuid.UUID, status domain.ProductStatus) (*domain.Product, error)
	SuspendProduct(ctx context.Context, id uuid.UUID, suspended bool) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	RateProduct(ctx context.Context, id uuid.UUID, score int) (*domain.Product, error)
	AddProductImage(ctx context.Context, id uuid.UUID, imageURL string) (*domain.Product, error)

	CreateCombo(ctx context.Context, req CreateComboRequest) (*domain.Combo, error)
	GetCombo(ctx context.Context, id uuid.UUID) (*domain.Combo, error)
	ListCombos(ctx context.Context) ([]domain.Combo, error)
	DeleteCombo(ctx context.Context, id uuid.UUID) error
	RateCombo(ctx context.Context, id uuid.UUID, score int) (*domain.Combo, error)
}

// CartService manages the one cart each client owns.
type CartService interface {
	GetCart(ctx context.Context, clientID uuid.UUID) (*domain.Cart, error)
	AddItem(ctx context.Context, clientID, productID uuid.UUID, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, clientID, productID uuid.UUID) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, clientID, productID uuid.UUID, quantity int) (*domain.Cart, error)
	EmptyCart(ctx context.Context, clientID uuid.UUID) (*domain.Cart, error)
}

// PlaceOrderRequest holds validated input for placing an order from a cart.
type PlaceOrderRequest struct {
	ClientID        uuid.UUID
	RestaurantID    uuid.UUID
	DeliveryAddress string
}

// OrderService manages order lifecycle and wallet settlement.
type OrderService interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Order, error)
	ListOrdersByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Order, error)
	ListOrdersByCourier(ctx context.Context, courierID uuid.UUID) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	AssignCourier(ctx context.Context, orderID, courierID uuid.UUID) (*domain.Order, error)
	SettleOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}
