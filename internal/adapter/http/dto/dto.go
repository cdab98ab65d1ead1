package dto

import (
	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/shopspring/decimal"
)

// --- Auth ---

// LoginRequest is the request body for client/restaurant/courier login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest is the request body for admin login.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// --- Accounts ---

// RegisterClientRequest is the request body for client registration.
type RegisterClientRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	Location  string `json:"location"`
}

// RegisterRestaurantRequest is the request body for restaurant registration.
type RegisterRestaurantRequest struct {
	Name        string                `json:"name" binding:"required,min=1,max=100"`
	Description string                `json:"description"`
	Email       string                `json:"email" binding:"required,email"`
	Phone       string                `json:"phone" binding:"required"`
	Password    string                `json:"password" binding:"required,min=8,max=128"`
	Location    string                `json:"location"`
	Schedule    []domain.WorkInterval `json:"schedule,omitempty"`
}

// RegisterCourierRequest is the request body for courier registration.
type RegisterCourierRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	Vehicle   string `json:"vehicle"`
	Location  string `json:"location"`
}

// RegisterAdminRequest is the request body for admin registration.
type RegisterAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// UpdatePropertyRequest updates one named field of an account or product.
type UpdatePropertyRequest struct {
	Property string `json:"property" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

// SuspendRequest flips an account's or product's suspension flag.
type SuspendRequest struct {
	Suspended *bool `json:"suspended" binding:"required"`
}

// RateRequest carries one 1..5 score.
type RateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// --- Wallets ---

// CreateWalletRequest is the request body for POST /wallet.
type CreateWalletRequest struct {
	User     string `json:"user" binding:"required,uuid"`
	UserType string `json:"userType" binding:"required"`
}

// WalletAmountRequest is the request body for add-funds and withdraw.
type WalletAmountRequest struct {
	WalletID    string          `json:"walletId" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// WalletMoveRequest is the request body for transfer and charge.
type WalletMoveRequest struct {
	FromWalletID string          `json:"fromWalletId" binding:"required,uuid"`
	ToWalletID   string          `json:"toWalletId" binding:"required,uuid"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description"`
}

// --- Catalog ---

// CreateProductRequest is the request body for adding a menu item.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Description  string          `json:"description"`
	RestaurantID string          `json:"restaurant_id" binding:"required,uuid"`
	Tags         []string        `json:"tags,omitempty"`
	Images       []string        `json:"images,omitempty"`
}

// ComboItemRequest is one (product, quantity) component of a combo.
type ComboItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateComboRequest is the request body for adding a combo.
type CreateComboRequest struct {
	Name         string             `json:"name" binding:"required,min=1,max=100"`
	Price        decimal.Decimal    `json:"price" binding:"required"`
	Description  string             `json:"description"`
	RestaurantID string             `json:"restaurant_id" binding:"required,uuid"`
	Items        []ComboItemRequest `json:"items" binding:"required,min=1,dive"`
	Images       []string           `json:"images,omitempty"`
}

// ProductStatusRequest switches a product's availability.
type ProductStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- Cart ---

// CartItemRequest addresses one cart line. Quantity is required for add and
// update, ignored for remove.
type CartItemRequest struct {
	ClientID  string `json:"client_id" binding:"required,uuid"`
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

// --- Orders ---

// PlaceOrderRequest is the request body for placing an order from a cart.
type PlaceOrderRequest struct {
	ClientID        string `json:"client_id" binding:"required,uuid"`
	RestaurantID    string `json:"restaurant_id" binding:"required,uuid"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
}

// OrderStatusRequest advances an order's lifecycle state.
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignCourierRequest attaches a courier to an order.
type AssignCourierRequest struct {
	CourierID string `json:"courier_id" binding:"required,uuid"`
}
