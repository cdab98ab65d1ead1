package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a placed order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPreparing  OrderStatus = "PREPARING"
	OrderStatusDelivering OrderStatus = "DELIVERING"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ParseOrderStatus maps external input onto a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusDelivering,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransition reports whether the order may move from s to next.
// Forward progress only; any non-terminal state may be cancelled.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s == OrderStatusDelivered || s == OrderStatusCancelled {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPreparing
	case OrderStatusPreparing:
		return next == OrderStatusDelivering
	case OrderStatusDelivering:
		return next == OrderStatusDelivered
	}
	return false
}

// OrderLine is one purchased (product, quantity) detail.
type OrderLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Order records a placed order's parties, state and total. Settlement moves
// the total from the client's wallet to the restaurant's through the ledger.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	ClientID        uuid.UUID       `json:"client_id"`
	RestaurantID    uuid.UUID       `json:"restaurant_id"`
	CourierID       *uuid.UUID      `json:"courier_id,omitempty"`
	Status          OrderStatus     `json:"status"`
	DeliveryAddress string          `json:"delivery_address"`
	Lines           []OrderLine     `json:"lines"`
	Total           decimal.Decimal `json:"total"`
	Settled         bool            `json:"settled"`
	OpenedAt        time.Time       `json:"opened_at"`
	ClosedAt        *time.Time      `json:"closed_at,omitempty"`
}

// IsSettleable reports whether the order can be charged to the client.
// Only delivered, not-yet-settled orders settle.
func (o *Order) IsSettleable() bool {
	return o.Status == OrderStatusDelivered && !o.Settled
}
