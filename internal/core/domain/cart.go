package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one (product, quantity) line of a client's cart.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart is the single mutable bag of items a client is assembling. The total
// is recomputed from live product prices after every mutation; it is never
// adjusted incrementally.
type Cart struct {
	ID        uuid.UUID       `json:"id"`
	ClientID  uuid.UUID       `json:"client_id"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FindItem returns the index of the line holding productID, or -1.
func (c *Cart) FindItem(productID uuid.UUID) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// RemoveItem drops the line holding productID, if present.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	if i := c.FindItem(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}
