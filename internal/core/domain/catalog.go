package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus marks menu availability.
type ProductStatus string

const (
	ProductStatusAvailable   ProductStatus = "AVAILABLE"
	ProductStatusUnavailable ProductStatus = "UNAVAILABLE"
)

// ParseProductStatus maps external input onto a known status.
func ParseProductStatus(s string) (ProductStatus, bool) {
	switch ProductStatus(s) {
	case ProductStatusAvailable, ProductStatusUnavailable:
		return ProductStatus(s), true
	}
	return "", false
}

// MaxProductTags caps how many tags a product may carry.
const MaxProductTags = 3

// RatingSummary aggregates a flat list of 1..5 scores. The average is
// recomputed explicitly whenever a score is appended, never derived lazily.
type RatingSummary struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

// RatedEntity names the collections that accept ratings.
type RatedEntity string

const (
	RatedEntityProduct    RatedEntity = "PRODUCT"
	RatedEntityCombo      RatedEntity = "COMBO"
	RatedEntityRestaurant RatedEntity = "RESTAURANT"
	RatedEntityCourier    RatedEntity = "COURIER"
)

// ValidScore reports whether a rating score is in the accepted 1..5 range.
func ValidScore(score int) bool {
	return score >= 1 && score <= 5
}

// Product is a single sellable menu item owned by a restaurant.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images"`
	Description  string          `json:"description"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	Tags         []string        `json:"tags"`
	Status       ProductStatus   `json:"status"`
	Suspended    bool            `json:"suspended"`
	Rating       RatingSummary   `json:"rating"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Sellable reports whether the product can currently be priced into a cart.
func (p *Product) Sellable() bool {
	return p.Status == ProductStatusAvailable && !p.Suspended
}

// ComboItem is one (product, quantity) component of a combo.
type ComboItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Combo bundles several products under a single price.
type Combo struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Items        []ComboItem     `json:"items"`
	Images       []string        `json:"images"`
	Description  string          `json:"description"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	Rating       RatingSummary   `json:"rating"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
