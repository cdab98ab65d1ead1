package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountKind discriminates the four account collections.
type AccountKind string

const (
	AccountKindClient     AccountKind = "CLIENT"
	AccountKindRestaurant AccountKind = "RESTAURANT"
	AccountKindCourier    AccountKind = "COURIER"
	AccountKindAdmin      AccountKind = "ADMIN"
)

// ParseAccountKind maps external input onto a known kind.
func ParseAccountKind(s string) (AccountKind, bool) {
	switch AccountKind(s) {
	case AccountKindClient, AccountKindRestaurant, AccountKindCourier, AccountKindAdmin:
		return AccountKind(s), true
	}
	return "", false
}

// CanOwnWallet reports whether accounts of this kind carry a wallet.
// Admins operate the platform but hold no funds.
func (k AccountKind) CanOwnWallet() bool {
	switch k {
	case AccountKindClient, AccountKindRestaurant, AccountKindCourier:
		return true
	}
	return false
}

// OwnerRef is a tagged reference into one of the account collections.
// The kind selects the collection the id resolves against.
type OwnerRef struct {
	Kind AccountKind `json:"kind"`
	ID   uuid.UUID   `json:"id"`
}

// AccountStatus represents the activation state of an account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Client is a marketplace customer.
type Client struct {
	ID           uuid.UUID     `json:"id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	PasswordHash string        `json:"-"` // Never expose
	Location     string        `json:"location"` // "lat,lng"
	Suspended    bool          `json:"suspended"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// IsActive returns true when the client may transact.
func (c *Client) IsActive() bool {
	return c.Status == AccountStatusActive && !c.Suspended
}

// WorkInterval is one opening window of a restaurant's weekly schedule.
type WorkInterval struct {
	Day   string `json:"day"`
	Open  string `json:"open"`  // "HH:MM"
	Close string `json:"close"` // "HH:MM"
}

// Restaurant is a seller account owning a menu of products and combos.
type Restaurant struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	PasswordHash string         `json:"-"`
	Location     string         `json:"location"`
	LogoURL      string         `json:"logo_url,omitempty"`
	Schedule     []WorkInterval `json:"schedule,omitempty"`
	Rating       RatingSummary  `json:"rating"`
	Suspended    bool           `json:"suspended"`
	Status       AccountStatus  `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (r *Restaurant) IsActive() bool {
	return r.Status == AccountStatusActive && !r.Suspended
}

// Courier delivers orders between restaurants and clients.
type Courier struct {
	ID           uuid.UUID     `json:"id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	PasswordHash string        `json:"-"`
	Vehicle      string        `json:"vehicle,omitempty"`
	Location     string        `json:"location"`
	Rating       RatingSummary `json:"rating"`
	Suspended    bool          `json:"suspended"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (c *Courier) IsActive() bool {
	return c.Status == AccountStatusActive && !c.Suspended
}

// Admin is a platform operator account. Admins hold no wallet.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
