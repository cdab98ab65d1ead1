package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountKind_CanOwnWallet(t *testing.T) {
	tests := []struct {
		kind AccountKind
		want bool
	}{
		{AccountKindClient, true},
		{AccountKindRestaurant, true},
		{AccountKindCourier, true},
		{AccountKindAdmin, false},
		{AccountKind("BOGUS"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.CanOwnWallet())
		})
	}
}

func TestParseAccountKind(t *testing.T) {
	k, ok := ParseAccountKind("CLIENT")
	assert.True(t, ok)
	assert.Equal(t, AccountKindClient, k)

	_, ok = ParseAccountKind("client")
	assert.False(t, ok, "kinds are case-sensitive")

	_, ok = ParseAccountKind("MERCHANT")
	assert.False(t, ok)
}

func TestClient_IsActive(t *testing.T) {
	tests := []struct {
		name      string
		status    AccountStatus
		suspended bool
		want      bool
	}{
		{"active", AccountStatusActive, false, true},
		{"inactive", AccountStatusInactive, false, false},
		{"suspended", AccountStatusActive, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{Status: tt.status, Suspended: tt.suspended}
			assert.Equal(t, tt.want, c.IsActive())
		})
	}
}

func TestTransactionKind_DefaultDescription(t *testing.T) {
	assert.Equal(t, "Funds received", TransactionKindPayment.DefaultDescription())
	assert.Equal(t, "Funds withdrawn", TransactionKindWithdrawal.DefaultDescription())
	assert.Equal(t, "Charge collected", TransactionKindCharge.DefaultDescription())
	assert.Equal(t, "Ledger entry", TransactionKind("OTHER").DefaultDescription())
}

func TestWallet_CanCover(t *testing.T) {
	w := &Wallet{Balance: decimal.NewFromInt(30)}

	assert.True(t, w.CanCover(decimal.NewFromInt(30)))
	assert.True(t, w.CanCover(decimal.NewFromInt(10)))
	assert.False(t, w.CanCover(decimal.NewFromInt(31)))
}

func TestValidScore(t *testing.T) {
	assert.False(t, ValidScore(0))
	assert.True(t, ValidScore(1))
	assert.True(t, ValidScore(5))
	assert.False(t, ValidScore(6))
	assert.False(t, ValidScore(-3))
}

func TestProduct_Sellable(t *testing.T) {
	tests := []struct {
		name      string
		status    ProductStatus
		suspended bool
		want      bool
	}{
		{"available", ProductStatusAvailable, false, true},
		{"unavailable", ProductStatusUnavailable, false, false},
		{"suspended", ProductStatusAvailable, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Status: tt.status, Suspended: tt.suspended}
			assert.Equal(t, tt.want, p.Sellable())
		})
	}
}

func TestCart_FindAndRemoveItem(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	cart := &Cart{Items: []CartItem{
		{ProductID: p1, Quantity: 2},
		{ProductID: p2, Quantity: 1},
	}}

	assert.Equal(t, 0, cart.FindItem(p1))
	assert.Equal(t, 1, cart.FindItem(p2))
	assert.Equal(t, -1, cart.FindItem(uuid.New()))

	cart.RemoveItem(p1)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, -1, cart.FindItem(p1))

	// Removing an absent product is a no-op.
	cart.RemoveItem(uuid.New())
	assert.Len(t, cart.Items, 1)
}

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusDelivering, true},
		{OrderStatusDelivering, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusDelivering, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPreparing, false},
		{OrderStatusDelivered, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestOrder_IsSettleable(t *testing.T) {
	o := &Order{Status: OrderStatusDelivered}
	assert.True(t, o.IsSettleable())

	o.Settled = true
	assert.False(t, o.IsSettleable())

	o = &Order{Status: OrderStatusDelivering}
	assert.False(t, o.IsSettleable())
}
