package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind labels a ledger entry.
type TransactionKind string

const (
	TransactionKindPayment    TransactionKind = "PAYMENT"
	TransactionKindWithdrawal TransactionKind = "WITHDRAWAL"
	TransactionKindCharge     TransactionKind = "CHARGE"
)

// DefaultDescription is used when a ledger operation is given no label.
func (k TransactionKind) DefaultDescription() string {
	switch k {
	case TransactionKindPayment:
		return "Funds received"
	case TransactionKindWithdrawal:
		return "Funds withdrawn"
	case TransactionKindCharge:
		return "Charge collected"
	}
	return "Ledger entry"
}

// Wallet holds one account's balance. The balance always equals the sum of
// the wallet's transaction amounts; both are written in the same database
// transaction.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	Owner     OwnerRef        `json:"owner"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CanCover reports whether the balance covers a debit of amount.
func (w *Wallet) CanCover(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// Transaction is an immutable, append-only ledger entry. Amounts are signed:
// credits are positive, debits negative.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	WalletID    uuid.UUID       `json:"wallet_id"`
	Owner       OwnerRef        `json:"owner"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Kind        TransactionKind `json:"kind"`
	CreatedAt   time.Time       `json:"created_at"`
}
