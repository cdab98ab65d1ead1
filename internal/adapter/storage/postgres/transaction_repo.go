package postgres

import (
	"context"
	"fmt"

	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepo implements ports.TransactionRepository. The table is
// append-only; rows are never updated or deleted.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Append writes a ledger entry within a database transaction.
func (r *TransactionRepo) Append(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO wallet_transactions
		(id, wallet_id, owner_id, owner_kind, amount, description, kind, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WalletID, t.Owner.ID, string(t.Owner.Kind),
		t.Amount.String(), t.Description, string(t.Kind), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

// ListByWallet returns a wallet's ledger entries in insertion order.
func (r *TransactionRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT id, wallet_id, owner_id, owner_kind, amount::text, description, kind, created_at
		FROM wallet_transactions WHERE wallet_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		var kind, ownerKind, amount string
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Owner.ID, &ownerKind,
			&amount, &t.Description, &kind, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Owner.Kind = domain.AccountKind(ownerKind)
		t.Kind = domain.TransactionKind(kind)
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, nil
}
