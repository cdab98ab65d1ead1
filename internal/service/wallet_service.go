package service

import (
	"context"
	"fmt"
	"time"

	"github.com/williamscesar21/RikoApi/internal/core/domain"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements ports.WalletService. Every balance mutation
// locks the wallet row, re-reads the balance under the lock and appends the
// matching ledger entry in the same database transaction.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	clients    ports.ClientRepository
	rests      ports.RestaurantRepository
	couriers   ports.CourierRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	clients ports.ClientRepository,
	rests ports.RestaurantRepository,
	couriers ports.CourierRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		clients:    clients,
		rests:      rests,
		couriers:   couriers,
		transactor: transactor,
		log:        log,
	}
}

// CreateWallet provisions a zero-balance wallet for an existing account.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, ownerID uuid.UUID, ownerKind domain.AccountKind) (*domain.Wallet, error) {
	if !ownerKind.CanOwnWallet() {
		return nil, apperror.ErrInvalidOwnerKind()
	}
	if err := s.ownerExists(ctx, ownerID, ownerKind); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	w := &domain.Wallet{
		ID:        uuid.New(),
		Owner:     domain.OwnerRef{Kind: ownerKind, ID: ownerID},
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.walletRepo.Create(ctx, w); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", w.ID.String()).
		Str("owner_kind", string(ownerKind)).
		Str("owner_id", ownerID.String()).
		Msg("Wallet created")

	return w, nil
}

// AddFunds credits a wallet and appends a PAYMENT ledger entry.
func (s *WalletServiceImpl) AddFunds(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, description string) (*domain.Wallet, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	return s.post(ctx, walletID, amount, description, domain.TransactionKindPayment)
}

// WithdrawFunds debits a wallet and appends a WITHDRAWAL ledger entry. The
// debit fails without side effects when the balance cannot cover it.
func (s *WalletServiceImpl) WithdrawFunds(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, description string) (*domain.Wallet, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	return s.post(ctx, walletID, amount.Neg(), description, domain.TransactionKindWithdrawal)
}

// post applies one signed ledger entry under a row lock. amount carries the
// sign: positive credits, negative debits.
func (s *WalletServiceImpl) post(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, description string, kind domain.TransactionKind) (*domain.Wallet, error) {
	if description == "" {
		description = kind.DefaultDescription()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}

	newBalance := wallet.Balance.Add(amount)
	if newBalance.IsNegative() {
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := s.applyEntry(ctx, dbTx, wallet, newBalance, amount, description, kind); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	wallet.Balance = newBalance
	s.log.Info().
		Str("wallet_id", walletID.String()).
		Str("kind", string(kind)).
		Str("amount", amount.String()).
		Str("balance", newBalance.String()).
		Msg("Ledger entry posted")

	return wallet, nil
}

// TransferFunds moves amount between two wallets as a single atomic posting:
// either both the debit and the credit commit, or neither does.
func (s *WalletServiceImpl) TransferFunds(ctx context.Context, fromWalletID, toWalletID uuid.UUID, amount decimal.Decimal, description string) (*ports.TransferResult, error) {
	return s.move(ctx, fromWalletID, toWalletID, amount, description, domain.TransactionKindPayment)
}

// ChargeUser collects a payment from one wallet into another. It is the same
// atomic dual-entry posting as TransferFunds, recorded as a CHARGE.
func (s *WalletServiceImpl) ChargeUser(ctx context.Context, fromWalletID, toWalletID uuid.UUID, amount decimal.Decimal, description string) (*ports.TransferResult, error) {
	return s.move(ctx, fromWalletID, toWalletID, amount, description, domain.TransactionKindCharge)
}

// move posts an atomic dual-entry transfer. The debit side is always recorded
// as a WITHDRAWAL; creditKind labels the credited side (PAYMENT or CHARGE).
func (s *WalletServiceImpl) move(ctx context.Context, fromWalletID, toWalletID uuid.UUID, amount decimal.Decimal, description string, creditKind domain.TransactionKind) (*ports.TransferResult, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if description == "" {
		description = creditKind.DefaultDescription()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock both rows in a fixed order so two opposing transfers cannot
	// deadlock each other. A self-transfer locks its single row once.
	ids := []uuid.UUID{fromWalletID, toWalletID}
	if toWalletID.String() < fromWalletID.String() {
		ids[0], ids[1] = ids[1], ids[0]
	}
	if fromWalletID == toWalletID {
		ids = ids[:1]
	}
	locked := map[uuid.UUID]*domain.Wallet{}
	for _, id := range ids {
		w, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, id)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
		}
		if w == nil {
			return nil, apperror.ErrNotFound("Wallet")
		}
		locked[id] = w
	}
	from, to := locked[fromWalletID], locked[toWalletID]

	if !from.CanCover(amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	fromBalance := from.Balance.Sub(amount)
	toBalance := to.Balance.Add(amount)
	if from == to {
		// Self-transfer nets to zero but still records both ledger entries.
		toBalance = from.Balance
	}

	if err := s.applyEntry(ctx, dbTx, from, fromBalance, amount.Neg(), description, domain.TransactionKindWithdrawal); err != nil {
		return nil, err
	}
	if err := s.applyEntry(ctx, dbTx, to, toBalance, amount, description, creditKind); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	from.Balance = fromBalance
	to.Balance = toBalance
	s.log.Info().
		Str("from_wallet", fromWalletID.String()).
		Str("to_wallet", toWalletID.String()).
		Str("kind", string(creditKind)).
		Str("amount", amount.String()).
		Msg("Dual-entry posting committed")

	return &ports.TransferResult{FromWallet: from, ToWallet: to}, nil
}

// applyEntry writes one wallet's new balance and its ledger row inside dbTx.
func (s *WalletServiceImpl) applyEntry(ctx context.Context, dbTx pgx.Tx, w *domain.Wallet, newBalance, amount decimal.Decimal, description string, kind domain.TransactionKind) error {
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, w.ID, newBalance); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update balance: %w", err))
	}
	entry := &domain.Transaction{
		ID:          uuid.New(),
		WalletID:    w.ID,
		Owner:       w.Owner,
		Amount:      amount,
		Description: description,
		Kind:        kind,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.txRepo.Append(ctx, dbTx, entry); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("append transaction: %w", err))
	}
	return nil
}

// GetTransactions returns a wallet's full ledger history in insertion order.
func (s *WalletServiceImpl) GetTransactions(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}
	txns, err := s.txRepo.ListByWallet(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}

// GetWalletsByOwner resolves all wallets held by one tagged owner reference.
func (s *WalletServiceImpl) GetWalletsByOwner(ctx context.Context, ownerID uuid.UUID, ownerKind domain.AccountKind) ([]domain.Wallet, error) {
	if !ownerKind.CanOwnWallet() {
		return nil, apperror.ErrInvalidOwnerKind()
	}
	wallets, err := s.walletRepo.GetByOwner(ctx, domain.OwnerRef{Kind: ownerKind, ID: ownerID})
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallets by owner: %w", err))
	}
	return wallets, nil
}

// ListWallets returns every wallet on the platform.
func (s *WalletServiceImpl) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.List(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list wallets: %w", err))
	}
	return wallets, nil
}

// ownerExists resolves the tagged reference against its account collection.
func (s *WalletServiceImpl) ownerExists(ctx context.Context, ownerID uuid.UUID, kind domain.AccountKind) error {
	var found bool
	switch kind {
	case domain.AccountKindClient:
		c, err := s.clients.GetByID(ctx, ownerID)
		if err != nil {
			return apperror.ErrDatabaseError(err)
		}
		found = c != nil
	case domain.AccountKindRestaurant:
		r, err := s.rests.GetByID(ctx, ownerID)
		if err != nil {
			return apperror.ErrDatabaseError(err)
		}
		found = r != nil
	case domain.AccountKindCourier:
		c, err := s.couriers.GetByID(ctx, ownerID)
		if err != nil {
			return apperror.ErrDatabaseError(err)
		}
		found = c != nil
	}
	if !found {
		return apperror.ErrNotFound("Account")
	}
	return nil
}
