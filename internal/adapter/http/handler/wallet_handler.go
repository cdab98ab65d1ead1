package handler

import (
	"context"

	"github.com/williamscesar21/RikoApi/internal/adapter/http/dto"
	"github.com/williamscesar21/RikoApi/internal/core/domain"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/pkg/apperror"
	"github.com/williamscesar21/RikoApi/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletHandler handles wallet and transaction endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// ListWallets handles GET /wallets.
func (h *WalletHandler) ListWallets(c *gin.Context) {
	wallets, err := h.walletSvc.ListWallets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallets)
}

// GetWalletByOwner handles GET /wallet/:user/:userType.
func (h *WalletHandler) GetWalletByOwner(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid owner id"))
		return
	}
	kind, ok := domain.ParseAccountKind(c.Param("userType"))
	if !ok {
		response.Error(c, apperror.ErrInvalidOwnerKind())
		return
	}

	wallets, err := h.walletSvc.GetWalletsByOwner(c.Request.Context(), ownerID, kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallets)
}

// CreateWallet handles POST /wallet.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	ownerID, err := uuid.Parse(req.User)
	if err != nil {
		response.Error(c, apperror.Validation("invalid owner id"))
		return
	}
	kind, ok := domain.ParseAccountKind(req.UserType)
	if !ok {
		response.Error(c, apperror.ErrInvalidOwnerKind())
		return
	}

	wallet, err := h.walletSvc.CreateWallet(c.Request.Context(), ownerID, kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, wallet)
}

// AddFunds handles POST /wallet-add-funds.
func (h *WalletHandler) AddFunds(c *gin.Context) {
	var req dto.WalletAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	wallet, err := h.walletSvc.AddFunds(c.Request.Context(), walletID, req.Amount, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// WithdrawFunds handles POST /wallet-withdraw.
func (h *WalletHandler) WithdrawFunds(c *gin.Context) {
	var req dto.WalletAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	wallet, err := h.walletSvc.WithdrawFunds(c.Request.Context(), walletID, req.Amount, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// TransferFunds handles POST /wallet-transfer.
func (h *WalletHandler) TransferFunds(c *gin.Context) {
	h.moveFunds(c, h.walletSvc.TransferFunds)
}

// ChargeUser handles POST /wallet-charge.
func (h *WalletHandler) ChargeUser(c *gin.Context) {
	h.moveFunds(c, h.walletSvc.ChargeUser)
}

func (h *WalletHandler) moveFunds(c *gin.Context, move func(ctx context.Context, from, to uuid.UUID, amount decimal.Decimal, description string) (*ports.TransferResult, error)) {
	var req dto.WalletMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	fromID, err := uuid.Parse(req.FromWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid source wallet id"))
		return
	}
	toID, err := uuid.Parse(req.ToWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid destination wallet id"))
		return
	}

	result, err := move(c.Request.Context(), fromID, toID, req.Amount, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GetTransactions handles GET /wallet-transactions/:walletId.
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletId"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	txns, err := h.walletSvc.GetTransactions(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, txns)
}
