package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("WAL_001", "Insufficient balance in wallet", http.StatusBadRequest),
			expected: "[WAL_001] Insufficient balance in wallet",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_002", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_002] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("VAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Validation", Validation("missing field"), "VAL_001", 400},
		{"InvalidAmount", ErrInvalidAmount(), "VAL_002", 400},
		{"InvalidRating", ErrInvalidRating(), "VAL_003", 400},
		{"InvalidOwnerKind", ErrInvalidOwnerKind(), "VAL_004", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestLedgerErrors(t *testing.T) {
	// Insufficient funds is a client error in this API, not a 402.
	err := ErrInsufficientFunds()
	assert.Equal(t, "WAL_001", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)

	nf := ErrNotFound("Wallet")
	assert.Equal(t, "NF_001", nf.Code)
	assert.Equal(t, http.StatusNotFound, nf.HTTPStatus)
	assert.Contains(t, nf.Message, "Wallet")

	ip := ErrInvalidProduct("abc-123")
	assert.Equal(t, "NF_002", ip.Code)
	assert.Equal(t, http.StatusBadRequest, ip.HTTPStatus)
	assert.Contains(t, ip.Message, "abc-123")
}

func TestAuthErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_001", 401},
		{"EmailExists", ErrEmailExists(), "AUTH_002", 409},
		{"InvalidToken", ErrInvalidToken(), "AUTH_003", 401},
		{"AccountSuspended", ErrAccountSuspended(), "AUTH_004", 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestOrderErrors(t *testing.T) {
	err := ErrInvalidOrderState("DELIVERED", "PENDING")
	assert.Equal(t, "ORD_001", err.Code)
	assert.Equal(t, 400, err.HTTPStatus)
	assert.Contains(t, err.Message, "DELIVERED")

	ns := ErrOrderNotSettleable()
	assert.Equal(t, "ORD_002", ns.Code)
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_002", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))

	sysErr := InternalError(inner)
	assert.Equal(t, "SYS_001", sysErr.Code)

	stErr := ErrStorageFailure(inner)
	assert.Equal(t, "SYS_003", stErr.Code)
	assert.Equal(t, 500, stErr.HTTPStatus)
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "RATE_001", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}
