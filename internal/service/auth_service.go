package service

import (
	"context"
	"time"

	"github.com/williamscesar21/RikoApi/internal/core/domain"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService. Each account kind logs in
// against its own collection; a successful login issues a role-tagged JWT.
type AuthServiceImpl struct {
	clients  ports.ClientRepository
	rests    ports.RestaurantRepository
	couriers ports.CourierRepository
	admins   ports.AdminRepository
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
	log      zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	clients ports.ClientRepository,
	rests ports.RestaurantRepository,
	couriers ports.CourierRepository,
	admins ports.AdminRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		clients:  clients,
		rests:    rests,
		couriers: couriers,
		admins:   admins,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
		log:      log,
	}
}

// LoginClient authenticates a client by email and password.
func (s *AuthServiceImpl) LoginClient(ctx context.Context, email, password string) (string, time.Time, error) {
	c, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, apperror.ErrDatabaseError(err)
	}
	if c == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}
	return s.issue(c.ID, c.PasswordHash, password, c.IsActive(), domain.AccountKindClient)
}

// LoginRestaurant authenticates a restaurant by email and password.
func (s *AuthServiceImpl) LoginRestaurant(ctx context.Context, email, password string) (string, time.Time, error) {
	r, err := s.rests.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, apperror.ErrDatabaseError(err)
	}
	if r == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}
	return s.issue(r.ID, r.PasswordHash, password, r.IsActive(), domain.AccountKindRestaurant)
}

// LoginCourier authenticates a courier by email and password.
func (s *AuthServiceImpl) LoginCourier(ctx context.Context, email, password string) (string, time.Time, error) {
	c, err := s.couriers.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, apperror.ErrDatabaseError(err)
	}
	if c == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}
	return s.issue(c.ID, c.PasswordHash, password, c.IsActive(), domain.AccountKindCourier)
}

// LoginAdmin authenticates an admin by username and password.
func (s *AuthServiceImpl) LoginAdmin(ctx context.Context, username, password string) (string, time.Time, error) {
	a, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, apperror.ErrDatabaseError(err)
	}
	if a == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}
	return s.issue(a.ID, a.PasswordHash, password, true, domain.AccountKindAdmin)
}

func (s *AuthServiceImpl) issue(accountID uuid.UUID, hash, password string, active bool, role domain.AccountKind) (string, time.Time, error) {
	ok, err := s.hashSvc.Verify(password, hash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}
	if !ok {
		s.log.Warn().Str("account_id", accountID.String()).Str("role", string(role)).Msg("Login failed")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}
	if !active {
		return "", time.Time{}, apperror.ErrAccountSuspended()
	}

	token, expiresAt, err := s.tokenSvc.Generate(accountID, role)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}

	s.log.Info().Str("account_id", accountID.String()).Str("role", string(role)).Msg("Login succeeded")
	return token, expiresAt, nil
}
