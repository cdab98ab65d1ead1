package service

import (
	"context"
	"encoding/json"
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

// AccountServiceImpl implements ports.AccountService. Registering a
// wallet-owning kind also provisions its wallet; clients additionally get
// their cart.
type AccountServiceImpl struct {
	clients    ports.ClientRepository
	rests      ports.RestaurantRepository
	couriers   ports.CourierRepository
	admins     ports.AdminRepository
	cartRepo   ports.CartRepository
	ratingRepo ports.RatingRepository
	walletSvc  ports.WalletService
	hashSvc    ports.HashService
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(
	clients ports.ClientRepository,
	rests ports.RestaurantRepository,
	couriers ports.CourierRepository,
	admins ports.AdminRepository,
	cartRepo ports.CartRepository,
	ratingRepo ports.RatingRepository,
	walletSvc ports.WalletService,
	hashSvc ports.HashService,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		clients:    clients,
		rests:      rests,
		couriers:   couriers,
		admins:     admins,
		cartRepo:   cartRepo,
		ratingRepo: ratingRepo,
		walletSvc:  walletSvc,
		hashSvc:    hashSvc,
		transactor: transactor,
		log:        log,
	}
}

// --- Clients ---

// RegisterClient creates a client plus its wallet and cart.
func (s *AccountServiceImpl) RegisterClient(ctx context.Context, req ports.RegisterClientRequest) (*domain.Client, error) {
	existing, err := s.clients.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	hash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	now := time.Now().UTC()
	c := &domain.Client{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Location:     req.Location,
		Status:       domain.AccountStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create client: %w", err))
	}

	if _, err := s.walletSvc.CreateWallet(ctx, c.ID, domain.AccountKindClient); err != nil {
		return nil, err
	}

	cart := &domain.Cart{
		ID:        uuid.New(),
		ClientID:  c.ID,
		Items:     []domain.CartItem{},
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create cart: %w", err))
	}

	s.log.Info().Str("client_id", c.ID.String()).Msg("Client registered")
	return c, nil
}

// GetClient fetches one client.
func (s *AccountServiceImpl) GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if c == nil {
		return nil, apperror.ErrNotFound("Client")
	}
	return c, nil
}

// ListClients returns every client.
func (s *AccountServiceImpl) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return clients, nil
}

// UpdateClientProperty updates a single named field.
func (s *AccountServiceImpl) UpdateClientProperty(ctx context.Context, id uuid.UUID, property, value string) (*domain.Client, error) {
	c, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	switch property {
	case "first_name":
		c.FirstName = value
	case "last_name":
		c.LastName = value
	case "email":
		c.Email = value
	case "phone":
		c.Phone = value
	case "location":
		c.Location = value
	case "password":
		hash, err := s.hashSvc.Hash(value)
		if err != nil {
			return nil, apperror.InternalError(err)
		}
		c.PasswordHash = hash
	default:
		return nil, apperror.Validation(fmt.Sprintf("Unknown client property %q", property))
	}

	if err := s.clients.Update(ctx, c); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return c, nil
}

// SuspendClient flips the suspension flag.
func (s *AccountServiceImpl) SuspendClient(ctx context.Context, id uuid.UUID, suspended bool) (*domain.Client, error) {
	c, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Suspended = suspended
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return c, nil
}

// DeleteClient removes a client account.
func (s *AccountServiceImpl) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

// --- Restaurants ---

// RegisterRestaurant creates a restaurant plus its wallet.
func (s *AccountServiceImpl) RegisterRestaurant(ctx context.Context, req ports.RegisterRestaurantRequest) (*domain.Restaurant, error) {
	existing, err := s.rests.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	hash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	now := time.Now().UTC()
	r := &domain.Restaurant{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Location:     req.Location,
		Schedule:     req.Schedule,
		Status:       domain.AccountStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.rests.Create(ctx, r); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create restaurant: %w", err))
	}

	if _, err := s.walletSvc.CreateWallet(ctx, r.ID, domain.AccountKindRestaurant); err != nil {
		return nil, err
	}

	s.log.Info().Str("restaurant_id", r.ID.String()).Msg("Restaurant registered")
	return r, nil
}

// GetRestaurant fetches one restaurant.
func (s *AccountServiceImpl) GetRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	r, err := s.rests.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if r == nil {
		return nil, apperror.ErrNotFound("Restaurant")
	}
	return r, nil
}

// ListRestaurants returns every restaurant.
func (s *AccountServiceImpl) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rests, err := s.rests.List(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return rests, nil
}

// UpdateRestaurantProperty updates a single named field. Schedules arrive as
// a JSON document in value.
func (s *AccountServiceImpl) UpdateRestaurantProperty(ctx context.Context, id uuid.UUID, property, value string) (*domain.Restaurant, error) {
	r, err := s.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}

	switch property {
	case "name":
		r.Name = value
	case "description":
		r.Description = value
	case "email":
		r.Email = value
	case "phone":
		r.Phone = value
	case "location":
		r.Location = value
	case "schedule":
		var schedule []domain.WorkInterval
		if err := json.Unmarshal([]byte(value), &schedule); err != nil {
			return nil, apperror.Validation("Schedule must be a JSON array of work intervals")
		}
		r.Schedule = schedule
	case "password":
		hash, err := s.hashSvc.Hash(value)
		if err != nil {
			return nil, apperror.InternalError(err)
		}
		r.PasswordHash = hash
	default:
		return nil, apperror.Validation(fmt.Sprintf("Unknown restaurant property %q", property))
	}

	if err := s.rests.Update(ctx, r); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return r, nil
}

// SetRestaurantLogo stores a freshly uploaded logo URL.
func (s *AccountServiceImpl) SetRestaurantLogo(ctx context.Context, id uuid.UUID, logoURL string) (*domain.Restaurant, error) {
	r, err := s.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	r.LogoURL = logoURL
	if err := s.rests.Update(ctx, r); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return r, nil
}

// SuspendRestaurant flips the suspension flag.
func (s *AccountServiceImpl) SuspendRestaurant(ctx context.Context, id uuid.UUID, suspended bool) (*domain.Restaurant, error) {
	r, err := s.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Suspended = suspended
	if err := s.rests.Update(ctx, r); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return r, nil
}

// DeleteRestaurant removes a restaurant account.
func (s *AccountServiceImpl) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRestaurant(ctx, id); err != nil {
		return err
	}
	if err := s.rests.Delete(ctx, id); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

// RateRestaurant appends a score and recomputes the aggregate from the full
// score list, all inside one transaction.
func (s *AccountServiceImpl) RateRestaurant(ctx context.Context, id uuid.UUID, score int) (*domain.Restaurant, error) {
	r, err := s.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := appendAndRecompute(ctx, s.transactor, s.ratingRepo, domain.RatedEntityRestaurant, id, score,
		func(ctx context.Context, tx pgx.Tx, summary domain.RatingSummary) error {
			return s.rests.UpdateRating(ctx, tx, id, summary)
		})
	if err != nil {
		return nil, err
	}

	r.Rating = *rating
	return r, nil
}

// --- Couriers ---

// RegisterCourier creates a courier plus its wallet.
func (s *AccountServiceImpl) RegisterCourier(ctx context.Context, req ports.RegisterCourierRequest) (*domain.Courier, error) {
	existing, err := s.couriers.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	hash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	now := time.Now().UTC()
	c := &domain.Courier{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Vehicle:      req.Vehicle,
		Location:     req.Location,
		Status:       domain.AccountStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.couriers.Create(ctx, c); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create courier: %w", err))
	}

	if _, err := s.walletSvc.CreateWallet(ctx, c.ID, domain.AccountKindCourier); err != nil {
		return nil, err
	}

	s.log.Info().Str("courier_id", c.ID.String()).Msg("Courier registered")
	return c, nil
}

// GetCourier fetches one courier.
func (s *AccountServiceImpl) GetCourier(ctx context.Context, id uuid.UUID) (*domain.Courier, error) {
	c, err := s.couriers.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if c == nil {
		return nil, apperror.ErrNotFound("Courier")
	}
	return c, nil
}

// ListCouriers returns every courier.
func (s *AccountServiceImpl) ListCouriers(ctx context.Context) ([]domain.Courier, error) {
	couriers, err := s.couriers.List(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return couriers, nil
}

// UpdateCourierProperty updates a single named field.
func (s *AccountServiceImpl) UpdateCourierProperty(ctx context.Context, id uuid.UUID, property, value string) (*domain.Courier, error) {
	c, err := s.GetCourier(ctx, id)
	if err != nil {
		return nil, err
	}

	switch property {
	case "first_name":
		c.FirstName = value
	case "last_name":
		c.LastName = value
	case "email":
		c.Email = value
	case "phone":
		c.Phone = value
	case "vehicle":
		c.Vehicle = value
	case "location":
		c.Location = value
	case "password":
		hash, err := s.hashSvc.Hash(value)
		if err != nil {
			return nil, apperror.InternalError(err)
		}
		c.PasswordHash = hash
	default:
		return nil, apperror.Validation(fmt.Sprintf("Unknown courier property %q", property))
	}

	if err := s.couriers.Update(ctx, c); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return c, nil
}

// SuspendCourier flips the suspension flag.
func (s *AccountServiceImpl) SuspendCourier(ctx context.Context, id uuid.UUID, suspended bool) (*domain.Courier, error) {
	c, err := s.GetCourier(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Suspended = suspended
	if err := s.couriers.Update(ctx, c); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return c, nil
}

// DeleteCourier removes a courier account.
func (s *AccountServiceImpl) DeleteCourier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCourier(ctx, id); err != nil {
		return err
	}
	if err := s.couriers.Delete(ctx, id); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

// --- Admins ---

// RegisterAdmin creates an admin account. Admins hold no wallet or cart.
func (s *AccountServiceImpl) RegisterAdmin(ctx context.Context, req ports.RegisterAdminRequest) (*domain.Admin, error) {
	existing, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	hash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	now := time.Now().UTC()
	a := &domain.Admin{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.admins.Create(ctx, a); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create admin: %w", err))
	}

	s.log.Info().Str("admin_id", a.ID.String()).Msg("Admin registered")
	return a, nil
}

// ListAdmins returns every admin.
func (s *AccountServiceImpl) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return admins, nil
}

// DeleteAdmin removes an admin account.
func (s *AccountServiceImpl) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	a, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if a == nil {
		return apperror.ErrNotFound("Admin")
	}
	if err := s.admins.Delete(ctx, id); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

// RateCourier appends a score and recomputes the aggregate from the full
// score list, all inside one transaction.
func (s *AccountServiceImpl) RateCourier(ctx context.Context, id uuid.UUID, score int) (*domain.Courier, error) {
	c, err := s.GetCourier(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := appendAndRecompute(ctx, s.transactor, s.ratingRepo, domain.RatedEntityCourier, id, score,
		func(ctx context.Context, tx pgx.Tx, summary domain.RatingSummary) error {
			return s.couriers.UpdateRating(ctx, tx, id, summary)
		})
	if err != nil {
		return nil, err
	}

	c.Rating = *rating
	return c, nil
}
