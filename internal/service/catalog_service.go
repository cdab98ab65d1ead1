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

// CatalogServiceImpl implements ports.CatalogService. Price edits invalidate
// the Redis price cache so cart recomputes never bill a stale price.
type CatalogServiceImpl struct {
	products   ports.ProductRepository
	combos     ports.ComboRepository
	rests      ports.RestaurantRepository
	ratingRepo ports.RatingRepository
	priceCache ports.PriceCache
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewCatalogService creates a new CatalogServiceImpl.
func NewCatalogService(
	products ports.ProductRepository,
	combos ports.ComboRepository,
	rests ports.RestaurantRepository,
	ratingRepo ports.RatingRepository,
	priceCache ports.PriceCache,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		products:   products,
		combos:     combos,
		rests:      rests,
		ratingRepo: ratingRepo,
		priceCache: priceCache,
		transactor: transactor,
		log:        log,
	}
}

// --- Products ---

// CreateProduct adds a menu item to an existing restaurant.
func (s *CatalogServiceImpl) CreateProduct(ctx context.Context, req ports.CreateProductRequest) (*domain.Product, error) {
	if !req.Price.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if len(req.Tags) > domain.MaxProductTags {
		return nil, apperror.Validation(fmt.Sprintf("At most %d tags allowed", domain.MaxProductTags))
	}
	rest, err := s.rests.GetByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if rest == nil {
		return nil, apperror.ErrNotFound("Restaurant")
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ID:           uuid.New(),
		Name:         req.Name,
		Price:        req.Price,
		Images:       orEmpty(req.Images),
		Description:  req.Description,
		RestaurantID: req.RestaurantID,
		Tags:         orEmpty(req.Tags),
		Status:       domain.ProductStatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create product: %w", err))
	}

	s.log.Info().
		Str("product_id", p.ID.String()).
		Str("restaurant_id", req.RestaurantID.String()).
		Msg("Product created")
	return p, nil
}

// GetProduct fetches one product.
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if p == nil {
		return nil, apperror.ErrNotFound("Product")
	}
	return p, nil
}

// ListProducts returns every product.
func (s *CatalogServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return products, nil
}

// ListProductsByRestaurant returns one restaurant's menu.
func (s *CatalogServiceImpl) ListProductsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error) {
	products, err := s.products.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return products, nil
}

// UpdateProductProperty updates a single named field. A price edit drops the
// cached price.
func (s *CatalogServiceImpl) UpdateProductProperty(ctx context.Context, id uuid.UUID, property, value string) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	invalidatePrice := false
	switch property {
	case "name":
		p.Name = value
	case "description":
		p.Description = value
	case "price":
		price, err := decimal.NewFromString(value)
		if err != nil || !price.IsPositive() {
			return nil, apperror.ErrInvalidAmount()
		}
		p.Price = price
		invalidatePrice = true
	default:
		return nil, apperror.Validation(fmt.Sprintf("Unknown product property %q", property))
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if invalidatePrice {
		s.dropCachedPrice(ctx, id)
	}
	return p, nil
}

// SetProductStatus switches availability. The cached price is dropped so an
// unavailable product cannot be priced from a stale cache entry.
func (s *CatalogServiceImpl) SetProductStatus(ctx context.Context, id uuid.UUID, status domain.ProductStatus) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Status = status
	if err := s.products.Update(ctx, p); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	s.dropCachedPrice(ctx, id)
	return p, nil
}

// SuspendProduct flips the suspension flag and drops the cached price.
func (s *CatalogServiceImpl) SuspendProduct(ctx context.Context, id uuid.UUID, suspended bool) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Suspended = suspended
	if err := s.products.Update(ctx, p); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	s.dropCachedPrice(ctx, id)
	return p, nil
}

func (s *CatalogServiceImpl) dropCachedPrice(ctx context.Context, id uuid.UUID) {
	if err := s.priceCache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("product_id", id.String()).Msg("Price cache invalidation failed")
	}
}

// DeleteProduct removes a product and its cached price.
func (s *CatalogServiceImpl) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	s.dropCachedPrice(ctx, id)
	return nil
}

// RateProduct appends a score and recomputes the aggregate in one transaction.
func (s *CatalogServiceImpl) RateProduct(ctx context.Context, id uuid.UUID, score int) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := appendAndRecompute(ctx, s.transactor, s.ratingRepo, domain.RatedEntityProduct, id, score,
		func(ctx context.Context, tx pgx.Tx, summary domain.RatingSummary) error {
			return s.products.UpdateRating(ctx, tx, id, summary)
		})
	if err != nil {
		return nil, err
	}

	p.Rating = *rating
	return p, nil
}

// AddProductImage appends a stored image URL to the product.
func (s *CatalogServiceImpl) AddProductImage(ctx context.Context, id uuid.UUID, imageURL string) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = append(p.Images, imageURL)
	if err := s.products.Update(ctx, p); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return p, nil
}

// --- Combos ---

// CreateCombo bundles existing products under one price.
func (s *CatalogServiceImpl) CreateCombo(ctx context.Context, req ports.CreateComboRequest) (*domain.Combo, error) {
	if !req.Price.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if len(req.Items) == 0 {
		return nil, apperror.Validation("Combo needs at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperror.Validation("Combo item quantity must be positive")
		}
		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if p == nil {
			return nil, apperror.ErrInvalidProduct(item.ProductID.String())
		}
	}

	now := time.Now().UTC()
	c := &domain.Combo{
		ID:           uuid.New(),
		Name:         req.Name,
		Price:        req.Price,
		Items:        req.Items,
		Images:       orEmpty(req.Images),
		Description:  req.Description,
		RestaurantID: req.RestaurantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.combos.Create(ctx, c); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create combo: %w", err))
	}

	s.log.Info().Str("combo_id", c.ID.String()).Msg("Combo created")
	return c, nil
}

// GetCombo fetches one combo.
func (s *CatalogServiceImpl) GetCombo(ctx context.Context, id uuid.UUID) (*domain.Combo, error) {
	c, err := s.combos.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if c == nil {
		return nil, apperror.ErrNotFound("Combo")
	}
	return c, nil
}

// ListCombos returns every combo.
func (s *CatalogServiceImpl) ListCombos(ctx context.Context) ([]domain.Combo, error) {
	combos, err := s.combos.List(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return combos, nil
}

// DeleteCombo removes a combo.
func (s *CatalogServiceImpl) DeleteCombo(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCombo(ctx, id); err != nil {
		return err
	}
	if err := s.combos.Delete(ctx, id); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

// RateCombo appends a score and recomputes the aggregate in one transaction.
func (s *CatalogServiceImpl) RateCombo(ctx context.Context, id uuid.UUID, score int) (*domain.Combo, error) {
	c, err := s.GetCombo(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := appendAndRecompute(ctx, s.transactor, s.ratingRepo, domain.RatedEntityCombo, id, score,
		func(ctx context.Context, tx pgx.Tx, summary domain.RatingSummary) error {
			return s.combos.UpdateRating(ctx, tx, id, summary)
		})
	if err != nil {
		return nil, err
	}

	c.Rating = *rating
	return c, nil
}

// orEmpty keeps slice columns non-null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
