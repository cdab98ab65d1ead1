package service

import (
	"context"
	"fmt"
	"time"

	"github.com/williamscesar21/RikoApi/internal/core/domain"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const priceCacheTTL = 5 * time.Minute

// CartServiceImpl implements ports.CartService. Totals are recomputed from
// live product prices after every mutation, through a Redis read-through
// cache with a database fallback.
type CartServiceImpl struct {
	carts      ports.CartRepository
	products   ports.ProductRepository
	priceCache ports.PriceCache
	log        zerolog.Logger
}

// NewCartService creates a new CartServiceImpl.
func NewCartService(
	carts ports.CartRepository,
	products ports.ProductRepository,
	priceCache ports.PriceCache,
	log zerolog.Logger,
) *CartServiceImpl {
	return &CartServiceImpl{
		carts:      carts,
		products:   products,
		priceCache: priceCache,
		log:        log,
	}
}

// GetCart fetches a client's cart.
func (s *CartServiceImpl) GetCart(ctx context.Context, clientID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.carts.GetByClient(ctx, clientID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if cart == nil {
		return nil, apperror.ErrNotFound("Cart")
	}
	return cart, nil
}

// AddItem adds quantity of a product, merging into an existing line.
func (s *CartServiceImpl) AddItem(ctx context.Context, clientID, productID uuid.UUID, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, apperror.Validation("Quantity must be positive")
	}
	cart, err := s.GetCart(ctx, clientID)
	if err != nil {
		return nil, err
	}

	// The product has to be sellable before it may enter the cart.
	if _, err := s.sellablePrice(ctx, productID); err != nil {
		return nil, err
	}

	if i := cart.FindItem(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: productID, Quantity: quantity})
	}

	return s.saveRecomputed(ctx, cart)
}

// RemoveItem drops a product line entirely.
func (s *CartServiceImpl) RemoveItem(ctx context.Context, clientID, productID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if cart.FindItem(productID) < 0 {
		return nil, apperror.ErrNotFound("Cart item")
	}
	cart.RemoveItem(productID)
	return s.saveRecomputed(ctx, cart)
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, clientID, productID uuid.UUID, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, apperror.Validation("Quantity must not be negative")
	}
	cart, err := s.GetCart(ctx, clientID)
	if err != nil {
		return nil, err
	}
	i := cart.FindItem(productID)
	if i < 0 {
		return nil, apperror.ErrNotFound("Cart item")
	}
	if quantity == 0 {
		cart.RemoveItem(productID)
	} else {
		cart.Items[i].Quantity = quantity
	}
	return s.saveRecomputed(ctx, cart)
}

// EmptyCart drops every line and zeroes the total.
func (s *CartServiceImpl) EmptyCart(ctx context.Context, clientID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, clientID)
	if err != nil {
		return nil, err
	}
	cart.Items = []domain.CartItem{}
	return s.saveRecomputed(ctx, cart)
}

// saveRecomputed recomputes the total from live prices and persists the cart.
func (s *CartServiceImpl) saveRecomputed(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	total := decimal.Zero
	for _, item := range cart.Items {
		price, err := s.sellablePrice(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	cart.Total = total

	if err := s.carts.Update(ctx, cart); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update cart: %w", err))
	}
	return cart, nil
}

// sellablePrice resolves a product's current price, cache first. A cache miss
// falls back to the product store and refills the cache; a cache error only
// logs, it never fails the recompute.
func (s *CartServiceImpl) sellablePrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	price, ok, err := s.priceCache.Get(ctx, productID)
	if err != nil {
		s.log.Warn().Err(err).Str("product_id", productID.String()).Msg("Price cache read failed, falling back to store")
	}
	if ok {
		return price, nil
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, apperror.ErrDatabaseError(err)
	}
	if p == nil || !p.Sellable() {
		return decimal.Zero, apperror.ErrInvalidProduct(productID.String())
	}

	if err := s.priceCache.Set(ctx, productID, p.Price, priceCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("product_id", productID.String()).Msg("Price cache write failed")
	}
	return p.Price, nil
}
