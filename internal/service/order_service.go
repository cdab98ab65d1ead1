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

// OrderServiceImpl implements ports.OrderService. Placing an order freezes
// the cart's lines and prices; settlement charges the frozen total from the
// client's wallet into the restaurant's through the ledger.
type OrderServiceImpl struct {
	orders    ports.OrderRepository
	carts     ports.CartRepository
	products  ports.ProductRepository
	couriers  ports.CourierRepository
	walletSvc ports.WalletService
	cartSvc   ports.CartService
	log       zerolog.Logger
}

// NewOrderService creates a new OrderServiceImpl.
func NewOrderService(
	orders ports.OrderRepository,
	carts ports.CartRepository,
	products ports.ProductRepository,
	couriers ports.CourierRepository,
	walletSvc ports.WalletService,
	cartSvc ports.CartService,
	log zerolog.Logger,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		orders:    orders,
		carts:     carts,
		products:  products,
		couriers:  couriers,
		walletSvc: walletSvc,
		cartSvc:   cartSvc,
		log:       log,
	}
}

// PlaceOrder turns the client's cart into a PENDING order. Lines keep the
// unit price in force at placement, then the cart is emptied.
func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, req ports.PlaceOrderRequest) (*domain.Order, error) {
	if req.DeliveryAddress == "" {
		return nil, apperror.Validation("Delivery address is required")
	}

	cart, err := s.carts.GetByClient(ctx, req.ClientID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if cart == nil {
		return nil, apperror.ErrNotFound("Cart")
	}
	if len(cart.Items) == 0 {
		return nil, apperror.Validation("Cart is empty")
	}

	lines := make([]domain.OrderLine, 0, len(cart.Items))
	total := decimal.Zero
	for _, item := range cart.Items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if p == nil || !p.Sellable() {
			return nil, apperror.ErrInvalidProduct(item.ProductID.String())
		}
		if p.RestaurantID != req.RestaurantID {
			return nil, apperror.Validation(fmt.Sprintf("Product %s belongs to another restaurant", item.ProductID))
		}
		lines = append(lines, domain.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &domain.Order{
		ID:              uuid.New(),
		ClientID:        req.ClientID,
		RestaurantID:    req.RestaurantID,
		Status:          domain.OrderStatusPending,
		DeliveryAddress: req.DeliveryAddress,
		Lines:           lines,
		Total:           total,
		OpenedAt:        time.Now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create order: %w", err))
	}

	if _, err := s.cartSvc.EmptyCart(ctx, req.ClientID); err != nil {
		s.log.Warn().Err(err).Str("client_id", req.ClientID.String()).Msg("Cart not emptied after order placement")
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("client_id", req.ClientID.String()).
		Str("total", total.String()).
		Msg("Order placed")
	return order, nil
}

// GetOrder fetches one order.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if o == nil {
		return nil, apperror.ErrNotFound("Order")
	}
	return o, nil
}

// ListOrdersByClient returns a client's order history.
func (s *OrderServiceImpl) ListOrdersByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.orders.ListByClient(ctx, clientID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return orders, nil
}

// ListOrdersByRestaurant returns a restaurant's received orders.
func (s *OrderServiceImpl) ListOrdersByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.orders.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return orders, nil
}

// ListOrdersByCourier returns a courier's assigned orders.
func (s *OrderServiceImpl) ListOrdersByCourier(ctx context.Context, courierID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.orders.ListByCourier(ctx, courierID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return orders, nil
}

// UpdateOrderStatus advances the lifecycle. Terminal states stamp ClosedAt.
func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(status) {
		return nil, apperror.ErrInvalidOrderState(string(o.Status), string(status))
	}

	o.Status = status
	if status == domain.OrderStatusDelivered || status == domain.OrderStatusCancelled {
		now := time.Now().UTC()
		o.ClosedAt = &now
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().Str("order_id", id.String()).Str("status", string(status)).Msg("Order status updated")
	return o, nil
}

// AssignCourier attaches a courier to an order still in flight.
func (s *OrderServiceImpl) AssignCourier(ctx context.Context, orderID, courierID uuid.UUID) (*domain.Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == domain.OrderStatusDelivered || o.Status == domain.OrderStatusCancelled {
		return nil, apperror.ErrInvalidOrderState(string(o.Status), string(o.Status))
	}

	courier, err := s.couriers.GetByID(ctx, courierID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if courier == nil {
		return nil, apperror.ErrNotFound("Courier")
	}
	if !courier.IsActive() {
		return nil, apperror.ErrAccountSuspended()
	}

	o.CourierID = &courierID
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return o, nil
}

// SettleOrder charges the delivered order's total from the client's wallet
// into the restaurant's. The charge is the same atomic dual-entry posting as
// a transfer; the order is marked settled only after it commits.
func (s *OrderServiceImpl) SettleOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.IsSettleable() {
		return nil, apperror.ErrOrderNotSettleable()
	}

	clientWallet, err := s.soleWallet(ctx, o.ClientID, domain.AccountKindClient)
	if err != nil {
		return nil, err
	}
	restWallet, err := s.soleWallet(ctx, o.RestaurantID, domain.AccountKindRestaurant)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Order %s settlement", o.ID)
	if _, err := s.walletSvc.ChargeUser(ctx, clientWallet.ID, restWallet.ID, o.Total, description); err != nil {
		return nil, err
	}

	o.Settled = true
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("order_id", o.ID.String()).
		Str("total", o.Total.String()).
		Msg("Order settled")
	return o, nil
}

func (s *OrderServiceImpl) soleWallet(ctx context.Context, ownerID uuid.UUID, kind domain.AccountKind) (*domain.Wallet, error) {
	wallets, err := s.walletSvc.GetWalletsByOwner(ctx, ownerID, kind)
	if err != nil {
		return nil, err
	}
	if len(wallets) == 0 {
		return nil, apperror.ErrNotFound("Wallet")
	}
	return &wallets[0], nil
}
