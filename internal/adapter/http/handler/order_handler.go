package handler

import (
	"github.com/williamscesar21/RikoApi/internal/adapter/http/dto"
	"github.com/williamscesar21/RikoApi/internal/core/domain"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/pkg/apperror"
	"github.com/williamscesar21/RikoApi/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	orderSvc ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc ports.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// PlaceOrder handles POST /order.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid client id"))
		return
	}
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid restaurant id"))
		return
	}

	order, err := h.orderSvc.PlaceOrder(c.Request.Context(), ports.PlaceOrderRequest{
		ClientID:        clientID,
		RestaurantID:    restaurantID,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// GetOrder handles GET /order/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderSvc.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// ListOrdersByClient handles GET /orders/client/:clientId.
func (h *OrderHandler) ListOrdersByClient(c *gin.Context) {
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	orders, err := h.orderSvc.ListOrdersByClient(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

// ListOrdersByRestaurant handles GET /orders/restaurant/:restaurantId.
func (h *OrderHandler) ListOrdersByRestaurant(c *gin.Context) {
	restaurantID, ok := pathID(c, "restaurantId")
	if !ok {
		return
	}
	orders, err := h.orderSvc.ListOrdersByRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

// ListOrdersByCourier handles GET /orders/courier/:courierId.
func (h *OrderHandler) ListOrdersByCourier(c *gin.Context) {
	courierID, ok := pathID(c, "courierId")
	if !ok {
		return
	}
	orders, err := h.orderSvc.ListOrdersByCourier(c.Request.Context(), courierID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

// UpdateOrderStatus handles PUT /order-status/:id.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		response.Error(c, apperror.Validation("invalid order status"))
		return
	}

	order, err := h.orderSvc.UpdateOrderStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// AssignCourier handles PUT /order-assign/:id.
func (h *OrderHandler) AssignCourier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	courierID, err := uuid.Parse(req.CourierID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid courier id"))
		return
	}

	order, err := h.orderSvc.AssignCourier(c.Request.Context(), id, courierID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// SettleOrder handles POST /order-settle/:id.
func (h *OrderHandler) SettleOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderSvc.SettleOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}
