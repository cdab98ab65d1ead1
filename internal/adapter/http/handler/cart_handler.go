package handler

import (
	"github.com/williamscesar21/RikoApi/internal/adapter/http/dto"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/pkg/apperror"
	"github.com/williamscesar21/RikoApi/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles cart endpoints.
type CartHandler struct {
	cartSvc ports.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartSvc ports.CartService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

// GetCart handles GET /cart/:clientId.
func (h *CartHandler) GetCart(c *gin.Context) {
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	cart, err := h.cartSvc.GetCart(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}

func (h *CartHandler) bindItem(c *gin.Context) (uuid.UUID, uuid.UUID, int, bool) {
	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return uuid.Nil, uuid.Nil, 0, false
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid client id"))
		return uuid.Nil, uuid.Nil, 0, false
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid product id"))
		return uuid.Nil, uuid.Nil, 0, false
	}
	return clientID, productID, req.Quantity, true
}

// AddItem handles POST /cart/add.
func (h *CartHandler) AddItem(c *gin.Context) {
	clientID, productID, quantity, ok := h.bindItem(c)
	if !ok {
		return
	}
	cart, err := h.cartSvc.AddItem(c.Request.Context(), clientID, productID, quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}

// RemoveItem handles POST /cart/remove.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	clientID, productID, _, ok := h.bindItem(c)
	if !ok {
		return
	}
	cart, err := h.cartSvc.RemoveItem(c.Request.Context(), clientID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}

// UpdateQuantity handles PUT /cart/update.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	clientID, productID, quantity, ok := h.bindItem(c)
	if !ok {
		return
	}
	cart, err := h.cartSvc.UpdateQuantity(c.Request.Context(), clientID, productID, quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}

// EmptyCart handles PUT /cart/empty/:clientId.
func (h *CartHandler) EmptyCart(c *gin.Context) {
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	cart, err := h.cartSvc.EmptyCart(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}
