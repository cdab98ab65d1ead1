package handler

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/williamscesar21/RikoApi/internal/adapter/http/dto"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/pkg/apperror"
	"github.com/williamscesar21/RikoApi/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadBytes caps a single image upload.
const maxUploadBytes = 5 << 20

// AccountHandler handles client, restaurant, courier and admin endpoints.
type AccountHandler struct {
	accountSvc ports.AccountService
	fileStore  ports.FileStore
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService, fileStore ports.FileStore) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc, fileStore: fileStore}
}

func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.Error(c, apperror.Validation(fmt.Sprintf("invalid %s", param)))
		return uuid.Nil, false
	}
	return id, true
}

// --- Clients ---

// RegisterClient handles POST /client-register.
func (h *AccountHandler) RegisterClient(c *gin.Context) {
	var req dto.RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	client, err := h.accountSvc.RegisterClient(c.Request.Context(), ports.RegisterClientRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Location:  req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, client)
}

// GetClient handles GET /client/:id.
func (h *AccountHandler) GetClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.accountSvc.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, client)
}

// ListClients handles GET /clients.
func (h *AccountHandler) ListClients(c *gin.Context) {
	clients, err := h.accountSvc.ListClients(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, clients)
}

// UpdateClientProperty handles PUT /client-property/:id.
func (h *AccountHandler) UpdateClientProperty(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	client, err := h.accountSvc.UpdateClientProperty(c.Request.Context(), id, req.Property, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, client)
}

// SuspendClient handles PUT /client-suspend/:id.
func (h *AccountHandler) SuspendClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	client, err := h.accountSvc.SuspendClient(c.Request.Context(), id, *req.Suspended)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, client)
}

// DeleteClient handles DELETE /client/:id.
func (h *AccountHandler) DeleteClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.accountSvc.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": id.String()})
}

// --- Restaurants ---

// RegisterRestaurant handles POST /restaurant-register.
func (h *AccountHandler) RegisterRestaurant(c *gin.Context) {
	var req dto.RegisterRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	rest, err := h.accountSvc.RegisterRestaurant(c.Request.Context(), ports.RegisterRestaurantRequest{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
		Location:    req.Location,
		Schedule:    req.Schedule,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rest)
}

// GetRestaurant handles GET /restaurant/:id.
func (h *AccountHandler) GetRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rest, err := h.accountSvc.GetRestaurant(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rest)
}

// ListRestaurants handles GET /restaurants.
func (h *AccountHandler) ListRestaurants(c *gin.Context) {
	rests, err := h.accountSvc.ListRestaurants(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rests)
}

// UpdateRestaurantProperty handles PUT /restaurant-property/:id.
func (h *AccountHandler) UpdateRestaurantProperty(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	rest, err := h.accountSvc.UpdateRestaurantProperty(c.Request.Context(), id, req.Property, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rest)
}

// SetRestaurantLogo handles PUT /restaurant-logo/:id (multipart upload).
func (h *AccountHandler) SetRestaurantLogo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		response.Error(c, apperror.Validation("missing logo file"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.Error(c, apperror.Validation("logo file too large"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.Validation("cannot read logo file"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read logo file"))
		return
	}

	name := fmt.Sprintf("restaurant-logo-%s%s", id, filepath.Ext(fileHeader.Filename))
	url, err := h.fileStore.Store(c.Request.Context(), name, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		response.Error(c, err)
		return
	}

	rest, err := h.accountSvc.SetRestaurantLogo(c.Request.Context(), id, url)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rest)
}

// SuspendRestaurant handles PUT /restaurant-suspend/:id.
func (h *AccountHandler) SuspendRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rest, err := h.accountSvc.SuspendRestaurant(c.Request.Context(), id, *req.Suspended)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rest)
}

// DeleteRestaurant handles DELETE /restaurant/:id.
func (h *AccountHandler) DeleteRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.accountSvc.DeleteRestaurant(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": id.String()})
}

// RateRestaurant handles PUT /restaurant-rate/:id.
func (h *AccountHandler) RateRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rest, err := h.accountSvc.RateRestaurant(c.Request.Context(), id, req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rest)
}

// --- Couriers ---

// RegisterCourier handles POST /courier-register.
func (h *AccountHandler) RegisterCourier(c *gin.Context) {
	var req dto.RegisterCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	courier, err := h.accountSvc.RegisterCourier(c.Request.Context(), ports.RegisterCourierRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Vehicle:   req.Vehicle,
		Location:  req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, courier)
}

// GetCourier handles GET /courier/:id.
func (h *AccountHandler) GetCourier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	courier, err := h.accountSvc.GetCourier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courier)
}

// ListCouriers handles GET /couriers.
func (h *AccountHandler) ListCouriers(c *gin.Context) {
	couriers, err := h.accountSvc.ListCouriers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, couriers)
}

// UpdateCourierProperty handles PUT /courier-property/:id.
func (h *AccountHandler) UpdateCourierProperty(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	courier, err := h.accountSvc.UpdateCourierProperty(c.Request.Context(), id, req.Property, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courier)
}

// SuspendCourier handles PUT /courier-suspend/:id.
func (h *AccountHandler) SuspendCourier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	courier, err := h.accountSvc.SuspendCourier(c.Request.Context(), id, *req.Suspended)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courier)
}

// DeleteCourier handles DELETE /courier/:id.
func (h *AccountHandler) DeleteCourier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.accountSvc.DeleteCourier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": id.String()})
}

// RateCourier handles PUT /courier-rate/:id.
func (h *AccountHandler) RateCourier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	courier, err := h.accountSvc.RateCourier(c.Request.Context(), id, req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courier)
}

// --- Admins ---

// RegisterAdmin handles POST /admin.
func (h *AccountHandler) RegisterAdmin(c *gin.Context) {
	var req dto.RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	admin, err := h.accountSvc.RegisterAdmin(c.Request.Context(), ports.RegisterAdminRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, admin)
}

// ListAdmins handles GET /admins.
func (h *AccountHandler) ListAdmins(c *gin.Context) {
	admins, err := h.accountSvc.ListAdmins(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, admins)
}

// DeleteAdmin handles DELETE /admin/:id.
func (h *AccountHandler) DeleteAdmin(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.accountSvc.DeleteAdmin(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": id.String()})
}
