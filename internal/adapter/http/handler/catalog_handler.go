package handler

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/williamscesar21/RikoApi/internal/adapter/http/dto"
	"github.com/williamscesar21/RikoApi/internal/core/domain"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/pkg/apperror"
	"github.com/williamscesar21/RikoApi/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles product and combo endpoints.
type CatalogHandler struct {
	catalogSvc ports.CatalogService
	fileStore  ports.FileStore
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogSvc ports.CatalogService, fileStore ports.FileStore) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc, fileStore: fileStore}
}

// --- Products ---

// CreateProduct handles POST /product.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid restaurant id"))
		return
	}

	product, err := h.catalogSvc.CreateProduct(c.Request.Context(), ports.CreateProductRequest{
		Name:         req.Name,
		Price:        req.Price,
		Description:  req.Description,
		RestaurantID: restaurantID,
		Tags:         req.Tags,
		Images:       req.Images,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, product)
}

// GetProduct handles GET /product/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.catalogSvc.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// ListProducts handles GET /products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogSvc.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// ListProductsByRestaurant handles GET /products/restaurant/:restaurantId.
func (h *CatalogHandler) ListProductsByRestaurant(c *gin.Context) {
	restaurantID, ok := pathID(c, "restaurantId")
	if !ok {
		return
	}
	products, err := h.catalogSvc.ListProductsByRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// UpdateProductProperty handles PUT /product-property/:id.
func (h *CatalogHandler) UpdateProductProperty(c *gin.Context) {
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

	product, err := h.catalogSvc.UpdateProductProperty(c.Request.Context(), id, req.Property, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// SetProductStatus handles PUT /product-status/:id.
func (h *CatalogHandler) SetProductStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	status, ok := domain.ParseProductStatus(req.Status)
	if !ok {
		response.Error(c, apperror.Validation("invalid product status"))
		return
	}

	product, err := h.catalogSvc.SetProductStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// SuspendProduct handles PUT /product-suspend/:id.
func (h *CatalogHandler) SuspendProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	product, err := h.catalogSvc.SuspendProduct(c.Request.Context(), id, *req.Suspended)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// DeleteProduct handles DELETE /product/:id.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": id.String()})
}

// RateProduct handles PUT /product-rate/:id.
func (h *CatalogHandler) RateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	product, err := h.catalogSvc.RateProduct(c.Request.Context(), id, req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// AddProductImage handles PUT /product-image/:id (multipart upload).
func (h *CatalogHandler) AddProductImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, apperror.Validation("missing image file"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.Error(c, apperror.Validation("image file too large"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.Validation("cannot read image file"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read image file"))
		return
	}

	name := fmt.Sprintf("product-%s-%s%s", id, uuid.NewString()[:8], filepath.Ext(fileHeader.Filename))
	url, err := h.fileStore.Store(c.Request.Context(), name, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.catalogSvc.AddProductImage(c.Request.Context(), id, url)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// --- Combos ---

// CreateCombo handles POST /combo.
func (h *CatalogHandler) CreateCombo(c *gin.Context) {
	var req dto.CreateComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid restaurant id"))
		return
	}

	items := make([]domain.ComboItem, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			response.Error(c, apperror.Validation("invalid product id in combo items"))
			return
		}
		items = append(items, domain.ComboItem{ProductID: productID, Quantity: it.Quantity})
	}

	combo, err := h.catalogSvc.CreateCombo(c.Request.Context(), ports.CreateComboRequest{
		Name:         req.Name,
		Price:        req.Price,
		Description:  req.Description,
		RestaurantID: restaurantID,
		Items:        items,
		Images:       req.Images,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, combo)
}

// GetCombo handles GET /combo/:id.
func (h *CatalogHandler) GetCombo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	combo, err := h.catalogSvc.GetCombo(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, combo)
}

// ListCombos handles GET /combos.
func (h *CatalogHandler) ListCombos(c *gin.Context) {
	combos, err := h.catalogSvc.ListCombos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, combos)
}

// DeleteCombo handles DELETE /combo/:id.
func (h *CatalogHandler) DeleteCombo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteCombo(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": id.String()})
}

// RateCombo handles PUT /combo-rate/:id.
func (h *CatalogHandler) RateCombo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	combo, err := h.catalogSvc.RateCombo(c.Request.Context(), id, req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, combo)
}
