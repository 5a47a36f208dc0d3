// internal/handlers/products.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/middleware"
	"github.com/gophershop/backend/internal/services"
	"github.com/gophershop/backend/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	keyword := c.Query("keyword")
	page := utils.PageFromQuery(c)

	result, err := h.catalogService.ListProducts(keyword, page, utils.DefaultPageSize)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /products/top
func (h *ProductHandler) GetTopProducts(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	products, err := h.catalogService.TopRated(limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetByID(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	product, err := h.catalogService.Create(user.ID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	product, err := h.catalogService.Update(c.Param("id"), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.Delete(c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "product removed"})
}

// POST /products/:id/reviews
func (h *ProductHandler) CreateReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	var req services.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	product, err := h.catalogService.AddReview(c.Param("id"), user, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}
