// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/middleware"
	"github.com/gophershop/backend/internal/models"
	"github.com/gophershop/backend/internal/services"
	"github.com/gophershop/backend/internal/utils"
)

// CartHandler exposes the server-side cart snapshot. The snapshot is a
// convenience for the storefront; checkout itself goes through the order
// routes and re-resolves every product.
type CartHandler struct {
	cartService    *services.CartService
	catalogService *services.CatalogService
}

func NewCartHandler(cartService *services.CartService, catalogService *services.CatalogService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), user.ID.String())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// POST /cart/items
func (h *CartHandler) AddCartItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	var req services.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.HandleError(c, apperrors.Wrap(apperrors.KindValidation, "invalid cart item", err))
		return
	}

	product, err := h.catalogService.GetByID(req.ProductID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), user.ID.String(), product, req.Qty)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), user.ID.String(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// PUT /cart/shipping
func (h *CartHandler) SaveShippingAddress(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	var addr models.ShippingAddress
	if err := c.ShouldBindJSON(&addr); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	cart, err := h.cartService.SaveShippingAddress(c.Request.Context(), user.ID.String(), addr)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// PUT /cart/payment
func (h *CartHandler) SavePaymentMethod(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	var req struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	cart, err := h.cartService.SavePaymentMethod(c.Request.Context(), user.ID.String(), req.PaymentMethod)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}
