// internal/handlers/payments.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/middleware"
	"github.com/gophershop/backend/internal/services"
	"github.com/gophershop/backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// GET /config/paypal
func (h *PaymentHandler) GetPayPalConfig(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"clientId": h.paymentService.PayPalClientID()})
}

// POST /payments/intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		utils.BadRequestResponse(c, "orderId is required", nil)
		return
	}

	intent, err := h.paymentService.CreateOrderIntent(req.OrderID, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, intent)
}
