// internal/handlers/orders.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/middleware"
	"github.com/gophershop/backend/internal/services"
	"github.com/gophershop/backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	order, err := h.orderService.Create(user.ID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, order)
}

// GET /orders/myorders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	orders, err := h.orderService.ListMine(user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	order, err := h.orderService.GetByID(c.Param("id"), user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// PUT /orders/:id/pay
//
// Settlement is scoped like reads: only the owning buyer or an admin may
// record a payment result against the order.
func (h *OrderHandler) PayOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	var req services.PaymentResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	if _, err := h.orderService.GetByID(c.Param("id"), user); err != nil {
		utils.HandleError(c, err)
		return
	}

	order, err := h.orderService.MarkPaid(c.Param("id"), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// PUT /orders/:id/deliver
func (h *OrderHandler) DeliverOrder(c *gin.Context) {
	order, err := h.orderService.MarkDelivered(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.ListAll()
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}
