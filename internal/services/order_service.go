// internal/services/order_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/models"
	"github.com/gophershop/backend/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type OrderItemRequest struct {
	ProductID string `json:"_id" validate:"required"`
	Qty       int    `json:"qty" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	OrderItems      []OrderItemRequest     `json:"orderItems" validate:"omitempty,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	ItemsPrice      float64                `json:"itemsPrice"`
	TaxPrice        float64                `json:"taxPrice" validate:"min=0"`
	ShippingPrice   float64                `json:"shippingPrice" validate:"min=0"`
	TotalPrice      float64                `json:"totalPrice"`
}

// PaymentResultRequest mirrors the settlement callback shape the storefront
// relays from the payment gateway.
type PaymentResultRequest struct {
	ID         string `json:"id" validate:"required"`
	Status     string `json:"status" validate:"required"`
	UpdateTime string `json:"update_time"`
	Payer      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

// BuyerSummary is the only buyer detail an order read exposes.
type BuyerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderDetail struct {
	*models.Order
	Buyer BuyerSummary `json:"buyer"`
}

// Create checks out a non-empty item list into a Created order. Every item is
// normalized to a catalog reference: the unit price, name and image come from
// the catalog at checkout time, and itemsPrice/totalPrice are recomputed
// server-side rather than trusted from the client. Tax and shipping stay
// caller-supplied.
func (s *OrderService) Create(buyerID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "no order items")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "invalid order data", err)
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	itemsPrice := 0.0
	for _, item := range req.OrderItems {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apperrors.New(apperrors.KindInvalidID, "invalid product id in order items")
		}

		var product models.Product
		if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.New(apperrors.KindNotFound, "product not found")
			}
			return nil, apperrors.Upstream(err)
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Qty:       item.Qty,
		})
		itemsPrice += product.Price * float64(item.Qty)
	}

	order := &models.Order{
		BuyerID:         buyerID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      itemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      itemsPrice + req.TaxPrice + req.ShippingPrice,
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return order, nil
}

func (s *OrderService) loadOrder(id string) (*models.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidID, "invalid order id")
	}

	var order models.Order
	err = s.db.Preload("OrderItems").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "order not found")
		}
		return nil, apperrors.Upstream(err)
	}

	return &order, nil
}

// MarkPaid records the external settlement. Settlement is not idempotent at
// the gateway, so a second call is a conflict rather than a silent overwrite
// of paidAt and the payment result.
func (s *OrderService) MarkPaid(id string, req *PaymentResultRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "invalid payment result", err)
	}

	order, err := s.loadOrder(id)
	if err != nil {
		return nil, err
	}

	if order.IsPaid {
		return nil, apperrors.New(apperrors.KindConflict, "order already paid")
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = models.PaymentResult{
		ExternalID: req.ID,
		Status:     req.Status,
		SettledAt:  req.UpdateTime,
		PayerEmail: req.Payer.EmailAddress,
	}

	if err := s.db.Save(order).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return order, nil
}

func (s *OrderService) MarkDelivered(id string) (*models.Order, error) {
	order, err := s.loadOrder(id)
	if err != nil {
		return nil, err
	}

	if order.IsDelivered {
		return nil, apperrors.New(apperrors.KindConflict, "order already delivered")
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now

	if err := s.db.Save(order).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return order, nil
}

// ListMine returns the buyer's orders in storage order; no further ordering
// is guaranteed.
func (s *OrderService) ListMine(buyerID uuid.UUID) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.db.Preload("OrderItems").
		Where("buyer_id = ?", buyerID).
		Find(&orders).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}
	return orders, nil
}

func (s *OrderService) ListAll() ([]OrderDetail, error) {
	orders := []models.Order{}
	if err := s.db.Preload("OrderItems").Preload("Buyer").
		Find(&orders).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	details := make([]OrderDetail, 0, len(orders))
	for i := range orders {
		details = append(details, OrderDetail{
			Order: &orders[i],
			Buyer: BuyerSummary{Name: orders[i].Buyer.Name, Email: orders[i].Buyer.Email},
		})
	}
	return details, nil
}

// GetByID resolves the order with its buyer reduced to name and email. Reads
// are scoped to the owning buyer; an admin identity may read any order.
func (s *OrderService) GetByID(id string, requester models.User) (*OrderDetail, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidID, "invalid order id")
	}

	var order models.Order
	err = s.db.Preload("OrderItems").Preload("Buyer").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "order not found")
		}
		return nil, apperrors.Upstream(err)
	}

	if order.BuyerID != requester.ID && !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	return &OrderDetail{
		Order: &order,
		Buyer: BuyerSummary{Name: order.Buyer.Name, Email: order.Buyer.Email},
	}, nil
}
