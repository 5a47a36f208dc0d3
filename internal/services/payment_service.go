// internal/services/payment_service.go
package services

import (
	"math"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/config"
	"github.com/gophershop/backend/internal/models"
)

// PaymentService prepares external settlement for an order. Verifying the
// settlement afterwards is the gateway's business; its result reaches the
// order lifecycle through MarkPaid.
type PaymentService struct {
	orders *OrderService
	cfg    *config.Config
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	PaymentID    string `json:"paymentId"`
	Status       string `json:"status"`
}

func NewPaymentService(orders *OrderService, cfg *config.Config) *PaymentService {
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{orders: orders, cfg: cfg}
}

func (s *PaymentService) PayPalClientID() string {
	return s.cfg.Payment.PayPalClientID
}

// CreateOrderIntent opens a payment intent for the order's total. Only the
// owning buyer (or an admin) may start settlement for an order.
func (s *PaymentService) CreateOrderIntent(orderID string, requester models.User) (*PaymentIntentResponse, error) {
	detail, err := s.orders.GetByID(orderID, requester)
	if err != nil {
		return nil, err
	}

	if detail.IsPaid {
		return nil, apperrors.New(apperrors.KindConflict, "order already paid")
	}

	amountInCents := int64(math.Round(detail.TotalPrice * 100))
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String("usd"),
	}
	params.AddMetadata("order_id", detail.ID.String())
	params.AddMetadata("buyer_id", detail.BuyerID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUpstream, "failed to create payment intent", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}
