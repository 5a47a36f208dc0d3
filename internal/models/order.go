// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type ShippingAddress struct {
	Address    string `json:"address" gorm:"size:255"`
	City       string `json:"city" gorm:"size:100"`
	PostalCode string `json:"postalCode" gorm:"size:20"`
	Country    string `json:"country" gorm:"size:100"`
}

// PaymentResult records the external gateway's settlement outcome. The
// gateway itself is not consulted by this core; the columns are empty until
// the order is marked paid.
type PaymentResult struct {
	ExternalID string `json:"id" gorm:"size:255"`
	Status     string `json:"status" gorm:"size:50"`
	SettledAt  string `json:"updateTime" gorm:"size:50"`
	PayerEmail string `json:"payerEmail" gorm:"size:255"`
}

// OrderItem is a catalog snapshot: product reference plus the name, image and
// unit price at checkout time. Any cart-item identity the client supplied is
// discarded during normalization.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product" gorm:"type:uuid;not null"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Image     string    `json:"image" gorm:"size:512"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Qty       int       `json:"qty" gorm:"not null"`
}

type Order struct {
	BaseModel
	BuyerID         uuid.UUID       `json:"buyer" gorm:"type:uuid;not null;index"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"size:50"`
	ItemsPrice      float64         `json:"itemsPrice" gorm:"type:decimal(10,2)"`
	TaxPrice        float64         `json:"taxPrice" gorm:"type:decimal(10,2)"`
	ShippingPrice   float64         `json:"shippingPrice" gorm:"type:decimal(10,2)"`
	TotalPrice      float64         `json:"totalPrice" gorm:"type:decimal(10,2)"`

	// isPaid and isDelivered advance monotonically; the *At columns are set
	// exactly when the corresponding flag flips.
	IsPaid        bool          `json:"isPaid" gorm:"default:false"`
	PaidAt        *time.Time    `json:"paidAt"`
	PaymentResult PaymentResult `json:"paymentResult" gorm:"embedded;embeddedPrefix:payment_"`
	IsDelivered   bool          `json:"isDelivered" gorm:"default:false"`
	DeliveredAt   *time.Time    `json:"deliveredAt"`

	Buyer User `json:"-" gorm:"foreignKey:BuyerID"`
}
