// internal/models/cart.go
package models

// Cart is the client-held snapshot of a selection in progress. It is
// independent of persisted orders until checkout; the merge rules below define
// the boundary contract with the storefront client.
type Cart struct {
	CartItems       []CartItem      `json:"cartItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

type CartItem struct {
	ProductID    string  `json:"_id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	Qty          int     `json:"qty"`
	CountInStock int     `json:"countInStock"`
}

const DefaultPaymentMethod = "PayPal"

func NewCart() *Cart {
	return &Cart{
		CartItems:     []CartItem{},
		PaymentMethod: DefaultPaymentMethod,
	}
}

// AddItem merges an item into the snapshot. Adding a product already present
// replaces that entry in place; quantities are never summed across adds.
func (c *Cart) AddItem(item CartItem) {
	for i, existing := range c.CartItems {
		if existing.ProductID == item.ProductID {
			c.CartItems[i] = item
			return
		}
	}
	c.CartItems = append(c.CartItems, item)
}

func (c *Cart) RemoveItem(productID string) {
	kept := c.CartItems[:0]
	for _, item := range c.CartItems {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.CartItems = kept
}

func (c *Cart) SaveShippingAddress(addr ShippingAddress) {
	c.ShippingAddress = addr
}

func (c *Cart) SavePaymentMethod(method string) {
	c.PaymentMethod = method
}
