// internal/services/cart_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/models"
)

const (
	cartKeyPrefix = "cart:"
	cartTTL       = 30 * 24 * time.Hour
)

// CartService persists per-user cart snapshots in redis so a selection
// survives across sessions and devices. The snapshot stays independent of
// persisted orders until checkout.
type CartService struct {
	rdb *redis.Client
}

func NewCartService(rdb *redis.Client) *CartService {
	return &CartService{rdb: rdb}
}

type CartItemRequest struct {
	ProductID string `json:"_id" validate:"required"`
	Qty       int    `json:"qty" validate:"required,min=1"`
}

func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	if s.rdb == nil {
		return nil, apperrors.New(apperrors.KindUpstream, "cart store not configured")
	}

	data, err := s.rdb.Get(ctx, cartKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.NewCart(), nil
	}
	if err != nil {
		return nil, apperrors.Upstream(err)
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, apperrors.Upstream(err)
	}
	return &cart, nil
}

func (s *CartService) save(ctx context.Context, userID string, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return apperrors.Upstream(err)
	}
	if err := s.rdb.Set(ctx, cartKeyPrefix+userID, data, cartTTL).Err(); err != nil {
		return apperrors.Upstream(err)
	}
	return nil
}

// AddItem merges a catalog product into the snapshot. The quantity is the
// requested quantity, not a sum: re-adding a product replaces its entry.
func (s *CartService) AddItem(ctx context.Context, userID string, product *models.Product, qty int) (*models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(models.CartItem{
		ProductID:    product.ID.String(),
		Name:         product.Name,
		Image:        product.Image,
		Price:        product.Price,
		Qty:          qty,
		CountInStock: product.CountInStock,
	})

	if err := s.save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	if err := s.save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) SaveShippingAddress(ctx context.Context, userID string, addr models.ShippingAddress) (*models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.SaveShippingAddress(addr)

	if err := s.save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) SavePaymentMethod(ctx context.Context, userID, method string) (*models.Cart, error) {
	if method == "" {
		return nil, apperrors.New(apperrors.KindValidation, "payment method is required")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.SavePaymentMethod(method)

	if err := s.save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear drops the snapshot, typically after a successful checkout.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if s.rdb == nil {
		return apperrors.New(apperrors.KindUpstream, "cart store not configured")
	}
	if err := s.rdb.Del(ctx, cartKeyPrefix+userID).Err(); err != nil {
		return apperrors.Upstream(err)
	}
	return nil
}
