// internal/services/cart_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gophershop/backend/internal/apperrors"
)

func TestCartServiceWithoutStore(t *testing.T) {
	svc := NewCartService(nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, "user-1")
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))

	err = svc.Clear(ctx, "user-1")
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
}

func TestSavePaymentMethodRequiresValue(t *testing.T) {
	svc := NewCartService(nil)

	// The empty-method check fires before the store is consulted.
	_, err := svc.SavePaymentMethod(context.Background(), "user-1", "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestNilRevocationStoreAdapts(t *testing.T) {
	store := NewRevocationStore(nil)
	assert.Nil(t, store)
	assert.Nil(t, store.AsRevoker())
}
