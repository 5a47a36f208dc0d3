// internal/services/catalog_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/models"
)

func TestListProductsPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	names := []string{"Phone", "Case", "Charger", "Headphones", "Tablet"}
	for i, name := range names {
		createTestProduct(t, db, name, float64(10*(i+1)), base.Add(time.Duration(i)*time.Minute))
	}

	page, err := svc.ListProducts("", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Phone", page.Products[0].Name)
	assert.Equal(t, "Case", page.Products[1].Name)

	page, err = svc.ListProducts("", 3, 2)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Tablet", page.Products[0].Name)

	// Past the last page the listing is empty but the shape stays intact.
	page, err = svc.ListProducts("", 9, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, 9, page.Page)
	assert.Equal(t, 3, page.Pages)
}

func TestListProductsKeyword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	createTestProduct(t, db, "Phone", 100, base)
	createTestProduct(t, db, "Headphones", 50, base.Add(time.Minute))
	createTestProduct(t, db, "Tablet", 200, base.Add(2*time.Minute))

	// Case-insensitive substring match.
	page, err := svc.ListProducts("PHO", 1, 8)
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Phone", page.Products[0].Name)
	assert.Equal(t, "Headphones", page.Products[1].Name)
	assert.Equal(t, 1, page.Pages)

	page, err = svc.ListProducts("nomatch", 1, 8)
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, 0, page.Pages)
}

func TestTopRated(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	low := createTestProduct(t, db, "Low", 10, base)
	high := createTestProduct(t, db, "High", 10, base.Add(time.Minute))
	mid := createTestProduct(t, db, "Mid", 10, base.Add(2*time.Minute))

	require.NoError(t, db.Model(&low).UpdateColumn("rating", 2.0).Error)
	require.NoError(t, db.Model(&high).UpdateColumn("rating", 4.5).Error)
	require.NoError(t, db.Model(&mid).UpdateColumn("rating", 3.0).Error)

	products, err := svc.TopRated(2)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "High", products[0].Name)
	assert.Equal(t, "Mid", products[1].Name)
}

func TestGetByIDErrors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.GetByID("not-a-uuid")
	assert.Equal(t, apperrors.KindInvalidID, apperrors.KindOf(err))

	_, err = svc.GetByID("6f1f64a2-90d5-4e2b-9d5e-111111111111")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestAddReviewUpdatesAggregate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	product := createTestProduct(t, db, "Phone", 100, time.Now())
	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleCustomer)
	bob := createTestUser(t, db, "Bob", "bob@example.com", models.RoleCustomer)
	carol := createTestUser(t, db, "Carol", "carol@example.com", models.RoleCustomer)

	_, err := svc.AddReview(product.ID.String(), alice, &AddReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = svc.AddReview(product.ID.String(), bob, &AddReviewRequest{Rating: 3, Comment: "okay"})
	require.NoError(t, err)

	updated, err := svc.AddReview(product.ID.String(), carol, &AddReviewRequest{Rating: 4, Comment: "good"})
	require.NoError(t, err)

	assert.Equal(t, int64(3), updated.NumReviews)
	assert.InDelta(t, 4.0, updated.Rating, 0.001)
	require.Len(t, updated.Reviews, 3)
	assert.Equal(t, "Alice", updated.Reviews[0].AuthorName)
}

func TestAddReviewDuplicateAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	product := createTestProduct(t, db, "Phone", 100, time.Now())
	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleCustomer)

	_, err := svc.AddReview(product.ID.String(), alice, &AddReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)

	_, err = svc.AddReview(product.ID.String(), alice, &AddReviewRequest{Rating: 1, Comment: "changed my mind"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// The rejected review leaves the aggregate untouched.
	reloaded, err := svc.GetByID(product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), reloaded.NumReviews)
	assert.InDelta(t, 5.0, reloaded.Rating, 0.001)
}

func TestAddReviewValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	product := createTestProduct(t, db, "Phone", 100, time.Now())
	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleCustomer)

	_, err := svc.AddReview(product.ID.String(), alice, &AddReviewRequest{Rating: 6, Comment: "too high"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.AddReview(product.ID.String(), alice, &AddReviewRequest{Rating: 4})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateUpdateDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	admin := createTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)

	product, err := svc.Create(admin.ID, &CreateProductRequest{
		Name:         "Phone",
		Price:        99.99,
		Brand:        "Acme",
		Category:     "Electronics",
		CountInStock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, product.SellerID)

	newPrice := 79.99
	zeroStock := 0
	updated, err := svc.Update(product.ID.String(), &UpdateProductRequest{
		Price:        &newPrice,
		CountInStock: &zeroStock,
	})
	require.NoError(t, err)
	assert.InDelta(t, 79.99, updated.Price, 0.001)
	assert.Equal(t, 0, updated.CountInStock)
	assert.Equal(t, "Phone", updated.Name)

	require.NoError(t, svc.Delete(product.ID.String()))

	_, err = svc.GetByID(product.ID.String())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	err = svc.Delete(product.ID.String())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
