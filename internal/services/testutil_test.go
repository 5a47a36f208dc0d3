// internal/services/testutil_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gophershop/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: role}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(&user).Error)
	return user
}

// createTestProduct assigns an explicit creation time so listing order is
// deterministic across a batch of fixtures.
func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, createdAt time.Time) models.Product {
	t.Helper()

	product := models.Product{
		Name:         name,
		Price:        price,
		CountInStock: 10,
	}
	product.CreatedAt = createdAt
	require.NoError(t, db.Create(&product).Error)
	return product
}
