// internal/middleware/auth_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gophershop/backend/internal/models"
	"github.com/gophershop/backend/internal/utils"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	return db, r
}

func createUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()
	user := models.User{Name: "Test", Email: string(role) + "@example.com", Role: role}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(&user).Error)
	return user
}

func sessionCookie(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateSessionToken(user.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: utils.SessionCookieName, Value: token}
}

func TestSessionRejectsMissingCookie(t *testing.T) {
	db, r := setupAuthTest(t)
	r.GET("/private", Session(db, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/private", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token")
}

func TestSessionRejectsInvalidToken(t *testing.T) {
	db, r := setupAuthTest(t)
	r.GET("/private", Session(db, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "garbage"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token failed")
}

func TestSessionResolvesIdentity(t *testing.T) {
	db, r := setupAuthTest(t)
	user := createUser(t, db, models.RoleCustomer)

	r.GET("/private", Session(db, nil), func(c *gin.Context) {
		identity, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(sessionCookie(t, user))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.Email)
}

// A verified token whose user record was removed attaches an empty identity
// rather than failing; handlers see it as unauthenticated.
func TestSessionDeletedUserAttachesEmptyIdentity(t *testing.T) {
	db, r := setupAuthTest(t)
	user := createUser(t, db, models.RoleCustomer)
	cookie := sessionCookie(t, user)
	require.NoError(t, db.Unscoped().Delete(&user).Error)

	r.GET("/private", Session(db, nil), func(c *gin.Context) {
		_, ok := CurrentUser(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

type fixedEpochRevoker struct {
	epoch time.Time
}

func (r fixedEpochRevoker) RevokedAfter(ctx context.Context, userID string) (time.Time, error) {
	return r.epoch, nil
}

func TestSessionRejectsTokensIssuedBeforeRevocationEpoch(t *testing.T) {
	db, r := setupAuthTest(t)
	user := createUser(t, db, models.RoleCustomer)

	// Epoch ahead of issuance: the token is treated as revoked.
	r.GET("/revoked", Session(db, fixedEpochRevoker{epoch: time.Now().Add(time.Minute)}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	// Epoch behind issuance (logout long ago) leaves newer tokens valid.
	r.GET("/fresh", Session(db, fixedEpochRevoker{epoch: time.Now().Add(-time.Hour)}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cookie := sessionCookie(t, user)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/revoked", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token failed")

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/fresh", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCapability(t *testing.T) {
	db, r := setupAuthTest(t)
	customer := createUser(t, db, models.RoleCustomer)
	admin := createUser(t, db, models.RoleAdmin)

	r.GET("/admin", Session(db, nil), RequireCapability(models.CapabilityManageCatalog), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Anonymous requests fail authentication before the capability check.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(sessionCookie(t, customer))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(sessionCookie(t, admin))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
