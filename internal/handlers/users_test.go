// internal/handlers/users_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gophershop/backend/internal/config"
	"github.com/gophershop/backend/internal/middleware"
	"github.com/gophershop/backend/internal/models"
	"github.com/gophershop/backend/internal/services"
	"github.com/gophershop/backend/internal/utils"
)

func setupUserRoutes(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	cfg := &config.Config{Environment: "development"}
	authService := services.NewAuthService(db, nil)
	userService := services.NewUserService(db)
	handler := NewUserHandler(authService, userService, cfg)

	session := middleware.Session(db, nil)

	r := gin.New()
	users := r.Group("/api/users")
	{
		users.POST("", handler.Login)
		users.POST("/signup", handler.Signup)
		users.POST("/logout", handler.Logout)
		users.GET("/profile", session, handler.GetProfile)
	}
	return db, r
}

func postJSON(r *gin.Engine, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupSetsSessionCookie(t *testing.T) {
	_, r := setupUserRoutes(t)

	w := postJSON(r, "/api/users/signup", gin.H{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret123",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var profile models.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Ada", profile.Name)
	assert.False(t, profile.IsAdmin)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLoginAndProfileFlow(t *testing.T) {
	_, r := setupUserRoutes(t)

	w := postJSON(r, "/api/users/signup", gin.H{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Login is mounted at the collection root and takes just credentials.
	w = postJSON(r, "/api/users", gin.H{
		"email":    "ada@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	var profile models.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "ada@example.com", profile.Email)

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	req.AddCookie(cookies[0])
	pw := httptest.NewRecorder()
	r.ServeHTTP(pw, req)

	assert.Equal(t, http.StatusOK, pw.Code)
	assert.Contains(t, pw.Body.String(), "ada@example.com")
}

func TestLoginBadCredentials(t *testing.T) {
	_, r := setupUserRoutes(t)

	w := postJSON(r, "/api/users/signup", gin.H{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/users", gin.H{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	assert.Empty(t, w.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	_, r := setupUserRoutes(t)

	// Works without any session at all.
	w := postJSON(r, "/api/users/logout", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestProfileRequiresSession(t *testing.T) {
	_, r := setupUserRoutes(t)

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
