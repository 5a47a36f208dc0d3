// internal/handlers/users.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/config"
	"github.com/gophershop/backend/internal/middleware"
	"github.com/gophershop/backend/internal/models"
	"github.com/gophershop/backend/internal/services"
	"github.com/gophershop/backend/internal/utils"
)

type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
	config      *config.Config
}

func NewUserHandler(authService *services.AuthService, userService *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		config:      cfg,
	}
}

func (h *UserHandler) secureCookies() bool {
	return !h.config.IsDevelopment()
}

func (h *UserHandler) startSession(c *gin.Context, user *models.User) error {
	token, err := utils.GenerateSessionToken(user.ID)
	if err != nil {
		return apperrors.Upstream(err)
	}
	utils.SetSessionCookie(c, token, h.secureCookies())
	return nil
}

// POST /users
func (h *UserHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	user, err := h.authService.Login(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := h.startSession(c, user); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user.Profile())
}

// POST /users/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	user, err := h.authService.Signup(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := h.startSession(c, user); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, user.Profile())
}

// POST /users/logout
//
// The route is public: clearing the cookie must work even when the token
// already expired. When the cookie still verifies, outstanding tokens for the
// user are revoked as well.
func (h *UserHandler) Logout(c *gin.Context) {
	if tokenString, err := c.Cookie(utils.SessionCookieName); err == nil {
		if claims, err := utils.VerifySessionToken(tokenString); err == nil {
			if userID, err := uuid.Parse(claims.UserID); err == nil {
				if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
					logrus.WithError(err).Warn("failed to revoke session tokens on logout")
				}
			}
		}
	}

	utils.ClearSessionCookie(c, h.secureCookies())
	utils.SuccessResponse(c, gin.H{"message": "logged out successfully"})
}

// GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	profile, err := h.authService.GetProfile(user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, profile.Profile())
}

// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	updated, err := h.authService.UpdateProfile(user.ID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, updated.Profile())
}

// GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	utils.SuccessResponse(c, profiles)
}

// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, user.Profile())
}

// PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req services.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	user, err := h.userService.Update(c.Param("id"), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, user.Profile())
}

// DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	requester, ok := middleware.CurrentUser(c)
	if !ok {
		utils.HandleError(c, apperrors.ErrNoToken)
		return
	}

	if err := h.userService.Delete(c.Param("id"), requester); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "user removed"})
}
