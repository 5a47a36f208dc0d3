// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/models"
	"github.com/gophershop/backend/internal/utils"
)

const identityKey = "identity"

// TokenRevoker reports the instant after which previously issued tokens for a
// user stop being honored. A nil revoker disables the check.
type TokenRevoker interface {
	RevokedAfter(ctx context.Context, userID string) (time.Time, error)
}

// Session resolves the request identity from the jwt cookie. A missing cookie
// and a failed verification both map to unauthorized, but are logged as
// distinct conditions. When the token verifies but the user record is gone,
// an empty identity is attached instead of re-failing; downstream handlers
// must treat an empty identity as unauthenticated.
func Session(db *gorm.DB, revoker TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(utils.SessionCookieName)
		if err != nil {
			logrus.WithField("path", c.Request.URL.Path).Debug("no session cookie")
			utils.HandleError(c, apperrors.ErrNoToken)
			c.Abort()
			return
		}

		claims, err := utils.VerifySessionToken(tokenString)
		if err != nil {
			logrus.WithError(err).WithField("path", c.Request.URL.Path).Debug("session token rejected")
			utils.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		if revoker != nil {
			revokedAfter, err := revoker.RevokedAfter(c.Request.Context(), claims.UserID)
			if err != nil {
				utils.HandleError(c, apperrors.Upstream(err))
				c.Abort()
				return
			}
			if claims.IssuedAt != nil && claims.IssuedAt.Time.Before(revokedAfter) {
				utils.HandleError(c, apperrors.ErrInvalidToken)
				c.Abort()
				return
			}
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// User removed since issuance. Attach an empty identity and
				// let handlers reject it.
				c.Set(identityKey, models.User{})
				c.Next()
				return
			}
			utils.HandleError(c, apperrors.Upstream(err))
			c.Abort()
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

// RequireCapability gates elevated operations. It must run after Session.
func RequireCapability(cap models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.HandleError(c, apperrors.ErrNoToken)
			c.Abort()
			return
		}

		if !user.Role.Can(cap) {
			utils.HandleError(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the resolved identity. ok is false for anonymous
// requests and for the empty identity left behind by a deleted user.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	if !ok || user.ID == uuid.Nil {
		return models.User{}, false
	}
	return user, true
}
