// internal/utils/cookie.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "jwt"

// SetSessionCookie writes the session token as an httpOnly, SameSite-strict
// cookie whose lifetime matches the token's validity window. The secure flag
// is dropped only in a development configuration.
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, int(TokenValidity.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
