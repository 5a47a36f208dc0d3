// internal/utils/jwt_test.go
package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	userID := uuid.New()
	token, err := GenerateSessionToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(TokenValidity), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifySessionTokenRejectsExpired(t *testing.T) {
	SetJWTSecret("test-secret")

	now := time.Now()
	claims := SessionClaims{
		UserID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifySessionToken(token)
	assert.Error(t, err)
}

func TestVerifySessionTokenRejectsWrongKey(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	SetJWTSecret("a-different-secret")
	defer SetJWTSecret("test-secret")

	_, err = VerifySessionToken(token)
	assert.Error(t, err)
}

func TestVerifySessionTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	_, err := VerifySessionToken("not-a-token")
	assert.Error(t, err)
}
