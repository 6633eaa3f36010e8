package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emplatform/employee-management-api/internal/config"
	"github.com/emplatform/employee-management-api/internal/models"
)

func testTokenService(accessTTL time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	svc := testTokenService(15 * time.Minute)

	user := &models.User{ID: 42, Account: "ada@acme.com", IsStaff: true}
	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "ada@acme.com", claims.Account)
	require.True(t, claims.IsStaff)
}

func TestTokenService_RefreshRoundTrip(t *testing.T) {
	svc := testTokenService(15 * time.Minute)

	token, err := svc.GenerateRefreshToken(42)
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, userID)
}

func TestTokenService_ExpiredAccessToken(t *testing.T) {
	svc := testTokenService(-time.Minute)

	token, err := svc.GenerateAccessToken(&models.User{ID: 42})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := testTokenService(15 * time.Minute)
	verifier := NewTokenService(config.JWTConfig{
		Secret:          "another-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := issuer.GenerateAccessToken(&models.User{ID: 42})
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestTokenService_AccessTokenIsNotARefreshToken(t *testing.T) {
	svc := testTokenService(15 * time.Minute)

	// Access tokens carry no subject, so the refresh path rejects them.
	token, err := svc.GenerateAccessToken(&models.User{ID: 42})
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(token)
	require.Error(t, err)
}
