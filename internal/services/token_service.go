package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/emplatform/employee-management-api/internal/config"
	"github.com/emplatform/employee-management-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// AccessClaims are the claims carried by an access token.
type AccessClaims struct {
	UserID  uint64 `json:"uid"`
	Account string `json:"account"`
	IsStaff bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the bearer token pair.
type TokenService struct {
	cfg config.JWTConfig
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// GenerateAccessToken issues a short-lived access token for the user.
func (s *TokenService) GenerateAccessToken(user *models.User) (string, error) {
	claims := AccessClaims{
		UserID:  user.ID,
		Account: user.Account,
		IsStaff: user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "employee-management-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// GenerateRefreshToken issues a long-lived refresh token for the user.
func (s *TokenService) GenerateRefreshToken(userID uint64) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.RefreshTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "employee-management-api",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// ValidateAccessToken parses an access token and returns its claims.
func (s *TokenService) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid && claims.UserID != 0 {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ValidateRefreshToken parses a refresh token and returns the user ID.
func (s *TokenService) ValidateRefreshToken(tokenString string) (uint64, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid || claims.Subject == "" {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
