package services

import (
	"errors"
	"time"

	"github.com/catalog-admin/dto"
	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenSecretMissing is returned when no signing secret is configured
var ErrTokenSecretMissing = errors.New("JWT_SECRET not set in environment")

// TokenService issues and validates HS256 bearer tokens.
// Tokens come from an external identity provider in production; Generate serves operators and tests.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service. An empty secret disables it.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Enabled reports whether a signing secret is configured
func (s *TokenService) Enabled() bool {
	return len(s.secret) > 0
}

// Generate generates a new JWT token for a user
func (s *TokenService) Generate(userID, email, role string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrTokenSecretMissing
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := dto.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// Validate validates a JWT token and returns claims if valid
func (s *TokenService) Validate(tokenString string) (*dto.TokenClaims, error) {
	if !s.Enabled() {
		return nil, ErrTokenSecretMissing
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
