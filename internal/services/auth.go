package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService verifies bearer tokens issued by the identity provider and
// maps them to a stable user id, email and role.
type AuthService struct {
	JWTSecret []byte
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims authorize moderation actions.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin" || c.Role == "moderator"
}

func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid_token")
	}

	return claims, nil
}

// IssueToken signs a token for userID. Used by tooling and tests; in
// production tokens come from the identity provider.
func (s *AuthService) IssueToken(userID, email, role string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}
