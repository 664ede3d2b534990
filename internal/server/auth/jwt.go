// Package auth implements the credential primitives of the server: the
// HS256 token codec for access/refresh tokens and the bcrypt password
// hasher.
package auth

import (
	"errors"
	"time"

	"github.com/chenterphai/article-stack/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token classes. Both classes share the codec and the signing secret but
// carry a typ claim, so a refresh token can never pass as an access token
// or vice versa.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims carries the identity asserted by a signed token: the user ID as
// subject, the username, and the token class. No other user data is
// embedded.
type Claims struct {
	jwt.RegisteredClaims
	Username  string `json:"username"`
	TokenType string `json:"typ"`
}

// GenerateAccessToken signs a short-lived access token for the given user.
func GenerateAccessToken(userID, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	return generateToken(userID, username, secretKey, validityDuration, tokenTypeAccess)
}

// GenerateRefreshToken signs a long-lived refresh token for the given user.
func GenerateRefreshToken(userID, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	return generateToken(userID, username, secretKey, validityDuration, tokenTypeRefresh)
}

func generateToken(userID, username string, secretKey []byte, validityDuration time.Duration, tokenType string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every token unique even when two are minted within
			// the same second for the same user; session rows key on the
			// token string.
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username:  username,
		TokenType: tokenType,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseAccessToken verifies an access token and returns its claims.
// Refresh tokens are rejected with common.ErrInvalidToken.
func ParseAccessToken(tokenString string, secretKey []byte) (*Claims, error) {
	return parseToken(tokenString, secretKey, tokenTypeAccess)
}

// ParseRefreshToken verifies a refresh token and returns its claims.
// Access tokens are rejected with common.ErrInvalidToken.
func ParseRefreshToken(tokenString string, secretKey []byte) (*Claims, error) {
	return parseToken(tokenString, secretKey, tokenTypeRefresh)
}

// parseToken verifies signature, expiry, and token class. Expired tokens
// yield common.ErrTokenExpired; anything else that fails verification,
// including a class mismatch, yields common.ErrInvalidToken.
func parseToken(tokenString string, secretKey []byte, wantType string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" || claims.TokenType != wantType {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
