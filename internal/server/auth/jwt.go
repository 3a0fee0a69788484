// Package auth issues and verifies the HS256 access tokens handed out on
// login.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
)

// Claims carries the standard registered claims plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// timeFunc is a seam for tests.
var timeFunc = time.Now

// GenerateToken signs a token for userID that expires validityDuration from now.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := timeFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken verifies tokenString and returns the user id it carries.
//
// Every failure (bad signature, unexpected algorithm, malformed token, expiry,
// missing user id) matches common.ErrInvalidToken; the wrapped cause is kept
// for logging and can be told apart with IsExpired.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(timeFunc),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// IsExpired reports whether err came from an expired token.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}

// ExtractBearer returns the token from an "Authorization: Bearer <token>"
// header value. ok is false when the scheme is wrong or the token is empty.
func ExtractBearer(header string) (token string, ok bool) {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return "", false
	}
	token = strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
	return token, token != ""
}
