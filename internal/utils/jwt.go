package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// SessionTokenClaims authorizes one user to join one session.
type SessionTokenClaims struct {
	SessionId string `json:"sessionId"`
	UserId    string `json:"userId"`
	jwt.RegisteredClaims
}

// SetJWTSecret installs the HMAC secret for session tokens. An empty secret
// disables session authentication entirely.
func SetJWTSecret(secret []byte) { jwtSecret = secret }

func SessionAuthEnabled() bool { return len(jwtSecret) > 0 }

func ValidateSessionToken(tokenStr string) (*SessionTokenClaims, error) {
	claims := &SessionTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractTokenFromHeader pulls the bearer token out of an Authorization header.
func ExtractTokenFromHeader(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
