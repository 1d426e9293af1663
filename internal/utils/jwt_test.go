package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestValidateSessionTokenSuccess(t *testing.T) {
	prev := jwtSecret
	t.Cleanup(func() { jwtSecret = prev })
	jwtSecret = []byte("secret-key")

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionTokenClaims{
		SessionId: "session-1",
		UserId:    "user-1",
	}).SignedString(jwtSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	claims, err := ValidateSessionToken(tokenStr)
	if err != nil {
		t.Fatalf("expected valid token, got error %v", err)
	}
	if claims.SessionId != "session-1" || claims.UserId != "user-1" {
		t.Fatalf("unexpected claims: %#v", claims)
	}
}

func TestValidateSessionTokenInvalid(t *testing.T) {
	prev := jwtSecret
	t.Cleanup(func() { jwtSecret = prev })
	jwtSecret = []byte("secret-a")

	badToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionTokenClaims{
		SessionId: "s",
		UserId:    "u",
	}).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := ValidateSessionToken(badToken); err == nil {
		t.Fatalf("expected validation failure")
	}
}

func TestValidateSessionTokenUnexpectedMethod(t *testing.T) {
	prev := jwtSecret
	t.Cleanup(func() { jwtSecret = prev })
	jwtSecret = []byte("secret-a")

	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodRS256, &SessionTokenClaims{
		SessionId: "s",
		UserId:    "u",
	}).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := ValidateSessionToken(tokenStr); err == nil || !strings.Contains(err.Error(), "unexpected signing method") {
		t.Fatalf("expected signing method error, got %v", err)
	}
}

func TestValidateSessionTokenExpired(t *testing.T) {
	prev := jwtSecret
	t.Cleanup(func() { jwtSecret = prev })
	jwtSecret = []byte("secret-b")

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionTokenClaims{
		SessionId: "s",
		UserId:    "u",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString(jwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := ValidateSessionToken(tokenStr); err == nil {
		t.Fatalf("expected expiration error")
	}
}

func TestSessionAuthEnabled(t *testing.T) {
	prev := jwtSecret
	t.Cleanup(func() { jwtSecret = prev })

	SetJWTSecret(nil)
	if SessionAuthEnabled() {
		t.Fatalf("expected auth disabled with empty secret")
	}
	SetJWTSecret([]byte("s"))
	if !SessionAuthEnabled() {
		t.Fatalf("expected auth enabled")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	const token = "abc123"
	value, err := ExtractTokenFromHeader("Bearer " + token)
	if err != nil || value != token {
		t.Fatalf("unexpected result %q err=%v", value, err)
	}

	for _, header := range []string{"", "Token " + token, "Bearer"} {
		if _, err := ExtractTokenFromHeader(header); err == nil {
			t.Fatalf("expected error for header %q", header)
		}
	}
}

func TestLoggerMethods(t *testing.T) {
	logger := NewLogger()
	var buf strings.Builder
	logger.l.SetOutput(&buf)

	logger.Info("hi", "k", "v")
	logger.Warn("warn", "k2", "v2")
	logger.Error("err", "k3", "v3")

	output := buf.String()
	for _, needle := range []string{"INFO:", "WARN:", "ERROR:", "k=v"} {
		if !strings.Contains(output, needle) {
			t.Fatalf("expected log output to contain %q; got %q", needle, output)
		}
	}
}
