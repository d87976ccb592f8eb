package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestParseValidToken(t *testing.T) {
	parser := NewParser(testSecret)
	userID := uuid.New()

	raw := signToken(t, testSecret, accessClaims{
		Name: "Operador",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	principal, err := parser.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if principal.UserID != userID {
		t.Errorf("user id = %s, want %s", principal.UserID, userID)
	}
	if principal.Name != "Operador" {
		t.Errorf("name = %q, want Operador", principal.Name)
	}
}

func TestParseRejections(t *testing.T) {
	parser := NewParser(testSecret)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "not-a-token"},
		{
			name: "wrong secret",
			raw: signToken(t, "other-secret", jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
		},
		{
			name: "expired",
			raw: signToken(t, testSecret, jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			}),
		},
		{
			name: "bad subject",
			raw: signToken(t, testSecret, jwt.RegisteredClaims{
				Subject:   "not-a-uuid",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parser.Parse(tt.raw); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
