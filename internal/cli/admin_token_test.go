package cli

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestBuildAdminToken(t *testing.T) {
	t.Parallel()

	signed, err := BuildAdminToken("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse minted token: %v", err)
	}

	if role, _ := claims["role"].(string); role != "admin" {
		t.Fatalf("expected admin role claim, got %q", role)
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		t.Fatalf("read expiry claim: %v", err)
	}
	until := time.Until(expiry.Time)
	if until <= 0 || until > time.Hour {
		t.Fatalf("expected expiry within the hour, got %s", until)
	}
}

func TestBuildAdminTokenRequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := BuildAdminToken("", time.Hour); err == nil {
		t.Fatal("expected an error without a secret key")
	}
}
