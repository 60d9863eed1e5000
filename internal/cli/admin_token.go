package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BuildAdminToken mints the bearer token the admin HTTP endpoints accept.
// Run from the box that holds the server's SECRET_KEY; there is no other
// credential issuance path.
func BuildAdminToken(secretKey string, ttl time.Duration) (string, error) {
	if secretKey == "" {
		return "", errors.New("secret key is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

func RunAdminTokenCommand(secretKey string, ttl time.Duration) error {
	token, err := BuildAdminToken(secretKey, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
