package api

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

// AdminRequired validates a bearer token minted by the admin-token
// command: HS256 over the server secret, role claim set to admin.
func (handler *Handler) AdminRequired(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	rawToken, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(rawToken) == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (any, error) {
		if _, isHMAC := token.Method.(*jwt.SigningMethodHMAC); !isHMAC {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(handler.secretKey), nil
	})
	if err != nil || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	if role, _ := claims["role"].(string); role != adminRole {
		return fiber.NewError(fiber.StatusForbidden, "admin role required")
	}

	return c.Next()
}
