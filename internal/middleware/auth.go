package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
)

// AdminTokenHeader carries the token for admin-only endpoints.
const AdminTokenHeader = "X-Admin-Token"

// AuthMiddleware guards endpoints that spend upstream quota.
type AuthMiddleware struct {
	token string
}

// NewAuthMiddleware creates a new auth middleware instance.
// An empty token disables the check.
func NewAuthMiddleware(token string) *AuthMiddleware {
	return &AuthMiddleware{token: token}
}

// RequireAdmin rejects requests without the configured admin token.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	if m.token == "" {
		return c.Next()
	}

	got := c.Get(AdminTokenHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(m.token)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "unauthorized",
		})
	}

	return c.Next()
}
