package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"lawdesk/internal/resolver"
)

// Resolver answers questions and exposes the topic table.
type Resolver interface {
	Resolve(ctx context.Context, query string) resolver.Answer
	Topics() []string
	Ping(ctx context.Context) error
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}
