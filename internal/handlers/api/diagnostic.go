package api

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"lawdesk/internal/models"
)

// Diagnostic status values.
const (
	StatusAPIWorking = "API working"
	StatusAPIError   = "API error"
)

// DiagnosticHandler makes a single test call to the upstream API.
type DiagnosticHandler struct {
	resolver Resolver
	logger   *zap.Logger
	now      func() time.Time
}

// NewDiagnosticHandler creates a new diagnostic handler.
func NewDiagnosticHandler(r Resolver, logger *zap.Logger) *DiagnosticHandler {
	return &DiagnosticHandler{resolver: r, logger: logger, now: time.Now}
}

// TestAPI handles GET /test_api.
func (h *DiagnosticHandler) TestAPI(c fiber.Ctx) error {
	if err := h.resolver.Ping(c.Context()); err != nil {
		h.logger.Error("diagnostic call failed", zap.Error(err))
		return c.JSON(models.DiagnosticResponse{
			Status: StatusAPIError,
			Error:  err.Error(),
		})
	}

	return c.JSON(models.DiagnosticResponse{
		Status:    StatusAPIWorking,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
