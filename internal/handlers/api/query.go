package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"lawdesk/internal/models"
)

// QueryHandler answers legal questions.
type QueryHandler struct {
	resolver Resolver
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(r Resolver) *QueryHandler {
	return &QueryHandler{resolver: r}
}

// Query handles POST /query. It always responds 200 with an HTML answer;
// a body that is not valid JSON is answered like an empty question.
func (h *QueryHandler) Query(c fiber.Ctx) error {
	var body models.QueryRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		body.Query = ""
	}

	answer := h.resolver.Resolve(c.Context(), body.Query)
	return c.JSON(models.QueryResponse{Response: answer.HTML})
}

// Topics handles GET /topics.
func (h *QueryHandler) Topics(c fiber.Ctx) error {
	names := h.resolver.Topics()
	if names == nil {
		names = []string{}
	}
	return c.JSON(models.TopicsResponse{AvailableTopics: names})
}
