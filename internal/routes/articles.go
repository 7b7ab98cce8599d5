package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gilberthappi/keya-health-be/internal/articles"
)

// RegisterArticleRoutes wires article endpoints.
func RegisterArticleRoutes(r fiber.Router, h *articles.Handler) {
	group := r.Group("/articles")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
}
