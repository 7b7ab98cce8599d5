package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gilberthappi/keya-health-be/internal/survey"
)

// RegisterSurveyRoutes wires health survey endpoints.
func RegisterSurveyRoutes(r fiber.Router, h *survey.Handler) {
	group := r.Group("/surveys")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}
