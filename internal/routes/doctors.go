package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gilberthappi/keya-health-be/internal/identity"
)

// RegisterDoctorRoutes wires doctor discovery endpoints.
func RegisterDoctorRoutes(r fiber.Router, h *identity.Handler) {
	group := r.Group("/doctors")
	group.Get("/", h.ListDoctors)
	group.Get("/:id", h.GetDoctor)
}
