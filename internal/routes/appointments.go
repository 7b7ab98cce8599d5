package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gilberthappi/keya-health-be/internal/appointments"
)

// RegisterAppointmentRoutes wires appointment endpoints.
func RegisterAppointmentRoutes(r fiber.Router, h *appointments.Handler) {
	group := r.Group("/appointments")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
	group.Patch("/:id", h.UpdateStatus)
	group.Delete("/:id", h.Delete)
}
