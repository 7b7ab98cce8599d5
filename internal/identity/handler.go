package identity

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the doctor discovery endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListDoctors returns the public profiles of all doctors.
func (h *Handler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.service.ListDoctors(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(doctors)
}

// GetDoctor returns one doctor's public profile.
func (h *Handler) GetDoctor(c *fiber.Ctx) error {
	doctor, err := h.service.GetDoctor(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"msg": "Doctor not found"})
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(doctor)
}
