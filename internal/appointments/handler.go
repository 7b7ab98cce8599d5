package appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes appointment HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an appointment HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	DoctorID string    `json:"doctor"`
	Date     time.Time `json:"date"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// List returns the authenticated user's appointments.
func (h *Handler) List(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	list, err := h.service.ListByUser(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if list == nil {
		list = []Appointment{}
	}
	return c.Status(http.StatusOK).JSON(list)
}

// Get returns a single appointment.
func (h *Handler) Get(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	a, err := h.service.Get(c.UserContext(), uid, c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(a)
}

// Create books a new appointment.
func (h *Handler) Create(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	a, err := h.service.Create(c.UserContext(), CreateInput{UserID: uid, DoctorID: req.DoctorID, Date: req.Date})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(a)
}

// UpdateStatus transitions an appointment.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	a, err := h.service.UpdateStatus(c.UserContext(), uid, c.Params("id"), req.Status)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(a)
}

// Delete cancels and removes an appointment.
func (h *Handler) Delete(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if err := h.service.Delete(c.UserContext(), uid, c.Params("id")); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"msg": "Appointment removed"})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "Appointment not found")
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(http.StatusUnauthorized, "Not authorized")
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}
