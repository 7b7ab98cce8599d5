package survey

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes survey HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a survey HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type surveyRequest struct {
	Age           string `json:"age"`
	Height        string `json:"height"`
	Weight        string `json:"weight"`
	BloodType     string `json:"bloodType"`
	BloodPressure struct {
		Systolic  string `json:"systolic"`
		Diastolic string `json:"diastolic"`
	} `json:"bloodPressure"`
	CurrentSymptoms string `json:"currentSymptoms"`
	Medications     string `json:"medications"`
}

func (r surveyRequest) input() Input {
	return Input{
		Age:             r.Age,
		Height:          r.Height,
		Weight:          r.Weight,
		BloodType:       r.BloodType,
		Systolic:        r.BloodPressure.Systolic,
		Diastolic:       r.BloodPressure.Diastolic,
		CurrentSymptoms: r.CurrentSymptoms,
		Medications:     r.Medications,
	}
}

// List returns the authenticated user's surveys, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	list, err := h.service.ListByUser(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if list == nil {
		list = []Survey{}
	}
	return c.Status(http.StatusOK).JSON(list)
}

// Get returns a single survey.
func (h *Handler) Get(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	s, err := h.service.Get(c.UserContext(), uid, c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(s)
}

// Create records a new survey submission.
func (h *Handler) Create(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	var req surveyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	s, err := h.service.Create(c.UserContext(), uid, req.input())
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(s)
}

// Update overwrites a survey's reported fields.
func (h *Handler) Update(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	var req surveyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	s, err := h.service.Update(c.UserContext(), uid, c.Params("id"), req.input())
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(s)
}

// Delete removes a survey.
func (h *Handler) Delete(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if err := h.service.Delete(c.UserContext(), uid, c.Params("id")); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"msg": "Survey removed"})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "Survey not found")
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(http.StatusUnauthorized, "Not authorized")
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}
