package wallet

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/gilberthappi/keya-health-be/internal/ledger"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transactRequest struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Number string          `json:"number"`
}

// Get returns the authenticated user's ledger.
func (h *Handler) Get(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	led, err := h.service.Get(c.UserContext(), uid)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"msg": "Wallet not found"})
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(led)
}

// Transact submits a deposit or withdrawal for the authenticated user.
func (h *Handler) Transact(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req transactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	led, err := h.service.Submit(c.UserContext(), SubmitInput{
		UserID:      uid,
		Kind:        req.Type,
		Amount:      req.Amount,
		PayerNumber: req.Number,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"msg": "Insufficient balance"})
		case errors.Is(err, ErrGatewayDeclined):
			return c.Status(http.StatusPaymentRequired).JSON(fiber.Map{
				"status": "declined",
				"msg":    "transaction declined by payment provider",
			})
		case errors.Is(err, ErrIndeterminate):
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "indeterminate",
				"msg":    "payment outcome unknown; do not retry, support has been notified",
			})
		case errors.Is(err, ErrUnreconciled):
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"status": "unreconciled",
				"msg":    "payment confirmed but not recorded; support has been notified",
			})
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(led)
}
