package handlers

import (
	"errors"
	"strconv"

	domainerr "pointbank/internal/errors"
	"pointbank/internal/models"
	"pointbank/internal/services/ledger"
	"pointbank/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// LedgerHandler exposes balance, audit history and point adjustments.
type LedgerHandler struct {
	service ledger.Service
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(s ledger.Service) *LedgerHandler {
	return &LedgerHandler{service: s}
}

// Balance handles GET /api/users/:id/balance.
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	balance, err := h.service.Balance(c.Context(), id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"userId": id, "balance": balance})
}

// History handles GET /api/users/:id/ledger?limit=&offset=.
func (h *LedgerHandler) History(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	entries, err := h.service.History(c.Context(), id, limit, offset)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"data": entries})
}

// Adjust handles POST /api/users/:id/points for manual adjust/earn/redeem
// events.
func (h *LedgerHandler) Adjust(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	var req struct {
		Change    int64  `json:"change"`
		EventType string `json:"eventType"`
		Reference string `json:"reference"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	eventType, err := models.ParseEventType(req.EventType)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	entry, err := h.service.Adjust(c.Context(), id, req.Change, eventType, req.Reference)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
}

func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domainerr.ErrUserNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domainerr.ErrInsufficientPoints):
		return response.Conflict(c, domainerr.ErrInsufficientPoints.Code, err.Error())
	case errors.Is(err, ledger.ErrInvalidChange),
		errors.Is(err, ledger.ErrInvalidEventType):
		return response.BadRequest(c, err.Error())
	}
	return response.ServerError(c, err.Error())
}
