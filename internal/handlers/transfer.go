package handlers

import (
	"errors"
	"strconv"

	domainerr "pointbank/internal/errors"
	"pointbank/internal/models"
	"pointbank/internal/services/transfer"
	"pointbank/internal/utils/pagination"
	"pointbank/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes the point transfer endpoints.
type TransferHandler struct {
	service transfer.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service) *TransferHandler {
	return &TransferHandler{service: s}
}

// Create handles POST /api/transfers. A transfer that processed but ended in
// the failed state still returns 201: the record was created and the body
// carries the status and failReason.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var req models.CreateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	result, err := h.service.Create(c.Context(), &req)
	if err != nil {
		return transferError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transfer": result})
}

// Get handles GET /api/transfers/:idemKey.
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	result, err := h.service.Get(c.Context(), c.Params("idemKey"))
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(fiber.Map{"transfer": result})
}

// List handles GET /api/transfers?userId=&page=&pageSize=.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 32)
	if err != nil || userID == 0 {
		return response.BadRequest(c, "userId query parameter is required")
	}

	p := pagination.ParseFromRequest(c)
	result, listErr := h.service.List(c.Context(), uint(userID), p.Page, p.PageSize)
	if listErr != nil {
		return transferError(c, listErr)
	}
	return c.JSON(result)
}

// transferError maps domain errors onto HTTP statuses: validation 400,
// same-user 422, insufficient points 409, not found 404, anything else 500.
func transferError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domainerr.ErrSameUser):
		return response.UnprocessableEntity(c, domainerr.ErrSameUser.Code, err.Error())
	case errors.Is(err, domainerr.ErrInsufficientPoints):
		return response.Conflict(c, domainerr.ErrInsufficientPoints.Code, err.Error())
	case errors.Is(err, domainerr.ErrUserNotFound),
		errors.Is(err, domainerr.ErrTransferNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrNoteTooLong),
		errors.Is(err, domainerr.ErrInvalidUserID),
		errors.Is(err, domainerr.ErrInvalidPage),
		errors.Is(err, domainerr.ErrInvalidPageSize):
		return response.BadRequest(c, err.Error())
	}
	return response.ServerError(c, err.Error())
}
