package handlers

import (
	"errors"
	"strconv"

	domainerr "pointbank/internal/errors"
	"pointbank/internal/models"
	"pointbank/internal/repositories"
	"pointbank/internal/services/user"
	"pointbank/internal/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler exposes member profile CRUD.
type UserHandler struct {
	service user.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(s user.Service) *UserHandler {
	return &UserHandler{service: s}
}

// Register handles POST /api/users.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	created, err := h.service.Register(c.Context(), &input)
	if err != nil {
		return userError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": created})
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	found, err := h.service.Get(c.Context(), id)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(fiber.Map{"user": found})
}

// Update handles PUT /api/users/:id.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	var input models.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	updated, err := h.service.Update(c.Context(), id, &input)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(fiber.Map{"user": updated})
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return userError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List handles GET /api/users?limit=&offset=.
func (h *UserHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	users, total, err := h.service.List(c.Context(), limit, offset)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(fiber.Map{"data": users, "total": total})
}

func parseUserID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid user id")
	}
	return uint(id), nil
}

func userError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, domainerr.ErrUserNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, repositories.ErrDuplicateEmail),
		errors.Is(err, repositories.ErrDuplicatePhone):
		return response.Conflict(c, "DUPLICATE_USER", err.Error())
	case errors.As(err, &verrs):
		return response.BadRequest(c, verrs.Error())
	}
	return response.ServerError(c, err.Error())
}
