package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/storedb/internal/services"
	"github.com/localnerve/storedb/internal/utils"
)

// UserHandler handles user routes
type UserHandler struct {
	Users *services.UserService
}

// ListUsers handles GET /users
// @Summary List users
// @Description Get every user
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// GetUser handles GET /users/:id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	user, err := h.Users.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// CreateUser handles POST /users
// @Summary Create a user
// @Description Create a user with a unique email
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.CreateUserInput true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var body services.CreateUserInput
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.Users.Create(c.UserContext(), body)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, user, fiber.StatusCreated)
}

// UpdateUser handles PUT /users/:id
// @Summary Update a user
// @Description Update the fields present in the body
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	var body services.UpdateUserInput
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.Users.Update(c.UserContext(), id, body)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// DeleteUser handles DELETE /users/:id
// @Summary Delete a user
// @Description Delete a user together with their orders. Products are kept.
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	if err := h.Users.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return utils.MessageResponse(c, "User deleted")
}
