package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/middleware"
	"flowx-relief/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var input domain.UpdateProfileInput
	if err := bind(c, &input); err != nil {
		return err
	}

	updated, err := h.userService.UpdateProfile(c.UserContext(), actor.ID, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Profile updated", updated)
}

func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	var input struct {
		Active *bool `json:"active" validate:"required"`
	}
	if err := bind(c, &input); err != nil {
		return err
	}

	if err := h.userService.SetActive(c.UserContext(), actor, id, *input.Active); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "User updated", nil)
}
