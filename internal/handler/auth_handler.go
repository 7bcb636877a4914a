package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/middleware"
	"flowx-relief/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type authResult struct {
	User *domain.User `json:"user"`
	*domain.TokenPair
}

// Register creates a citizen account, or a staff account when the route
// carries a :role.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := bind(c, &input); err != nil {
		return err
	}
	input.Role = domain.RoleCitizen
	if role := c.Params("role"); role != "" {
		input.Role = domain.Role(role)
		if !input.Role.IsValid() || input.Role == domain.RoleCitizen {
			return middleware.NotFound("Unknown registration type")
		}
	}

	user, tokens, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, "Registration successful", authResult{User: user, TokenPair: tokens})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := bind(c, &input); err != nil {
		return err
	}

	user, tokens, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "Login successful", authResult{User: user, TokenPair: tokens})
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input refreshInput
	if err := bind(c, &input); err != nil {
		return err
	}

	tokens, err := h.authService.RefreshToken(c.UserContext(), input.RefreshToken)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "Token refreshed", tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input refreshInput
	if err := bind(c, &input); err != nil {
		return err
	}

	if err := h.authService.Logout(c.UserContext(), input.RefreshToken); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}
	return respond(c, fiber.StatusOK, "OK", user)
}
