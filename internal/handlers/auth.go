package handlers

import (
	"errors"

	"cardbank/internal/services/auth"
	"cardbank/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	user, err := h.authService.Register(c.Context(), req.Username, req.Password)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Created(c, fiber.Map{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	user, accessToken, refreshToken, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "invalid credentials")
		}
		return utils.InternalError(c, "login failed")
	}

	return utils.Success(c, fiber.Map{
		"id":            user.ID,
		"username":      user.Username,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	access, refresh, err := h.authService.RefreshTokens(c.Context(), req.RefreshToken)
	if err != nil {
		return utils.Unauthorized(c, "invalid refresh token")
	}

	return utils.Success(c, fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}
