// Package middleware provides HTTP middleware components for the application.
// It includes authentication and authorization middleware for the fiber web
// framework.
package middleware

import (
	"strings"

	"cardbank/internal/models"
	"cardbank/internal/services/auth"
	"cardbank/internal/services/authz"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthMiddleware validates bearer tokens and stores the resolved caller
// identity in the request context. Everything downstream works with plain
// claims; no service parses tokens itself.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Handler validates the Authorization header and attaches UserClaims to the
// request locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		logrus.WithError(err).Debug("token validation failed")
		return utils.Unauthorized(c, "invalid token")
	}

	// The token may outlive the account; reject tokens of deleted users.
	if _, err := m.authService.GetUserByID(c.Context(), claims.UserID); err != nil {
		logrus.WithField("user_id", claims.UserID).Debug("token user no longer exists")
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals("claims", claims)
	return c.Next()
}

// AdminRequired rejects requests whose claims lack the ADMIN role.
func AdminRequired(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if err := authz.AssertAdmin(claims.Roles); err != nil {
		return utils.Forbidden(c, err.Error())
	}
	return c.Next()
}
