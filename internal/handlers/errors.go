package handlers

import (
	"errors"

	"cardbank/internal/repositories"
	"cardbank/internal/services/authz"
	"cardbank/internal/services/card"
	"cardbank/internal/services/transfer"
	"cardbank/internal/services/user"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// mapServiceError translates service error kinds into HTTP responses.
// Missing entity -> 404, ownership/role failure -> 403, validation or state
// failure -> 400, delete-with-dependents -> 409, anything else -> 500.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrCardNotFound),
		errors.Is(err, repositories.ErrUserNotFound):
		return utils.NotFound(c, err.Error())

	case errors.Is(err, authz.ErrNotCardOwner),
		errors.Is(err, authz.ErrAdminRequired):
		return utils.Forbidden(c, err.Error())

	case errors.Is(err, transfer.ErrSameCard),
		errors.Is(err, transfer.ErrInvalidAmount),
		errors.Is(err, transfer.ErrInsufficientFunds),
		errors.Is(err, transfer.ErrCardNotActive),
		errors.Is(err, card.ErrInvalidCardNumber),
		errors.Is(err, card.ErrInvalidStatus),
		errors.Is(err, user.ErrInvalidRole):
		return utils.BadRequest(c, err.Error())

	case errors.Is(err, card.ErrCardHasDependents):
		return utils.Conflict(c, err.Error())

	default:
		return utils.InternalError(c, err.Error())
	}
}
