package handlers

import (
	"cardbank/internal/services/transfer"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes the transfer-between-own-cards endpoint.
type TransferHandler struct {
	service transfer.Service
}

func NewTransferHandler(s transfer.Service) *TransferHandler {
	return &TransferHandler{service: s}
}

// Transfer handles POST /user/transfer/transfer.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var req transfer.Request
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	result, err := h.service.Transfer(c.Context(), claims.UserID, req)
	if err != nil {
		return mapServiceError(c, err)
	}
	return utils.Success(c, result)
}
