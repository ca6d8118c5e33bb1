package handlers

import (
	"cardbank/internal/models"
	"cardbank/internal/services/card"
	"cardbank/internal/services/transfer"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// UserCardHandler exposes the self-service card endpoints.
type UserCardHandler struct {
	cardService     card.Service
	transferService transfer.Service
}

func NewUserCardHandler(cardService card.Service, transferService transfer.Service) *UserCardHandler {
	return &UserCardHandler{
		cardService:     cardService,
		transferService: transferService,
	}
}

// extractUserClaims is a helper to pull the resolved caller from the context.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// CreateCard handles POST /user/cards/create.
func (h *UserCardHandler) CreateCard(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	newCard, err := h.cardService.Create(c.Context(), claims.UserID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return utils.Success(c, newCard)
}

// GetCards handles GET /user/cards with optional search and pagination.
func (h *UserCardHandler) GetCards(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	pagination := utils.GetPagination(c, 1, 10)
	search := c.Query("search")

	page, err := h.cardService.ListByOwner(c.Context(), claims.UserID, search, pagination.Limit, pagination.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	pagination.SetTotal(page.Total)
	return utils.Success(c, utils.NewPaginatedResponse(page.Cards, pagination))
}

// BlockCard handles POST /user/cards/block.
func (h *UserCardHandler) BlockCard(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var req struct {
		CardID  uint   `json:"card_id" validate:"required"`
		Message string `json:"message" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	blocked, err := h.transferService.BlockCard(c.Context(), claims.UserID, req.CardID, req.Message)
	if err != nil {
		return mapServiceError(c, err)
	}
	return utils.Success(c, blocked)
}

// GetBalance handles GET /user/cards/:id/balance.
func (h *UserCardHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	cardID, err := c.ParamsInt("id")
	if err != nil || cardID < 1 {
		return utils.BadRequest(c, "invalid card id")
	}

	balance, err := h.transferService.GetCardBalance(c.Context(), claims.UserID, uint(cardID))
	if err != nil {
		return mapServiceError(c, err)
	}
	return utils.Success(c, balance)
}
