package handlers

import (
	"cardbank/internal/models"
	"cardbank/internal/services/card"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminCardHandler exposes the administrator card endpoints. Routes are
// guarded by the admin middleware; handlers only translate requests.
type AdminCardHandler struct {
	cardService card.Service
}

func NewAdminCardHandler(cardService card.Service) *AdminCardHandler {
	return &AdminCardHandler{cardService: cardService}
}

// CreateCardForUser handles POST /admin/cards/user/:id.
func (h *AdminCardHandler) CreateCardForUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return utils.BadRequest(c, "invalid user id")
	}

	var input card.CreateCardInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	newCard, err := h.cardService.CreateForUser(c.Context(), uint(userID), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return utils.Created(c, newCard)
}

// GetCards handles GET /admin/cards with optional number search and status
// filter.
func (h *AdminCardHandler) GetCards(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c, 1, 10)

	var page *card.Page
	var err error
	switch {
	case c.Query("search") != "":
		page, err = h.cardService.SearchByNumber(c.Context(), c.Query("search"), pagination.Limit, pagination.Offset)
	case c.Query("status") != "":
		page, err = h.cardService.ListByStatus(c.Context(), c.Query("status"), pagination.Limit, pagination.Offset)
	default:
		page, err = h.cardService.ListAll(c.Context(), pagination.Limit, pagination.Offset)
	}
	if err != nil {
		return mapServiceError(c, err)
	}

	pagination.SetTotal(page.Total)
	return utils.Success(c, utils.NewPaginatedResponse(page.Cards, pagination))
}

// GetUserCards handles GET /admin/cards/user/:id.
func (h *AdminCardHandler) GetUserCards(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return utils.BadRequest(c, "invalid user id")
	}

	pagination := utils.GetPagination(c, 1, 10)
	page, err := h.cardService.ListByOwner(c.Context(), uint(userID), "", pagination.Limit, pagination.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	pagination.SetTotal(page.Total)
	return utils.Success(c, utils.NewPaginatedResponse(page.Cards, pagination))
}

// GetCard handles GET /admin/cards/:id.
func (h *AdminCardHandler) GetCard(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID < 1 {
		return utils.BadRequest(c, "invalid card id")
	}

	found, err := h.cardService.GetByID(c.Context(), uint(cardID))
	if err != nil {
		return mapServiceError(c, err)
	}
	return utils.Success(c, found)
}

// BlockCard handles PATCH /admin/cards/:id/block.
func (h *AdminCardHandler) BlockCard(c *fiber.Ctx) error {
	return h.setStatus(c, models.CardStatusBlocked)
}

// ActivateCard handles PATCH /admin/cards/:id/activate.
func (h *AdminCardHandler) ActivateCard(c *fiber.Ctx) error {
	return h.setStatus(c, models.CardStatusActive)
}

func (h *AdminCardHandler) setStatus(c *fiber.Ctx, status string) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID < 1 {
		return utils.BadRequest(c, "invalid card id")
	}

	updated, err := h.cardService.SetStatus(c.Context(), uint(cardID), status)
	if err != nil {
		return mapServiceError(c, err)
	}
	return utils.Success(c, updated)
}

// DeleteCard handles DELETE /admin/cards/:id.
func (h *AdminCardHandler) DeleteCard(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID < 1 {
		return utils.BadRequest(c, "invalid card id")
	}

	if err := h.cardService.Delete(c.Context(), uint(cardID)); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
