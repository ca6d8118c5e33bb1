package handlers

import (
	"cardbank/internal/models"
	"cardbank/internal/services/user"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminUserHandler exposes the administrator user-management endpoints.
type AdminUserHandler struct {
	userService user.Service
}

func NewAdminUserHandler(userService user.Service) *AdminUserHandler {
	return &AdminUserHandler{userService: userService}
}

// GetUsers handles GET /admin/users.
func (h *AdminUserHandler) GetUsers(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c, 1, 10)

	page, err := h.userService.List(c.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	pagination.SetTotal(page.Total)
	return utils.Success(c, utils.NewPaginatedResponse(toUserResponses(page.Users), pagination))
}

// GetUser handles GET /admin/users/:id.
func (h *AdminUserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return utils.BadRequest(c, "invalid user id")
	}

	found, err := h.userService.GetByID(c.Context(), uint(userID))
	if err != nil {
		return mapServiceError(c, err)
	}
	return utils.Success(c, toUserResponse(found))
}

// UpdateRoles handles PUT /admin/users/:id/roles.
func (h *AdminUserHandler) UpdateRoles(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return utils.BadRequest(c, "invalid user id")
	}

	var req struct {
		Roles []models.Role `json:"roles" validate:"required,min=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	updated, err := h.userService.UpdateRoles(c.Context(), uint(userID), req.Roles)
	if err != nil {
		return mapServiceError(c, err)
	}
	return utils.Success(c, toUserResponse(updated))
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *AdminUserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return utils.BadRequest(c, "invalid user id")
	}

	if err := h.userService.Delete(c.Context(), uint(userID)); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type userResponse struct {
	ID       uint          `json:"id"`
	Username string        `json:"username"`
	Roles    []models.Role `json:"roles"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Roles:    u.RoleSet(),
	}
}

func toUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
