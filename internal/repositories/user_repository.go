package repositories

import (
	"context"

	"cardbank/internal/models"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, int64, error)
	ReplaceRoles(ctx context.Context, userID uint, roles []models.Role) error
	// Delete removes the user together with owned cards and their
	// block-request history, all in one transaction. The cascade is explicit
	// rather than delegated to foreign-key constraints.
	Delete(ctx context.Context, id uint) error
}
