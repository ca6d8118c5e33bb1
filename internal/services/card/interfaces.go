package card

import (
	"context"

	"cardbank/internal/models"
)

// CreateCardInput is the admin-supplied draft for creating a card on behalf of
// a user. Status and balance are never taken from the caller.
type CreateCardInput struct {
	CardNumber string `json:"card_number" validate:"required,len=16,numeric"`
}

// Page holds the slice of a paginated card listing plus the total row count.
type Page struct {
	Cards []models.Card
	Total int64
}

// Service is the card registry: creation and lookup of card records.
// Balance-changing operations live in the transfer service.
type Service interface {
	Create(ctx context.Context, ownerID uint) (*models.Card, error)
	CreateForUser(ctx context.Context, ownerID uint, input CreateCardInput) (*models.Card, error)
	GetByID(ctx context.Context, cardID uint) (*models.Card, error)
	ListByOwner(ctx context.Context, ownerID uint, search string, limit, offset int) (*Page, error)
	ListAll(ctx context.Context, limit, offset int) (*Page, error)
	SearchByNumber(ctx context.Context, numberPart string, limit, offset int) (*Page, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) (*Page, error)
	SetStatus(ctx context.Context, cardID uint, status string) (*models.Card, error)
	Delete(ctx context.Context, cardID uint) error
}

// UserResolver is the slice of the user repository the registry needs to
// verify that a card owner exists.
type UserResolver interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}
