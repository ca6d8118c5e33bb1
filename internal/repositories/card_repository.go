package repositories

import (
	"context"
	"errors"

	"cardbank/internal/models"
)

var (
	ErrCardNotFound = errors.New("card not found")
	ErrUserNotFound = errors.New("user not found")
)

// CardRepository defines card and block-request persistence operations.
// ExecuteInTransaction yields a repository bound to the transaction so multi-row
// updates (transfers, block + audit) commit or roll back as one unit.
type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id uint) (*models.Card, error)
	// GetByIDForUpdate reads a card under a row lock. Only valid inside
	// ExecuteInTransaction; callers must acquire locks in ascending id order.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Card, error)
	Update(ctx context.Context, card *models.Card) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error

	ListByOwner(ctx context.Context, ownerID uint, search string, limit, offset int) ([]models.Card, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Card, int64, error)
	SearchByNumber(ctx context.Context, numberPart string, limit, offset int) ([]models.Card, int64, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Card, int64, error)

	CreateBlockRequest(ctx context.Context, req *models.CardBlockRequest) error
	CountBlockRequests(ctx context.Context, cardID uint) (int64, error)
	DeleteBlockRequestsByCard(ctx context.Context, cardID uint) error

	ExecuteInTransaction(fn func(CardRepository) error) error
}
