package transfer

import (
	"context"

	"cardbank/internal/models"

	"github.com/shopspring/decimal"
)

// Request describes a transfer between two cards owned by the caller.
type Request struct {
	FromCardID uint            `json:"from_card_id" validate:"required"`
	ToCardID   uint            `json:"to_card_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	Message    string          `json:"message"`
}

// Result reports a completed transfer.
type Result struct {
	TransactionID string          `json:"transaction_id"`
	FromCardID    uint            `json:"from_card_id"`
	ToCardID      uint            `json:"to_card_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
}

// BalanceResponse is the read-only balance view of a single card.
type BalanceResponse struct {
	CardID       uint            `json:"card_id"`
	MaskedNumber string          `json:"masked_number"`
	Balance      decimal.Decimal `json:"balance"`
}

// StatusCompleted is the terminal state of a successful transfer.
const StatusCompleted = "COMPLETED"

// UserResolver is the slice of the user repository the engine needs to
// resolve the caller on block requests.
type UserResolver interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// Service executes every balance- or status-affecting operation a card owner
// may perform. All mutations run inside a single database transaction.
type Service interface {
	Transfer(ctx context.Context, callerID uint, req Request) (*Result, error)
	BlockCard(ctx context.Context, callerID, cardID uint, reason string) (*models.Card, error)
	GetCardBalance(ctx context.Context, callerID, cardID uint) (*BalanceResponse, error)
}
