package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Card statuses
const (
	CardStatusActive  = "ACTIVE"
	CardStatusBlocked = "BLOCKED"
)

// Card represents a payment card. Number, mask, expiry and owner are fixed at
// creation; only status and balance change afterwards.
type Card struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	CardNumber   string          `gorm:"not null;index" json:"-"`
	MaskedNumber string          `gorm:"not null" json:"masked_number"`
	ExpiryDate   time.Time       `gorm:"not null" json:"expiry_date"`
	Status       string          `gorm:"not null;default:'ACTIVE'" json:"status"`
	Balance      decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"balance"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	// The mask is always derived from the full number, never set independently.
	c.MaskedNumber = MaskCardNumber(c.CardNumber)
	return nil
}

// MaskCardNumber returns the display form of a 16-digit card number,
// exposing only the last four digits.
func MaskCardNumber(number string) string {
	if len(number) < 4 {
		return number
	}
	return "**** **** **** " + number[len(number)-4:]
}

// CardBlockRequest is the append-only audit record of a user-initiated block.
type CardBlockRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CardID    uint      `gorm:"not null;index" json:"card_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
