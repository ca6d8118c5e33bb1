package card

import (
	"context"
	"fmt"
	"time"

	"cardbank/internal/models"
	"cardbank/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const expiryYears = 3

type service struct {
	cards repositories.CardRepository
	users UserResolver
}

// NewService creates a new card registry service.
func NewService(cards repositories.CardRepository, users UserResolver) Service {
	if cards == nil {
		panic("card repository is required")
	}
	if users == nil {
		panic("user resolver is required")
	}
	return &service{cards: cards, users: users}
}

func (s *service) Create(ctx context.Context, ownerID uint) (*models.Card, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	number, err := generateCardNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate card number: %w", err)
	}

	card := &models.Card{
		CardNumber:   number,
		MaskedNumber: models.MaskCardNumber(number),
		ExpiryDate:   time.Now().AddDate(expiryYears, 0, 0),
		Status:       models.CardStatusActive,
		Balance:      decimal.Zero,
		UserID:       ownerID,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"card_id": card.ID,
		"user_id": ownerID,
	}).Info("card created")
	return card, nil
}

func (s *service) CreateForUser(ctx context.Context, ownerID uint, input CreateCardInput) (*models.Card, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if len(input.CardNumber) != cardNumberLength || !isDigits(input.CardNumber) {
		return nil, ErrInvalidCardNumber
	}

	// Status is forced ACTIVE and balance starts at zero regardless of input.
	card := &models.Card{
		CardNumber:   input.CardNumber,
		MaskedNumber: models.MaskCardNumber(input.CardNumber),
		ExpiryDate:   time.Now().AddDate(expiryYears, 0, 0),
		Status:       models.CardStatusActive,
		Balance:      decimal.Zero,
		UserID:       ownerID,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"card_id": card.ID,
		"user_id": ownerID,
	}).Info("card created by admin")
	return card, nil
}

func (s *service) GetByID(ctx context.Context, cardID uint) (*models.Card, error) {
	return s.cards.GetByID(ctx, cardID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID uint, search string, limit, offset int) (*Page, error) {
	cards, total, err := s.cards.ListByOwner(ctx, ownerID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Page{Cards: cards, Total: total}, nil
}

func (s *service) ListAll(ctx context.Context, limit, offset int) (*Page, error) {
	cards, total, err := s.cards.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Page{Cards: cards, Total: total}, nil
}

func (s *service) SearchByNumber(ctx context.Context, numberPart string, limit, offset int) (*Page, error) {
	cards, total, err := s.cards.SearchByNumber(ctx, numberPart, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Page{Cards: cards, Total: total}, nil
}

func (s *service) ListByStatus(ctx context.Context, status string, limit, offset int) (*Page, error) {
	if status != models.CardStatusActive && status != models.CardStatusBlocked {
		return nil, ErrInvalidStatus
	}
	cards, total, err := s.cards.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Page{Cards: cards, Total: total}, nil
}

func (s *service) SetStatus(ctx context.Context, cardID uint, status string) (*models.Card, error) {
	if status != models.CardStatusActive && status != models.CardStatusBlocked {
		return nil, ErrInvalidStatus
	}
	if err := s.cards.UpdateStatus(ctx, cardID, status); err != nil {
		return nil, err
	}
	return s.cards.GetByID(ctx, cardID)
}

func (s *service) Delete(ctx context.Context, cardID uint) error {
	if _, err := s.cards.GetByID(ctx, cardID); err != nil {
		return err
	}

	// Deletion with outstanding block-request history would orphan the audit
	// trail; surface it as a conflict instead of relying on FK cascades.
	count, err := s.cards.CountBlockRequests(ctx, cardID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCardHasDependents
	}

	if err := s.cards.Delete(ctx, cardID); err != nil {
		return err
	}
	logrus.WithField("card_id", cardID).Info("card deleted")
	return nil
}
