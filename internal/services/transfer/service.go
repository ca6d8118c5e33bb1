package transfer

import (
	"context"

	"cardbank/internal/models"
	"cardbank/internal/repositories"
	"cardbank/internal/services/authz"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type service struct {
	cards repositories.CardRepository
	users UserResolver
}

// NewService creates a new transfer engine instance.
func NewService(cards repositories.CardRepository, users UserResolver) Service {
	if cards == nil {
		panic("card repository is required")
	}
	if users == nil {
		panic("user resolver is required")
	}
	return &service{cards: cards, users: users}
}

// Transfer moves funds between two cards owned by the caller. The debit and
// credit are applied under one database transaction with both card rows
// locked in ascending id order, so opposite-direction transfers cannot
// deadlock and concurrent transfers cannot drive a balance negative.
func (s *service) Transfer(ctx context.Context, callerID uint, req Request) (*Result, error) {
	if req.FromCardID == req.ToCardID {
		return nil, ErrSameCard
	}
	if req.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *Result
	err := s.cards.ExecuteInTransaction(func(tx repositories.CardRepository) error {
		fromCard, toCard, err := lockPair(ctx, tx, req.FromCardID, req.ToCardID)
		if err != nil {
			return err
		}

		if err := authz.AssertOwnsCard(callerID, fromCard); err != nil {
			return err
		}
		if err := authz.AssertOwnsCard(callerID, toCard); err != nil {
			return err
		}
		if fromCard.Balance.LessThan(req.Amount) {
			return ErrInsufficientFunds
		}
		if fromCard.Status != models.CardStatusActive || toCard.Status != models.CardStatusActive {
			return ErrCardNotActive
		}

		fromCard.Balance = fromCard.Balance.Sub(req.Amount)
		toCard.Balance = toCard.Balance.Add(req.Amount)

		if err := tx.Update(ctx, fromCard); err != nil {
			return err
		}
		if err := tx.Update(ctx, toCard); err != nil {
			return err
		}

		result = &Result{
			TransactionID: uuid.NewString(),
			FromCardID:    req.FromCardID,
			ToCardID:      req.ToCardID,
			Amount:        req.Amount,
			Status:        StatusCompleted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": result.TransactionID,
		"from_card_id":   req.FromCardID,
		"to_card_id":     req.ToCardID,
		"amount":         req.Amount.String(),
	}).Info("transfer completed")
	return result, nil
}

// lockPair acquires row locks on both cards in ascending id order and returns
// them mapped back to (from, to).
func lockPair(ctx context.Context, tx repositories.CardRepository, fromID, toID uint) (*models.Card, *models.Card, error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := tx.GetByIDForUpdate(ctx, firstID)
	if err != nil {
		return nil, nil, wrapSide(sideOf(firstID, fromID), err)
	}
	second, err := tx.GetByIDForUpdate(ctx, secondID)
	if err != nil {
		return nil, nil, wrapSide(sideOf(secondID, fromID), err)
	}

	if first.ID == fromID {
		return first, second, nil
	}
	return second, first, nil
}

func sideOf(id, fromID uint) string {
	if id == fromID {
		return "source"
	}
	return "target"
}

// BlockCard marks an owned card BLOCKED and appends the audit record. The
// status change and the audit row commit in the same transaction; neither is
// ever observable without the other.
func (s *service) BlockCard(ctx context.Context, callerID, cardID uint, reason string) (*models.Card, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := authz.AssertOwnsCard(callerID, card); err != nil {
		return nil, err
	}

	err = s.cards.ExecuteInTransaction(func(tx repositories.CardRepository) error {
		locked, err := tx.GetByIDForUpdate(ctx, cardID)
		if err != nil {
			return err
		}
		locked.Status = models.CardStatusBlocked
		if err := tx.Update(ctx, locked); err != nil {
			return err
		}
		card = locked
		return tx.CreateBlockRequest(ctx, &models.CardBlockRequest{
			CardID:  card.ID,
			UserID:  user.ID,
			Message: reason,
		})
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"card_id": cardID,
		"user_id": callerID,
	}).Info("card blocked by owner")
	return card, nil
}

// GetCardBalance returns the balance of an owned card. Read-only.
func (s *service) GetCardBalance(ctx context.Context, callerID, cardID uint) (*BalanceResponse, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if err := authz.AssertOwnsCard(callerID, card); err != nil {
		return nil, err
	}
	return &BalanceResponse{
		CardID:       card.ID,
		MaskedNumber: card.MaskedNumber,
		Balance:      card.Balance,
	}, nil
}
