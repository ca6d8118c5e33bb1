package repositories

import (
	"context"
	"errors"
	"fmt"

	"cardbank/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (r *cardRepository) GetByID(ctx context.Context, id uint) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

func (r *cardRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&card, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to lock card: %w", err)
	}
	return &card, nil
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Save(card).Error; err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	return nil
}

func (r *cardRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update card status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Card{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *cardRepository) ListByOwner(ctx context.Context, ownerID uint, search string, limit, offset int) ([]models.Card, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Card{}).Where("user_id = ?", ownerID)
	if search != "" {
		query = query.Where("card_number LIKE ?", "%"+search+"%")
	}
	return r.paginate(query, limit, offset)
}

func (r *cardRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Card, int64, error) {
	return r.paginate(r.db.WithContext(ctx).Model(&models.Card{}), limit, offset)
}

func (r *cardRepository) SearchByNumber(ctx context.Context, numberPart string, limit, offset int) ([]models.Card, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Card{}).
		Where("card_number LIKE ?", "%"+numberPart+"%")
	return r.paginate(query, limit, offset)
}

func (r *cardRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Card, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Card{}).Where("status = ?", status)
	return r.paginate(query, limit, offset)
}

func (r *cardRepository) paginate(query *gorm.DB, limit, offset int) ([]models.Card, int64, error) {
	var cards []models.Card
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}
	err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&cards).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, total, nil
}

func (r *cardRepository) CreateBlockRequest(ctx context.Context, req *models.CardBlockRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create block request: %w", err)
	}
	return nil
}

func (r *cardRepository) CountBlockRequests(ctx context.Context, cardID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CardBlockRequest{}).
		Where("card_id = ?", cardID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count block requests: %w", err)
	}
	return count, nil
}

func (r *cardRepository) DeleteBlockRequestsByCard(ctx context.Context, cardID uint) error {
	err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Delete(&models.CardBlockRequest{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete block requests: %w", err)
	}
	return nil
}

func (r *cardRepository) ExecuteInTransaction(fn func(CardRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&cardRepository{db: tx})
	})
}
