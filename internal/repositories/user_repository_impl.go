package repositories

import (
	"context"
	"errors"
	"fmt"

	"cardbank/internal/models"
	"cardbank/internal/repositories/cache"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewUserRepository(db *gorm.DB, cacheService *cache.CacheService) UserRepository {
	return &userRepository{db: db, cache: cacheService}
}

func userCacheKeyByID(id uint) string {
	return fmt.Sprintf("user:id:%d", id)
}

func userCacheKeyByUsername(username string) string {
	return fmt.Sprintf("user:username:%s", username)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	var existing models.User
	err := r.db.WithContext(ctx).
		Where("username = ?", user.Username).
		First(&existing).Error
	if err == nil {
		return fmt.Errorf("user with username %s already exists", user.Username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	cacheKey := userCacheKeyByID(id)
	var cached models.User
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, &user); err != nil {
		logrus.WithError(err).Debug("failed to cache user by id")
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	cacheKey := userCacheKeyByUsername(username)
	var cached models.User
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, &user); err != nil {
		logrus.WithError(err).Debug("failed to cache user by username")
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Order("id ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (r *userRepository) ReplaceRoles(ctx context.Context, userID uint, roles []models.Role) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		for _, role := range roles {
			if err := tx.Create(&models.UserRole{UserID: userID, Role: role}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace roles: %w", err)
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cardIDs []uint
		if err := tx.Model(&models.Card{}).
			Where("user_id = ?", id).
			Pluck("id", &cardIDs).Error; err != nil {
			return err
		}
		if len(cardIDs) > 0 {
			if err := tx.Where("card_id IN ?", cardIDs).
				Delete(&models.CardBlockRequest{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).
				Delete(&models.Card{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	r.invalidate(ctx, id)
	if err := r.cache.Delete(ctx, userCacheKeyByUsername(user.Username)); err != nil {
		logrus.WithError(err).Debug("failed to invalidate username cache")
	}
	return nil
}

func (r *userRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, userCacheKeyByID(id)); err != nil {
		logrus.WithError(err).Debug("failed to invalidate user cache")
	}
}
