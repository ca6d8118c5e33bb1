// Package user provides administrator-level user management.
package user

import (
	"context"
	"errors"

	"cardbank/internal/models"
	"cardbank/internal/repositories"

	"github.com/sirupsen/logrus"
)

var ErrInvalidRole = errors.New("invalid role")

// Page holds a slice of a paginated user listing plus the total row count.
type Page struct {
	Users []models.User
	Total int64
}

type Service interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, limit, offset int) (*Page, error)
	UpdateRoles(ctx context.Context, id uint, roles []models.Role) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	users repositories.UserRepository
}

func NewService(users repositories.UserRepository) Service {
	return &service{users: users}
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) (*Page, error) {
	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Page{Users: users, Total: total}, nil
}

func (s *service) UpdateRoles(ctx context.Context, id uint, roles []models.Role) (*models.User, error) {
	for _, r := range roles {
		if r != models.RoleAdmin && r != models.RoleUser {
			return nil, ErrInvalidRole
		}
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.users.ReplaceRoles(ctx, id, roles); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": id,
		"roles":   roles,
	}).Info("user roles updated")
	return s.users.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithField("user_id", id).Info("user deleted")
	return nil
}
