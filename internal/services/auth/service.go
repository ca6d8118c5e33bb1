package auth

import (
	"context"
	"errors"

	"cardbank/internal/models"
	"cardbank/internal/repositories"
	"cardbank/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid refresh token")
)

// Service handles registration and token issuance. The card and transfer
// services never see tokens; they receive the resolved caller identity.
type Service interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (string, string, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type service struct {
	users repositories.UserRepository
}

func NewService(users repositories.UserRepository) Service {
	return &service{users: users}
}

func (s *service) Register(ctx context.Context, username, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.User{
		Username: username,
		Password: string(hashed),
		Roles:    []models.UserRole{{Role: models.RoleUser}},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*models.User, string, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		logrus.WithField("username", username).Warn("login failed: user not found")
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logrus.WithField("user_id", user.ID).Warn("login failed: wrong password")
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.RoleSet(),
	})
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	// Re-read the user so revoked roles drop out of the new tokens.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.RoleSet(),
	})
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *service) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
