package authz

import (
	"testing"

	"cardbank/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAssertOwnsCard(t *testing.T) {
	card := &models.Card{ID: 7, UserID: 42}

	assert.NoError(t, AssertOwnsCard(42, card))
	assert.ErrorIs(t, AssertOwnsCard(43, card), ErrNotCardOwner)
}

func TestAssertAdmin(t *testing.T) {
	tests := []struct {
		name    string
		roles   []models.Role
		wantErr error
	}{
		{"admin only", []models.Role{models.RoleAdmin}, nil},
		{"admin among others", []models.Role{models.RoleUser, models.RoleAdmin}, nil},
		{"user only", []models.Role{models.RoleUser}, ErrAdminRequired},
		{"empty set", nil, ErrAdminRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertAdmin(tt.roles)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
