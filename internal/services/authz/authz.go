// Package authz holds the ownership and role checks enforced before any
// balance or status mutation. The checks are pure: they take an already
// resolved caller identity as plain arguments and touch no shared state,
// so they are trivially testable without a running server.
package authz

import (
	"errors"

	"cardbank/internal/models"
)

var (
	ErrNotCardOwner  = errors.New("caller does not own this card")
	ErrAdminRequired = errors.New("admin role required")
)

// AssertOwnsCard fails with ErrNotCardOwner unless the card belongs to the
// caller.
func AssertOwnsCard(callerID uint, card *models.Card) error {
	if card.UserID != callerID {
		return ErrNotCardOwner
	}
	return nil
}

// AssertAdmin fails with ErrAdminRequired unless the role set contains ADMIN.
func AssertAdmin(roles []models.Role) error {
	for _, r := range roles {
		if r == models.RoleAdmin {
			return nil
		}
	}
	return ErrAdminRequired
}
