package transfer

import (
	"errors"
	"fmt"
)

// Service errors
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrSameCard          = errors.New("source and destination cards must be different")
	ErrInsufficientFunds = errors.New("insufficient funds on source card")
	ErrCardNotActive     = errors.New("card is not active")
)

// wrapSide prefixes card lookup failures with the side of the transfer they
// belong to, keeping the original error matchable with errors.Is.
func wrapSide(side string, err error) error {
	return fmt.Errorf("%s card: %w", side, err)
}
