package card

import "errors"

// Service errors
var (
	ErrInvalidCardNumber = errors.New("card number must be 16 digits")
	ErrInvalidStatus     = errors.New("invalid card status")
	ErrCardHasDependents = errors.New("card has dependent records")
)
