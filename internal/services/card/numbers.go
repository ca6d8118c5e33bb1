package card

import (
	"crypto/rand"
	"strconv"
)

const cardNumberLength = 16

// generateCardNumber produces a random 16-digit card number.
// Uniqueness against existing cards is not enforced; collisions are possible.
// TODO: reject duplicates once the registry gets a lookup-by-number index.
func generateCardNumber() (string, error) {
	buf := make([]byte, cardNumberLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	var number string
	for _, b := range buf {
		number += strconv.Itoa(int(b) % 10)
	}
	return number, nil
}

// isDigits reports whether s consists solely of ASCII digits.
func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
