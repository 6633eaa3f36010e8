package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/emplatform/employee-management-api/internal/constants"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInviteToken generates a random registration token of
// uppercase letters and digits.
func GenerateInviteToken() (string, error) {
	bytes := make([]byte, constants.InviteTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	for i, b := range bytes {
		bytes[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(bytes), nil
}
