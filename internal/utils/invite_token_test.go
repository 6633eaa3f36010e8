package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateInviteToken(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{10}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateInviteToken()
		require.NoError(t, err)
		require.Regexp(t, pattern, token)
		seen[token] = true
	}

	// 100 draws from a 36^10 space must not all collide.
	require.Greater(t, len(seen), 1)
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"first.last@example.com",
		"user+tag@sub.example.org",
	}
	for _, s := range valid {
		require.True(t, IsValidEmail(s), s)
	}

	invalid := []string{
		"",
		"plain",
		"no-domain@",
		"@no-local.com",
		"spaces in@local.com",
		"missing-tld@host",
	}
	for _, s := range invalid {
		require.False(t, IsValidEmail(s), s)
	}
}
