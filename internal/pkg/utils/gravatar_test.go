package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetGravatarURL(t *testing.T) {
	plain := GetGravatarURL("user@example.com", 80)
	assert.Contains(t, plain, "https://www.gravatar.com/avatar/")
	assert.Contains(t, plain, "s=80")
	assert.Contains(t, plain, "d=mp")

	// Gravatar hashes the normalized address, so case and padding
	// must not change the URL.
	assert.Equal(t, plain, GetGravatarURL("  USER@Example.COM ", 80))

	assert.Contains(t, GetGravatarURL("user@example.com", 0), "s=200")
}
