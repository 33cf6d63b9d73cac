package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueAndValidate(t *testing.T) {
	now := time.Now()

	signed, err := Issue("u-123", "alice", now)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	claims, err := Validate(signed)
	assert.NoError(t, err)
	assert.Equal(t, "u-123", claims.Subject)
	assert.Equal(t, "alice", claims.Login)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	signed, err := Issue("u-123", "alice", time.Now().Add(-48*time.Hour))
	assert.NoError(t, err)

	_, err = Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
