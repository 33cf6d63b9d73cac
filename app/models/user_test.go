package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveLogin(t *testing.T) {
	tests := []struct {
		name    string
		contact string
		want    string
	}{
		{"email takes local part", "ivan@example.com", "ivan"},
		{"email with dots", "ivan.petrov@mail.ru", "ivan.petrov"},
		{"phone stays as is", "+79001234567", "+79001234567"},
		{"whitespace trimmed", "  anna@example.com ", "anna"},
		{"leading at kept whole", "@weird", "@weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveLogin(tt.contact))
		})
	}
}

func TestCreateUserFromEmail(t *testing.T) {
	u, err := CreateUser("ivan", "ivan@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "ivan", u.Login)
	assert.NotNil(t, u.Email)
	assert.Equal(t, "ivan@example.com", *u.Email)
	assert.Empty(t, u.Phone)
	assert.True(t, u.IsActive)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserFromPhone(t *testing.T) {
	u, err := CreateUser("+79001234567", "+79001234567", "secret123")
	assert.NoError(t, err)
	assert.Nil(t, u.Email)
	assert.Equal(t, "+79001234567", u.Phone)
}

func TestCreateUserRejectsBadEmail(t *testing.T) {
	_, err := CreateUser("x1y", "not-an-email@", "secret123")
	assert.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	u := &User{}
	assert.NoError(t, u.SetPassword("newpass"))
	assert.True(t, u.CheckPassword("newpass"))
	assert.NotEqual(t, "newpass", u.PasswordHash)
}
