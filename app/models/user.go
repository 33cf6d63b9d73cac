package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Login        string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"login" validate:"required,min=3,max=150"`
	Email        *string   `gorm:"type:varchar(200);uniqueIndex" json:"email,omitempty" validate:"omitempty,email"`
	Phone        string    `gorm:"type:varchar(32);index" json:"phone,omitempty"`
	PasswordHash string    `gorm:"type:text;not null" json:"-" validate:"required"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a user from a single contact field (email or phone) and a
// password. The login is derived from the contact; uniqueness suffixing is the
// caller's job because it needs DB access.
func CreateUser(login, contact, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Login:        login,
		PasswordHash: pw,
		IsActive:     true,
	}
	if strings.Contains(contact, "@") {
		email := strings.TrimSpace(contact)
		u.Email = &email
	} else {
		u.Phone = strings.TrimSpace(contact)
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hashedPassword
	return nil
}

// EmailOrEmpty returns the email value or empty string when unset.
func (u *User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// DeriveLogin produces the base login for a registration contact: the local
// part for emails, the raw value for phone numbers.
func DeriveLogin(contact string) string {
	contact = strings.TrimSpace(contact)
	if at := strings.Index(contact, "@"); at > 0 {
		return contact[:at]
	}
	return contact
}
