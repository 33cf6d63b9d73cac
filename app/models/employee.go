package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "ADMIN"
	RoleAnalyst = "ANALYST"
	RoleSupport = "SUPPORT"
)

// Employee is a back-office account, authenticated against its own table and
// never mixed with regular users.
type Employee struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"email" validate:"required,email"`
	FullName     string    `gorm:"type:text;not null" json:"full_name" validate:"required"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Roles        []Role    `gorm:"many2many:employee_roles" json:"roles,omitempty"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

func (e *Employee) Validate() error {
	v := validator.New()

	return v.Struct(e)
}

// CheckPassword verifies if the provided password matches the stored hash
func (e *Employee) CheckPassword(password string) bool {
	return CheckPasswordHash(password, e.PasswordHash)
}

// SetPassword hashes and sets a new password for the employee
func (e *Employee) SetPassword(password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	e.PasswordHash = hashed
	return nil
}

// RoleCodes returns the role codes attached to the employee.
func (e *Employee) RoleCodes() []string {
	codes := make([]string, 0, len(e.Roles))
	for _, r := range e.Roles {
		codes = append(codes, r.Code)
	}
	return codes
}

// HasRole reports whether the employee carries the given role code.
func (e *Employee) HasRole(code string) bool {
	for _, r := range e.Roles {
		if r.Code == code {
			return true
		}
	}
	return false
}

type Role struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Code string `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Name string `gorm:"type:text" json:"name"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type EmployeeRole struct {
	EmployeeID string `gorm:"type:uuid;primaryKey" json:"employee_id"`
	RoleID     string `gorm:"type:uuid;primaryKey" json:"role_id"`
}
