package repository

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
)

var phoneRe = regexp.MustCompile(`^\+?\d{7,15}$`)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByLogin(login string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ResolveIdentifier finds a user by whatever they typed into the login form:
// an email if it contains '@', a phone if it looks like one, otherwise a login.
func (r *userRepository) ResolveIdentifier(identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	switch {
	case strings.Contains(identifier, "@"):
		return r.GetByEmail(identifier)
	case phoneRe.MatchString(identifier):
		return r.GetByPhone(identifier)
	default:
		return r.GetByLogin(identifier)
	}
}

func (r *userRepository) LoginExists(login string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

// NextFreeLogin appends a numeric suffix until the login is unique.
func (r *userRepository) NextFreeLogin(base string) (string, error) {
	login := base
	for i := 1; ; i++ {
		taken, err := r.LoginExists(login)
		if err != nil {
			return "", err
		}
		if !taken {
			return login, nil
		}
		login = fmt.Sprintf("%s%d", base, i)
	}
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *userRepository) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) Search(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.
		Where("login ILIKE ? OR email ILIKE ? OR phone LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(100).
		Find(&users).Error
	return users, err
}

// GetDailyRegistrations groups account creations per calendar day.
func (r *userRepository) GetDailyRegistrations(startDate, endDate time.Time) ([]DailyCount, error) {
	var rows []DailyCount
	err := r.db.Model(&models.User{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}
