package repository

import (
	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
)

// employeeRepository implements the EmployeeRepository interface
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository instance
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepository) GetByID(id string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Preload("Roles").First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetActiveByEmail is the back-office login lookup; disabled accounts
// are invisible to it.
func (r *employeeRepository) GetActiveByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.
		Preload("Roles").
		Where("LOWER(email) = LOWER(?) AND is_active = true", email).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

func (r *employeeRepository) Delete(id string) error {
	return r.db.Delete(&models.Employee{}, "id = ?", id).Error
}

func (r *employeeRepository) List() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Preload("Roles").Order("email ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) ListRoles() ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Order("code ASC").Find(&roles).Error
	return roles, err
}

// SetRoles replaces the role set of an employee.
func (r *employeeRepository) SetRoles(employeeID string, roleCodes []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.EmployeeRole{}).Error; err != nil {
			return err
		}
		for _, code := range roleCodes {
			var role models.Role
			if err := tx.Where("code = ?", code).First(&role).Error; err != nil {
				return err
			}
			link := models.EmployeeRole{EmployeeID: employeeID, RoleID: role.ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
