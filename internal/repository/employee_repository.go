package repository

import (
	"hr_training_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	DB *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

func (r *EmployeeRepository) Create(emp *model.EmployeeAccount) error {
	return r.DB.Create(emp).Error
}

func (r *EmployeeRepository) FindByID(id uint) (*model.EmployeeAccount, error) {
	var emp model.EmployeeAccount
	err := r.DB.First(&emp, id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) FindByEmail(email string) (*model.EmployeeAccount, error) {
	var emp model.EmployeeAccount
	err := r.DB.Where("email = ?", email).First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) FindByIDs(ids []uint) ([]model.EmployeeAccount, error) {
	var emps []model.EmployeeAccount
	err := r.DB.Where("id IN ?", ids).Find(&emps).Error
	return emps, err
}

func (r *EmployeeRepository) ListAll() ([]model.EmployeeAccount, error) {
	var emps []model.EmployeeAccount
	err := r.DB.Order("name asc").Find(&emps).Error
	return emps, err
}

func (r *EmployeeRepository) Save(emp *model.EmployeeAccount) error {
	return r.DB.Save(emp).Error
}

func (r *EmployeeRepository) UpdateLastSeen(employeeID uint) error {
	now := time.Now()
	return r.DB.Model(&model.EmployeeAccount{}).
		Where("id = ?", employeeID).
		Update("last_seen_at", &now).Error
}
