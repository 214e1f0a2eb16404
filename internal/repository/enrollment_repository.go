package repository

import (
	"hr_training_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(e *model.Enrollment) error {
	return r.DB.Create(e).Error
}

func (r *EnrollmentRepository) Save(e *model.Enrollment) error {
	return r.DB.Save(e).Error
}

func (r *EnrollmentRepository) FindByEmployeeAndCourse(employeeID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("employee_id = ? AND course_id = ?", employeeID, courseID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) ListByEmployee(employeeID uint) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.DB.Where("employee_id = ?", employeeID).Find(&list).Error
	return list, err
}

func (r *EnrollmentRepository) ListByCourse(courseID uint) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.DB.Where("course_id = ?", courseID).Order("assigned_at asc").Find(&list).Error
	return list, err
}

func (r *EnrollmentRepository) ListAll() ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.DB.Find(&list).Error
	return list, err
}

func (r *EnrollmentRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
