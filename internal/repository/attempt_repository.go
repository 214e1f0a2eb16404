package repository

import (
	"hr_training_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create 只追加，历史记录永不覆盖
func (r *AttemptRepository) Create(a *model.QuizAttempt) error {
	return r.DB.Create(a).Error
}

func (r *AttemptRepository) ListByEmployeeAndQuiz(employeeID, quizID uint) ([]model.QuizAttempt, error) {
	var list []model.QuizAttempt
	err := r.DB.Where("employee_id = ? AND quiz_id = ?", employeeID, quizID).
		Order("submitted_at desc").Find(&list).Error
	return list, err
}

func (r *AttemptRepository) ListByQuizIDs(quizIDs []uint) ([]model.QuizAttempt, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	var list []model.QuizAttempt
	err := r.DB.Where("quiz_id IN ?", quizIDs).Find(&list).Error
	return list, err
}

// ListByEmployeeAndQuizIDs 按提交时间升序，调用方取最后一条即最近一次
func (r *AttemptRepository) ListByEmployeeAndQuizIDs(employeeID uint, quizIDs []uint) ([]model.QuizAttempt, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	var list []model.QuizAttempt
	err := r.DB.Where("employee_id = ? AND quiz_id IN ?", employeeID, quizIDs).
		Order("submitted_at asc, id asc").Find(&list).Error
	return list, err
}
