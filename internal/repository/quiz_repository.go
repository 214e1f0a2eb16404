package repository

import (
	"hr_training_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Save(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

// ListByModuleOrLessonIDs 取章节级和课时级测验的并集。
// 同一个测验可能被两个条件同时命中，调用方按 ID 去重。
func (r *QuizRepository) ListByModuleOrLessonIDs(moduleIDs, lessonIDs []uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz

	if len(moduleIDs) > 0 {
		var moduleQuizzes []model.Quiz
		if err := r.DB.Where("module_id IN ?", moduleIDs).Find(&moduleQuizzes).Error; err != nil {
			return nil, err
		}
		quizzes = append(quizzes, moduleQuizzes...)
	}

	if len(lessonIDs) > 0 {
		var lessonQuizzes []model.Quiz
		if err := r.DB.Where("lesson_id IN ?", lessonIDs).Find(&lessonQuizzes).Error; err != nil {
			return nil, err
		}
		quizzes = append(quizzes, lessonQuizzes...)
	}

	return quizzes, nil
}

// Delete 级联删除测验及其题目和答题记录
func (r *QuizRepository) Delete(quizID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, quizID).Error
	})
}

func (r *QuizRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuizRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) SaveQuestion(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuizRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuizRepository) ListQuestions(quizID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).Order("position asc, id asc").Find(&qs).Error
	return qs, err
}

func (r *QuizRepository) ListQuestionsByQuizIDs(quizIDs []uint) ([]model.Question, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	var qs []model.Question
	err := r.DB.Where("quiz_id IN ?", quizIDs).Find(&qs).Error
	return qs, err
}
