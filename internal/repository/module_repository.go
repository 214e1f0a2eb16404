package repository

import (
	"hr_training_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(m *model.CourseModule) error {
	return r.DB.Create(m).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.CourseModule, error) {
	var m model.CourseModule
	err := r.DB.First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModuleRepository) Save(m *model.CourseModule) error {
	return r.DB.Save(m).Error
}

func (r *ModuleRepository) ListByCourse(courseID uint) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).Order("position asc, id asc").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) MaxPosition(courseID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.CourseModule{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

// UpdatePositions 批量改排序，每行独立更新，行之间互不依赖
func (r *ModuleRepository) UpdatePositions(positions map[uint]int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for id, pos := range positions {
			if err := tx.Model(&model.CourseModule{}).Where("id = ?", id).Update("position", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete 级联删除章节：先删测验树和课时进度，最后删章节本身
func (r *ModuleRepository) Delete(moduleID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).Where("module_id = ?", moduleID).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}

		var quizIDs []uint
		if err := tx.Model(&model.Quiz{}).Where("module_id = ?", moduleID).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			var lessonQuizIDs []uint
			if err := tx.Model(&model.Quiz{}).Where("lesson_id IN ?", lessonIDs).Pluck("id", &lessonQuizIDs).Error; err != nil {
				return err
			}
			quizIDs = append(quizIDs, lessonQuizIDs...)
		}

		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.QuizAttempt{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", quizIDs).Delete(&model.Quiz{}).Error; err != nil {
				return err
			}
		}

		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.LessonProgress{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", lessonIDs).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.CourseModule{}, moduleID).Error
	})
}
