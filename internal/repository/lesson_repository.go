package repository

import (
	"hr_training_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) Save(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) ListByModule(moduleID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).Order("position asc, id asc").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListByModuleIDs(moduleIDs []uint) ([]model.Lesson, error) {
	if len(moduleIDs) == 0 {
		return nil, nil
	}
	var lessons []model.Lesson
	err := r.DB.Where("module_id IN ?", moduleIDs).Find(&lessons).Error
	return lessons, err
}

// CountByCourse 统计课程下所有课时数（跨章节）
func (r *LessonRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id AND course_modules.deleted_at IS NULL").
		Where("course_modules.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

// LessonIDsByCourse 课程下所有课时 ID，进度推导用
func (r *LessonRepository) LessonIDsByCourse(courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id AND course_modules.deleted_at IS NULL").
		Where("course_modules.course_id = ?", courseID).
		Pluck("lessons.id", &ids).Error
	return ids, err
}

func (r *LessonRepository) MaxPosition(moduleID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.Lesson{}).
		Where("module_id = ?", moduleID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

func (r *LessonRepository) UpdatePositions(positions map[uint]int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for id, pos := range positions {
			if err := tx.Model(&model.Lesson{}).Where("id = ?", id).Update("position", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete 级联删除课时：课时级测验的题目和答题记录先删，进度随后，最后删课时
func (r *LessonRepository) Delete(lessonID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var quizIDs []uint
		if err := tx.Model(&model.Quiz{}).Where("lesson_id = ?", lessonID).Pluck("id", &quizIDs).Error; err != nil {
			return err
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

		if err := tx.Where("lesson_id = ?", lessonID).Delete(&model.LessonProgress{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Lesson{}, lessonID).Error
	})
}
