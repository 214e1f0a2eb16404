package repository

import (
	"hr_training_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) ListAll(page, limit int) ([]model.Course, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.DB.Order("created_at desc")
	if limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var courses []model.Course
	err := query.Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListPublished() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("status = ?", model.CoursePublished).Order("title asc").Find(&courses).Error
	return courses, err
}

// Delete 级联删除整个课程树，子行先删（题目→答题记录→测验→学习进度→课时→章节→指派）。
// 事务内执行；即便未启用事务的存储，这个顺序也保证可重复执行直到删净。
func (r *CourseRepository) Delete(courseID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&model.CourseModule{}).Where("course_id = ?", courseID).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}

		var lessonIDs []uint
		if len(moduleIDs) > 0 {
			if err := tx.Model(&model.Lesson{}).Where("module_id IN ?", moduleIDs).Pluck("id", &lessonIDs).Error; err != nil {
				return err
			}
		}

		var quizIDs []uint
		if len(moduleIDs) > 0 {
			if err := tx.Model(&model.Quiz{}).Where("module_id IN ?", moduleIDs).Pluck("id", &quizIDs).Error; err != nil {
				return err
			}
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

		if len(moduleIDs) > 0 {
			if err := tx.Where("id IN ?", moduleIDs).Delete(&model.CourseModule{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", courseID).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Course{}, courseID).Error
	})
}
