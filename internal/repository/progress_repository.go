package repository

import (
	"hr_training_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert 按 (employee_id, lesson_id) 写入或覆盖，后写覆盖先写。
// withPosition 为 false 时不碰 last_position，避免纯完成标记把播放位置冲成 0
func (r *ProgressRepository) Upsert(p *model.LessonProgress, withPosition bool) error {
	cols := []string{"completed", "completed_at", "updated_at"}
	if withPosition {
		cols = append(cols, "last_position")
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(p).Error
}

func (r *ProgressRepository) FindByEmployeeAndLesson(employeeID, lessonID uint) (*model.LessonProgress, error) {
	var p model.LessonProgress
	err := r.DB.Where("employee_id = ? AND lesson_id = ?", employeeID, lessonID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) ListByEmployeeAndLessonIDs(employeeID uint, lessonIDs []uint) ([]model.LessonProgress, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	var list []model.LessonProgress
	err := r.DB.Where("employee_id = ? AND lesson_id IN ?", employeeID, lessonIDs).Find(&list).Error
	return list, err
}

func (r *ProgressRepository) CountCompleted(employeeID uint, lessonIDs []uint) (int64, error) {
	if len(lessonIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("employee_id = ? AND lesson_id IN ? AND completed = ?", employeeID, lessonIDs, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) ListByLessonIDs(lessonIDs []uint) ([]model.LessonProgress, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	var list []model.LessonProgress
	err := r.DB.Where("lesson_id IN ?", lessonIDs).Find(&list).Error
	return list, err
}
