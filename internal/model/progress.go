package model

import "time"

// LessonProgress 员工的课时完成记录，(employee_id, lesson_id) 唯一。
// 重复标记完成会刷新 CompletedAt（以最后一次为准）。
// swagger:model
type LessonProgress struct {
	BaseModel
	EmployeeID   uint       `gorm:"uniqueIndex:idx_progress_employee_lesson;not null" json:"employeeId"`
	LessonID     uint       `gorm:"uniqueIndex:idx_progress_employee_lesson;not null" json:"lessonId"`
	Completed    bool       `gorm:"default:false" json:"completed"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	LastPosition int        `gorm:"default:0" json:"lastPosition"` // 视频课时的播放位置（秒）
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
