package model

import "time"

type EnrollmentStatus string

const (
	EnrollAssigned   EnrollmentStatus = "assigned"
	EnrollInProgress EnrollmentStatus = "in_progress"
	EnrollCompleted  EnrollmentStatus = "completed"
)

// Enrollment 员工与课程的指派关系，(employee_id, course_id) 唯一。
// Status 只作展示提示，真实完成状态一律从 Progress 推导。
// swagger:model
type Enrollment struct {
	BaseModel
	EmployeeID uint             `gorm:"uniqueIndex:idx_enroll_employee_course;not null" json:"employeeId"`
	CourseID   uint             `gorm:"uniqueIndex:idx_enroll_employee_course;not null" json:"courseId"`
	AssignedBy uint             `gorm:"index" json:"assignedBy"`
	AssignedAt time.Time        `json:"assignedAt"`
	DueDate    *time.Time       `json:"dueDate,omitempty"`
	Status     EnrollmentStatus `gorm:"size:20;default:'assigned'" json:"status"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
