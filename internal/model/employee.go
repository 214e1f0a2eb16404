package model

import "time"

type EmployeeRole string

const (
	Admin    EmployeeRole = "admin"
	HR       EmployeeRole = "hr"
	Employee EmployeeRole = "employee"
)

// swagger:model
type EmployeeAccount struct {
	BaseModel
	Name       string       `gorm:"size:100;not null" json:"name"`
	Email      string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string       `gorm:"size:255;not null" json:"-"`
	Role       EmployeeRole `gorm:"size:20;default:'employee'" json:"role"`
	Department string       `gorm:"size:100" json:"department"`
	Position   string       `gorm:"size:100" json:"position"`
	Avatar     string       `gorm:"size:255" json:"avatar"`
	LastSeenAt *time.Time   `json:"lastSeenAt,omitempty"`
}

func (EmployeeAccount) TableName() string {
	return "employees"
}
