package model

type CourseDifficulty string

const (
	Beginner     CourseDifficulty = "beginner"
	Intermediate CourseDifficulty = "intermediate"
	Advanced     CourseDifficulty = "advanced"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
)

// swagger:model
type Course struct {
	BaseModel
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	CoverURL    string           `gorm:"size:500" json:"coverUrl"`
	Category    string           `gorm:"size:100" json:"category"`
	Difficulty  CourseDifficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	Duration    int              `gorm:"default:0" json:"duration"` // 预计学习时长（分钟）
	Status      CourseStatus     `gorm:"size:20;index;default:'draft'" json:"status"`
	CreatorID   uint             `gorm:"index" json:"creatorId"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule 课程下的章节，Position 在同一课程内唯一（允许留空位）
type CourseModule struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Position int    `gorm:"default:1" json:"position"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
