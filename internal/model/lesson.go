package model

import "encoding/json"

type LessonType string

const (
	LessonContent   LessonType = "content"
	LessonVideo     LessonType = "video"
	LessonResources LessonType = "resources"
)

// Lesson 章节下的课时。三种类型互斥：content 用 Content 字段，
// video 用 VideoURL，resources 用 Resources（JSON 数组）。
// swagger:model
type Lesson struct {
	BaseModel
	ModuleID   uint            `gorm:"index;not null" json:"moduleId"`
	Title      string          `gorm:"size:255;not null" json:"title"`
	Position   int             `gorm:"default:1" json:"position"`
	LessonType LessonType      `gorm:"size:20;not null" json:"lessonType"`
	Content    string          `gorm:"type:text" json:"content,omitempty"`
	VideoURL   string          `gorm:"size:500" json:"videoUrl,omitempty"`
	Resources  json.RawMessage `gorm:"type:json" json:"resources,omitempty"` // []ResourceLink
}

func (Lesson) TableName() string {
	return "lessons"
}

type ResourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
