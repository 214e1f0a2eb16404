package model

import "encoding/json"

// Quiz 挂在章节或课时上的测验，ModuleID / LessonID 必须恰好一个非空
// swagger:model
type Quiz struct {
	BaseModel
	ModuleID  *uint  `gorm:"index" json:"moduleId,omitempty"`
	LessonID  *uint  `gorm:"index" json:"lessonId,omitempty"`
	Title     string `gorm:"size:255;not null" json:"title"`
	PassMark  int    `gorm:"default:60" json:"passMark"` // 及格线（百分比 0-100）
	TimeLimit int    `gorm:"default:0" json:"timeLimit"` // 限时（秒），0 表示不限时
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuestionType string

const (
	QuestionSingle    QuestionType = "single"
	QuestionMulti     QuestionType = "multi"
	QuestionTrueFalse QuestionType = "truefalse"
	QuestionShort     QuestionType = "short"
)

// Question Answer 字段按题型存不同形状：
// single 存字符串，multi 存字符串数组，truefalse 存布尔，
// short 存字符串或字符串数组（多个可接受答案）。
// swagger:model
type Question struct {
	BaseModel
	QuizID       uint            `gorm:"index;not null" json:"quizId"`
	QuestionType QuestionType    `gorm:"size:20;not null" json:"questionType"`
	Text         string          `gorm:"type:text;not null" json:"text"`
	Options      json.RawMessage `gorm:"type:json" json:"options,omitempty"` // []string，short 题型无选项
	Answer       json.RawMessage `gorm:"type:json" json:"-"`
	Points       int             `gorm:"default:1" json:"points"`
	Position     int             `gorm:"default:1" json:"position"`
}

func (Question) TableName() string {
	return "questions"
}
