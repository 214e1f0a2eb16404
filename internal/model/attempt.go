package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizAttempt 一次测验提交，只追加不覆盖，历史全部保留
// swagger:model
type QuizAttempt struct {
	BaseModel
	Reference   string          `gorm:"size:36;uniqueIndex" json:"reference"`
	EmployeeID  uint            `gorm:"index;not null" json:"employeeId"`
	QuizID      uint            `gorm:"index;not null" json:"quizId"`
	Score       int             `gorm:"not null" json:"score"` // 0-100
	Passed      bool            `gorm:"default:false" json:"passed"`
	Detail      json.RawMessage `gorm:"type:json" json:"detail,omitempty"` // 逐题评分明细，供审计/申诉
	SubmittedAt time.Time       `gorm:"index" json:"submittedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) (err error) {
	if a.Reference == "" {
		a.Reference = uuid.New().String()
	}
	return
}

// AttemptQuestionResult Detail 字段里每道题的评分结果
type AttemptQuestionResult struct {
	QuestionID     uint            `json:"questionId"`
	Submitted      json.RawMessage `json:"submitted,omitempty"`
	Correct        bool            `json:"correct"`
	PointsEarned   int             `json:"pointsEarned"`
	PointsPossible int             `json:"pointsPossible"`
}
