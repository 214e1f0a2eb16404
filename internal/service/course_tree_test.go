package service

import (
	"testing"

	"hr_training_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withID(id uint) model.BaseModel {
	return model.BaseModel{ID: id}
}

func TestAssembleCourseTreeOrdersByPositionThenID(t *testing.T) {
	course := model.Course{BaseModel: withID(1), Title: "入职培训"}
	modules := []model.CourseModule{
		{BaseModel: withID(10), CourseID: 1, Title: "later", Position: 2},
		{BaseModel: withID(12), CourseID: 1, Title: "tie-b", Position: 1},
		{BaseModel: withID(11), CourseID: 1, Title: "tie-a", Position: 1},
	}
	lessons := []model.Lesson{
		{BaseModel: withID(102), ModuleID: 11, Title: "second", Position: 2, LessonType: model.LessonContent},
		{BaseModel: withID(101), ModuleID: 11, Title: "first", Position: 1, LessonType: model.LessonContent},
	}

	tree := assembleCourseTree(course, modules, lessons, nil, nil)

	require.Len(t, tree.Modules, 3)
	// 并列 position 按 ID 升序兜底
	assert.Equal(t, uint(11), tree.Modules[0].ID)
	assert.Equal(t, uint(12), tree.Modules[1].ID)
	assert.Equal(t, uint(10), tree.Modules[2].ID)

	require.Len(t, tree.Modules[0].Lessons, 2)
	assert.Equal(t, "first", tree.Modules[0].Lessons[0].Title)
	assert.Equal(t, "second", tree.Modules[0].Lessons[1].Title)
}

func TestAssembleCourseTreeAttachesQuizzesAndDeduplicates(t *testing.T) {
	course := model.Course{BaseModel: withID(1)}
	moduleID := uint(10)
	lessonID := uint(100)
	modules := []model.CourseModule{{BaseModel: withID(10), CourseID: 1, Position: 1}}
	lessons := []model.Lesson{{BaseModel: withID(100), ModuleID: 10, Position: 1, LessonType: model.LessonContent}}
	// 同一条测验出现两次，模拟章节查询和课时查询的并集
	quizzes := []model.Quiz{
		{BaseModel: withID(200), ModuleID: &moduleID, Title: "章节测验"},
		{BaseModel: withID(200), ModuleID: &moduleID, Title: "章节测验"},
		{BaseModel: withID(201), LessonID: &lessonID, Title: "课时测验"},
	}
	questions := []model.Question{
		{BaseModel: withID(300), QuizID: 200, Position: 2, Points: 1},
		{BaseModel: withID(301), QuizID: 200, Position: 1, Points: 2},
	}

	tree := assembleCourseTree(course, modules, lessons, quizzes, questions)

	require.Len(t, tree.Modules, 1)
	m := tree.Modules[0]
	require.NotNil(t, m.Quiz)
	assert.Equal(t, uint(200), m.Quiz.ID)
	require.Len(t, m.Quiz.Questions, 2)
	assert.Equal(t, uint(301), m.Quiz.Questions[0].ID, "题目按 position 排序")

	require.Len(t, m.Lessons, 1)
	require.NotNil(t, m.Lessons[0].Quiz)
	assert.Equal(t, uint(201), m.Lessons[0].Quiz.ID)
}

func TestAssembleCourseTreeToleratesCorruptJSON(t *testing.T) {
	course := model.Course{BaseModel: withID(1)}
	modules := []model.CourseModule{{BaseModel: withID(10), CourseID: 1, Position: 1}}
	lessons := []model.Lesson{
		{
			BaseModel:  withID(100),
			ModuleID:   10,
			Position:   1,
			LessonType: model.LessonResources,
			Resources:  raw(`{not valid json`),
		},
	}
	moduleID := uint(10)
	quizzes := []model.Quiz{{BaseModel: withID(200), ModuleID: &moduleID}}
	questions := []model.Question{
		{BaseModel: withID(300), QuizID: 200, Options: raw(`"not-a-list"`), Points: 1, Position: 1},
	}

	tree := assembleCourseTree(course, modules, lessons, quizzes, questions)

	require.Len(t, tree.Modules, 1)
	assert.Nil(t, tree.Modules[0].Lessons[0].Resources, "坏资源列表降级为空")
	require.NotNil(t, tree.Modules[0].Quiz)
	assert.Nil(t, tree.Modules[0].Quiz.Questions[0].Options, "坏选项列表降级为空")
}

func TestAssembleCourseTreeEmptyCourse(t *testing.T) {
	tree := assembleCourseTree(model.Course{BaseModel: withID(1)}, nil, nil, nil, nil)

	assert.NotNil(t, tree.Modules)
	assert.Len(t, tree.Modules, 0)
}
