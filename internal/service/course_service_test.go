package service

import (
	"context"
	"testing"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/testutil"
	"hr_training_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		repository.NewQuizRepository(db),
		nil,
	)
}

func TestCreateCourseDefaults(t *testing.T) {
	db := testutil.DB(t)
	svc := newCourseService(db)

	course, err := svc.CreateCourse(1, CourseReq{Title: strp("新员工入职")})
	require.NoError(t, err)
	assert.Equal(t, model.CourseDraft, course.Status, "新课程默认草稿")
	assert.Equal(t, model.Beginner, course.Difficulty)

	_, err = svc.CreateCourse(1, CourseReq{})
	assert.True(t, util.IsValidationError(err), "标题必填")

	bad := model.CourseDifficulty("extreme")
	_, err = svc.CreateCourse(1, CourseReq{Title: strp("x"), Difficulty: &bad})
	assert.True(t, util.IsValidationError(err))
}

func TestSetCourseStatus(t *testing.T) {
	db := testutil.DB(t)
	svc := newCourseService(db)

	course, err := svc.CreateCourse(1, CourseReq{Title: strp("发布流程")})
	require.NoError(t, err)

	published, err := svc.SetCourseStatus(course.ID, model.CoursePublished)
	require.NoError(t, err)
	assert.Equal(t, model.CoursePublished, published.Status)

	_, err = svc.SetCourseStatus(course.ID, "archived")
	assert.True(t, util.IsValidationError(err))

	_, err = svc.SetCourseStatus(424242, model.CoursePublished)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestGetCourseTreeAssemblesFromStore(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)
	course := testutil.SeedCourse(t, db, "完整课程", admin.ID)
	m1 := testutil.SeedModule(t, db, course.ID, "第二章", 2)
	m2 := testutil.SeedModule(t, db, course.ID, "第一章", 1)
	lesson := testutil.SeedLesson(t, db, m2.ID, "课时", 1)

	quiz := &model.Quiz{LessonID: &lesson.ID, Title: "课时测验", PassMark: 60}
	require.NoError(t, db.Create(quiz).Error)
	require.NoError(t, db.Create(&model.Question{
		QuizID: quiz.ID, QuestionType: model.QuestionSingle,
		Text: "q", Options: raw(`["a", "b"]`), Answer: raw(`"a"`), Points: 1, Position: 1,
	}).Error)

	svc := newCourseService(db)

	tree, err := svc.GetCourseTree(context.Background(), course.ID)
	require.NoError(t, err)

	require.Len(t, tree.Modules, 2)
	assert.Equal(t, m2.ID, tree.Modules[0].ID, "模块按 position 排序")
	assert.Equal(t, m1.ID, tree.Modules[1].ID)

	require.Len(t, tree.Modules[0].Lessons, 1)
	lessonNode := tree.Modules[0].Lessons[0]
	require.NotNil(t, lessonNode.Quiz)
	require.Len(t, lessonNode.Quiz.Questions, 1)
	assert.Equal(t, []string{"a", "b"}, lessonNode.Quiz.Questions[0].Options)

	assert.NotNil(t, tree.Modules[1].Lessons, "空章节给空列表而不是 null")
	assert.Len(t, tree.Modules[1].Lessons, 0)

	_, err = svc.GetCourseTree(context.Background(), 424242)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
