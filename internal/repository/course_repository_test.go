package repository

import (
	"encoding/json"
	"testing"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countUndeleted(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(m).Count(&count).Error)
	return count
}

func TestCourseDeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)

	course := testutil.SeedCourse(t, db, "要删的课", admin.ID)
	m := testutil.SeedModule(t, db, course.ID, "第一章", 1)
	lesson := testutil.SeedLesson(t, db, m.ID, "课时", 1)

	// 章节级和课时级各挂一个测验
	moduleQuiz := &model.Quiz{ModuleID: &m.ID, Title: "章节测验", PassMark: 60}
	require.NoError(t, db.Create(moduleQuiz).Error)
	lessonQuiz := &model.Quiz{LessonID: &lesson.ID, Title: "课时测验", PassMark: 60}
	require.NoError(t, db.Create(lessonQuiz).Error)
	require.NoError(t, db.Create(&model.Question{
		QuizID: moduleQuiz.ID, QuestionType: model.QuestionSingle,
		Text: "q", Answer: json.RawMessage(`"a"`), Points: 1, Position: 1,
	}).Error)
	require.NoError(t, db.Create(&model.QuizAttempt{
		EmployeeID: admin.ID, QuizID: lessonQuiz.ID, Score: 80, Passed: true,
	}).Error)
	require.NoError(t, db.Create(&model.LessonProgress{
		EmployeeID: admin.ID, LessonID: lesson.ID, Completed: true,
	}).Error)
	require.NoError(t, db.Create(&model.Enrollment{
		EmployeeID: admin.ID, CourseID: course.ID, Status: model.EnrollAssigned,
	}).Error)

	// 另一门课的数据不能被波及
	other := testutil.SeedCourse(t, db, "无辜的课", admin.ID)
	otherModule := testutil.SeedModule(t, db, other.ID, "章", 1)
	testutil.SeedLesson(t, db, otherModule.ID, "课时", 1)

	repo := NewCourseRepository(db)
	require.NoError(t, repo.Delete(course.ID))

	_, err := repo.FindByID(course.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.EqualValues(t, 1, countUndeleted(t, db, &model.CourseModule{}))
	assert.EqualValues(t, 1, countUndeleted(t, db, &model.Lesson{}))
	assert.EqualValues(t, 0, countUndeleted(t, db, &model.Quiz{}))
	assert.EqualValues(t, 0, countUndeleted(t, db, &model.Question{}))
	assert.EqualValues(t, 0, countUndeleted(t, db, &model.QuizAttempt{}))
	assert.EqualValues(t, 0, countUndeleted(t, db, &model.LessonProgress{}))
	assert.EqualValues(t, 0, countUndeleted(t, db, &model.Enrollment{}))

	// 无辜的课原封不动
	_, err = repo.FindByID(other.ID)
	assert.NoError(t, err)
}

func TestModuleDeleteCascadesWithinModule(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)
	course := testutil.SeedCourse(t, db, "课程", admin.ID)
	doomed := testutil.SeedModule(t, db, course.ID, "要删的章", 1)
	kept := testutil.SeedModule(t, db, course.ID, "保留的章", 2)

	doomedLesson := testutil.SeedLesson(t, db, doomed.ID, "课时", 1)
	testutil.SeedLesson(t, db, kept.ID, "课时", 1)
	require.NoError(t, db.Create(&model.Quiz{LessonID: &doomedLesson.ID, Title: "测验", PassMark: 60}).Error)

	repo := NewModuleRepository(db)
	require.NoError(t, repo.Delete(doomed.ID))

	assert.EqualValues(t, 1, countUndeleted(t, db, &model.CourseModule{}))
	assert.EqualValues(t, 1, countUndeleted(t, db, &model.Lesson{}))
	assert.EqualValues(t, 0, countUndeleted(t, db, &model.Quiz{}))
}

func TestListAllPaginates(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)
	for i := 0; i < 5; i++ {
		testutil.SeedCourse(t, db, "课程", admin.ID)
	}

	repo := NewCourseRepository(db)

	courses, total, err := repo.ListAll(1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, courses, 2)

	courses, total, err = repo.ListAll(3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, courses, 1)

	// limit 0 返回全部
	courses, _, err = repo.ListAll(1, 0)
	require.NoError(t, err)
	assert.Len(t, courses, 5)
}
