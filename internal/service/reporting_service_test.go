package service

import (
	"encoding/json"
	"testing"
	"time"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportingService(db *gorm.DB) *ReportingService {
	return NewReportingService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		repository.NewQuizRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewEmployeeRepository(db),
	)
}

// 一门课、两个员工：e1 学完并通过测验，e2 被指派后没动静且已逾期
func seedReportFixture(t *testing.T, db *gorm.DB) (course *model.Course, e1, e2 *model.EmployeeAccount) {
	t.Helper()

	hr := testutil.SeedEmployee(t, db, "hr", model.HR)
	e1 = testutil.SeedEmployee(t, db, "e1", model.Employee)
	e2 = testutil.SeedEmployee(t, db, "e2", model.Employee)
	course = testutil.SeedCourse(t, db, "年度合规", hr.ID)
	m := testutil.SeedModule(t, db, course.ID, "第一章", 1)
	lesson := testutil.SeedLesson(t, db, m.ID, "唯一课时", 1)

	quizSvc := newQuizService(db)
	quiz := &model.Quiz{ModuleID: &m.ID, Title: "章节测验", PassMark: 60}
	require.NoError(t, quizSvc.QuizRepo.Create(quiz))
	q := &model.Question{QuizID: quiz.ID, QuestionType: model.QuestionSingle, Text: "q", Answer: raw(`"a"`), Points: 1, Position: 1}
	require.NoError(t, quizSvc.QuizRepo.CreateQuestion(q))

	enrollSvc := newEnrollmentService(db)
	pastDue := time.Now().AddDate(0, 0, -3)
	_, err := enrollSvc.Assign(course.ID, AssignReq{EmployeeIDs: []uint{e1.ID, e2.ID}, DueDate: &pastDue}, hr.ID)
	require.NoError(t, err)

	progressSvc := newProgressService(db)
	_, err = progressSvc.RecordLessonProgress(e1.ID, lesson.ID, ProgressReq{Completed: true})
	require.NoError(t, err)

	// e1 先不及格再通过，报表取最近一次
	_, err = quizSvc.SubmitAttempt(e1.ID, quiz.ID, AttemptSubmission{
		Answers: map[uint]json.RawMessage{q.ID: raw(`"wrong"`)},
	})
	require.NoError(t, err)
	_, err = quizSvc.SubmitAttempt(e1.ID, quiz.ID, AttemptSubmission{
		Answers: map[uint]json.RawMessage{q.ID: raw(`"a"`)},
	})
	require.NoError(t, err)

	return course, e1, e2
}

func TestCourseReportAggregates(t *testing.T) {
	db := testutil.DB(t)
	course, _, _ := seedReportFixture(t, db)

	rows, err := newReportingService(db).CourseReport()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, course.ID, row.CourseID)
	assert.Equal(t, 2, row.EnrolledCount)
	assert.Equal(t, 1, row.StartedCount)
	assert.Equal(t, 1, row.CompletedCount)
	assert.Equal(t, 2, row.AttemptCount)
	assert.InDelta(t, 50.0, row.AverageScore, 0.001, "0 分和 100 分各一次")
	assert.InDelta(t, 0.5, row.PassRate, 0.001)
}

func TestEmployeeReportRows(t *testing.T) {
	db := testutil.DB(t)
	course, e1, e2 := seedReportFixture(t, db)

	rows, err := newReportingService(db).EmployeeReport(course.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := make(map[uint]EmployeeReportRow, len(rows))
	for _, r := range rows {
		byID[r.EmployeeID] = r
	}

	done := byID[e1.ID]
	assert.Equal(t, "e1", done.EmployeeName)
	assert.Equal(t, 100, done.CompletionPercent)
	assert.Equal(t, StatusCompleted, done.Status)
	assert.Equal(t, 2, done.AttemptCount)
	require.NotNil(t, done.LatestScore)
	assert.Equal(t, 100, *done.LatestScore, "按时间最近的成绩，不是最高分")
	require.NotNil(t, done.LatestPassed)
	assert.True(t, *done.LatestPassed)
	assert.False(t, done.Overdue, "完成的人不算逾期")

	idle := byID[e2.ID]
	assert.Equal(t, 0, idle.CompletionPercent)
	assert.Equal(t, StatusAssigned, idle.Status)
	assert.Equal(t, 0, idle.AttemptCount)
	assert.Nil(t, idle.LatestScore)
	assert.True(t, idle.Overdue, "截止日已过且未完成")
}

func TestEmployeeReportFutureDueDateNotOverdue(t *testing.T) {
	db := testutil.DB(t)
	hr := testutil.SeedEmployee(t, db, "hr", model.HR)
	emp := testutil.SeedEmployee(t, db, "emp", model.Employee)
	course := testutil.SeedCourse(t, db, "来日方长", hr.ID)
	m := testutil.SeedModule(t, db, course.ID, "第一章", 1)
	testutil.SeedLesson(t, db, m.ID, "课时", 1)

	due := time.Now().AddDate(0, 0, 14)
	_, err := newEnrollmentService(db).Assign(course.ID, AssignReq{EmployeeIDs: []uint{emp.ID}, DueDate: &due}, hr.ID)
	require.NoError(t, err)

	rows, err := newReportingService(db).EmployeeReport(course.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Overdue)
}

// 逾期按本地日历日判断：截止在今天零点不算逾期（严格早于今天才算），
// 昨天任何时刻都算
func TestEmployeeReportOverdueLocalDayBoundary(t *testing.T) {
	db := testutil.DB(t)
	hr := testutil.SeedEmployee(t, db, "hr", model.HR)
	emp := testutil.SeedEmployee(t, db, "emp", model.Employee)
	course := testutil.SeedCourse(t, db, "临界截止", hr.ID)
	m := testutil.SeedModule(t, db, course.ID, "第一章", 1)
	testutil.SeedLesson(t, db, m.ID, "课时", 1)

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	dueToday := midnight
	_, err := newEnrollmentService(db).Assign(course.ID, AssignReq{EmployeeIDs: []uint{emp.ID}, DueDate: &dueToday}, hr.ID)
	require.NoError(t, err)

	svc := newReportingService(db)
	rows, err := svc.EmployeeReport(course.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Overdue, "截止日是今天还不算逾期")

	dueYesterday := midnight.Add(-time.Second)
	require.NoError(t, db.Model(&model.Enrollment{}).
		Where("employee_id = ? AND course_id = ?", emp.ID, course.ID).
		Update("due_date", dueYesterday).Error)

	rows, err = svc.EmployeeReport(course.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Overdue, "本地时间里昨天截止就算逾期")
}
