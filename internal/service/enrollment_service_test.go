package service

import (
	"testing"
	"time"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/testutil"
	"hr_training_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrollmentService(db *gorm.DB) *EnrollmentService {
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEmployeeRepository(db),
		newProgressService(db),
	)
}

func TestAssignIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	hr := testutil.SeedEmployee(t, db, "hr", model.HR)
	e1 := testutil.SeedEmployee(t, db, "e1", model.Employee)
	e2 := testutil.SeedEmployee(t, db, "e2", model.Employee)
	course := testutil.SeedCourse(t, db, "合规培训", hr.ID)

	svc := newEnrollmentService(db)

	result, err := svc.Assign(course.ID, AssignReq{EmployeeIDs: []uint{e1.ID, e2.ID}}, hr.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Skipped)

	// 重跑同一批指派：全部静默跳过
	e3 := testutil.SeedEmployee(t, db, "e3", model.Employee)
	result, err = svc.Assign(course.ID, AssignReq{EmployeeIDs: []uint{e1.ID, e2.ID, e3.ID}}, hr.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 2, result.Skipped)

	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestAssignValidation(t *testing.T) {
	db := testutil.DB(t)
	hr := testutil.SeedEmployee(t, db, "hr", model.HR)
	course := testutil.SeedCourse(t, db, "校验", hr.ID)

	svc := newEnrollmentService(db)

	_, err := svc.Assign(course.ID, AssignReq{}, hr.ID)
	assert.True(t, util.IsValidationError(err), "空员工列表是校验错误")

	_, err = svc.Assign(424242, AssignReq{EmployeeIDs: []uint{hr.ID}}, hr.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	_, err = svc.Assign(course.ID, AssignReq{EmployeeIDs: []uint{hr.ID, 424242}}, hr.ID)
	assert.ErrorIs(t, err, util.ErrEmployeeNotFound, "列表里有不存在的员工整体拒绝")
}

func TestListForEmployeeMergesEnrollmentAndProgress(t *testing.T) {
	db := testutil.DB(t)
	hr := testutil.SeedEmployee(t, db, "hr", model.HR)
	emp := testutil.SeedEmployee(t, db, "emp", model.Employee)

	assigned := testutil.SeedCourse(t, db, "已指派", hr.ID)
	testutil.SeedCourse(t, db, "未指派", hr.ID)

	// 草稿课程不该出现在员工视图里
	draft := &model.Course{Title: "草稿", Status: model.CourseDraft, CreatorID: hr.ID}
	require.NoError(t, db.Create(draft).Error)

	m := testutil.SeedModule(t, db, assigned.ID, "第一章", 1)
	l1 := testutil.SeedLesson(t, db, m.ID, "一", 1)
	testutil.SeedLesson(t, db, m.ID, "二", 2)

	svc := newEnrollmentService(db)

	due := time.Now().AddDate(0, 0, 7)
	_, err := svc.Assign(assigned.ID, AssignReq{EmployeeIDs: []uint{emp.ID}, DueDate: &due}, hr.ID)
	require.NoError(t, err)

	_, err = svc.ProgressSvc.RecordLessonProgress(emp.ID, l1.ID, ProgressReq{Completed: true})
	require.NoError(t, err)

	rows, err := svc.ListForEmployee(emp.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2, "只包含已发布课程")

	byTitle := make(map[string]EmployeeCourseRow, len(rows))
	for _, r := range rows {
		byTitle[r.Course.Title] = r
	}

	a := byTitle["已指派"]
	require.NotNil(t, a.Enrollment)
	assert.Equal(t, 50, a.CompletionPercent)
	assert.Equal(t, StatusInProgress, a.EmployeeStatus)

	o := byTitle["未指派"]
	assert.Nil(t, o.Enrollment)
	assert.Equal(t, StatusAvailable, o.EmployeeStatus)
}

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, StatusCompleted, DeriveStatus(true, 100))
	assert.Equal(t, StatusCompleted, DeriveStatus(false, 100), "完成度优先于指派状态")
	assert.Equal(t, StatusInProgress, DeriveStatus(true, 50))
	assert.Equal(t, StatusInProgress, DeriveStatus(false, 1), "没指派但有进度也算进行中")
	assert.Equal(t, StatusAssigned, DeriveStatus(true, 0))
	assert.Equal(t, StatusAvailable, DeriveStatus(false, 0))
}
