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

func newProgressService(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewLessonRepository(db),
	)
}

func TestRecordLessonProgressUpsertsSingleRow(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)
	course := testutil.SeedCourse(t, db, "消防培训", admin.ID)
	m := testutil.SeedModule(t, db, course.ID, "第一章", 1)
	lesson := testutil.SeedLesson(t, db, m.ID, "课时一", 1)

	svc := newProgressService(db)

	pos := 30
	p, err := svc.RecordLessonProgress(7, lesson.ID, ProgressReq{Completed: false, LastPosition: &pos})
	require.NoError(t, err)
	assert.False(t, p.Completed)
	assert.Nil(t, p.CompletedAt)
	assert.Equal(t, 30, p.LastPosition)

	// 同一 (员工, 课时) 再写一次只更新那一行
	p, err = svc.RecordLessonProgress(7, lesson.ID, ProgressReq{Completed: true})
	require.NoError(t, err)
	assert.True(t, p.Completed)
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, 30, p.LastPosition, "没带位置的完成标记不动播放位置")

	pos = 95
	p, err = svc.RecordLessonProgress(7, lesson.ID, ProgressReq{Completed: true, LastPosition: &pos})
	require.NoError(t, err)
	assert.Equal(t, 95, p.LastPosition)

	var count int64
	require.NoError(t, db.Model(&model.LessonProgress{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordLessonProgressRestampsCompletedAt(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)
	course := testutil.SeedCourse(t, db, "复训", admin.ID)
	m := testutil.SeedModule(t, db, course.ID, "第一章", 1)
	lesson := testutil.SeedLesson(t, db, m.ID, "课时一", 1)

	svc := newProgressService(db)

	p1, err := svc.RecordLessonProgress(7, lesson.ID, ProgressReq{Completed: true})
	require.NoError(t, err)
	require.NotNil(t, p1.CompletedAt)
	first := *p1.CompletedAt

	time.Sleep(10 * time.Millisecond)

	p2, err := svc.RecordLessonProgress(7, lesson.ID, ProgressReq{Completed: true})
	require.NoError(t, err)
	require.NotNil(t, p2.CompletedAt)
	assert.True(t, p2.CompletedAt.After(first), "重复完成以最后一次时间为准")

	// 取消完成清掉时间戳
	p3, err := svc.RecordLessonProgress(7, lesson.ID, ProgressReq{Completed: false})
	require.NoError(t, err)
	assert.False(t, p3.Completed)
	assert.Nil(t, p3.CompletedAt)
}

func TestRecordLessonProgressLessonNotFound(t *testing.T) {
	db := testutil.DB(t)
	svc := newProgressService(db)

	_, err := svc.RecordLessonProgress(7, 424242, ProgressReq{Completed: true})
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestCompletionPercent(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)
	course := testutil.SeedCourse(t, db, "三课时课程", admin.ID)
	m := testutil.SeedModule(t, db, course.ID, "第一章", 1)
	l1 := testutil.SeedLesson(t, db, m.ID, "一", 1)
	l2 := testutil.SeedLesson(t, db, m.ID, "二", 2)
	testutil.SeedLesson(t, db, m.ID, "三", 3)

	svc := newProgressService(db)

	percent, err := svc.CompletionPercent(7, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, percent)

	_, err = svc.RecordLessonProgress(7, l1.ID, ProgressReq{Completed: true})
	require.NoError(t, err)
	percent, err = svc.CompletionPercent(7, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, percent, "1/3 四舍五入为 33")

	_, err = svc.RecordLessonProgress(7, l2.ID, ProgressReq{Completed: true})
	require.NoError(t, err)
	percent, err = svc.CompletionPercent(7, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, percent, "2/3 四舍五入为 67")
}

func TestCompletionPercentEmptyCourse(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)
	course := testutil.SeedCourse(t, db, "空课程", admin.ID)

	svc := newProgressService(db)
	percent, err := svc.CompletionPercent(7, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, percent, "没有课时的课程定义为 0")
}
