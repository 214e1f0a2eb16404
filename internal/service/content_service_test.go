package service

import (
	"testing"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/testutil"
	"hr_training_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContentService(db *gorm.DB) *ContentService {
	courseSvc := NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		repository.NewQuizRepository(db),
		nil,
	)
	return NewContentService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		courseSvc,
	)
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestCreateModuleAppendsToEnd(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)
	course := testutil.SeedCourse(t, db, "新课程", admin.ID)
	testutil.SeedModule(t, db, course.ID, "已有", 3)

	svc := newContentService(db)

	m, err := svc.CreateModule(course.ID, ModuleReq{Title: strp("追加")})
	require.NoError(t, err)
	assert.Equal(t, 4, m.Position, "缺省位置排在最大位置之后")

	_, err = svc.CreateModule(course.ID, ModuleReq{Title: strp("撞位"), Position: intp(3)})
	assert.True(t, util.IsValidationError(err), "位置在课程内必须唯一")

	_, err = svc.CreateModule(424242, ModuleReq{Title: strp("无主")})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestReorderModulesValidations(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)
	course := testutil.SeedCourse(t, db, "重排", admin.ID)
	m1 := testutil.SeedModule(t, db, course.ID, "一", 1)
	m2 := testutil.SeedModule(t, db, course.ID, "二", 2)
	m3 := testutil.SeedModule(t, db, course.ID, "三", 3)

	other := testutil.SeedCourse(t, db, "别的课", admin.ID)
	foreign := testutil.SeedModule(t, db, other.ID, "外人", 1)

	svc := newContentService(db)

	err := svc.ReorderModules(course.ID, map[uint]int{foreign.ID: 1})
	assert.True(t, util.IsValidationError(err), "不属于该课程的模块整体拒绝")

	err = svc.ReorderModules(course.ID, map[uint]int{m1.ID: 5, m2.ID: 5})
	assert.True(t, util.IsValidationError(err), "目标位置互相重复")

	err = svc.ReorderModules(course.ID, map[uint]int{m1.ID: 3})
	assert.True(t, util.IsValidationError(err), "与未移动的模块撞位")

	// 合法的互换
	err = svc.ReorderModules(course.ID, map[uint]int{m1.ID: 3, m3.ID: 1})
	require.NoError(t, err)

	modules, err := svc.ModuleRepo.ListByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, m3.ID, modules[0].ID)
	assert.Equal(t, m2.ID, modules[1].ID)
	assert.Equal(t, m1.ID, modules[2].ID)
}

func TestLessonPayloadMustMatchType(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedEmployee(t, db, "admin", model.Admin)
	course := testutil.SeedCourse(t, db, "课时类型", admin.ID)
	m := testutil.SeedModule(t, db, course.ID, "第一章", 1)

	svc := newContentService(db)

	video := model.LessonVideo
	content := model.LessonContent
	resources := model.LessonResources

	l, err := svc.CreateLesson(m.ID, LessonReq{
		Title:      strp("视频课"),
		LessonType: &video,
		VideoURL:   strp("https://videos.example.com/onboarding.mp4"),
		Content:    strp("会被丢弃"),
	})
	require.NoError(t, err)
	assert.Empty(t, l.Content, "视频课时不保留正文")
	assert.Equal(t, "https://videos.example.com/onboarding.mp4", l.VideoURL)

	bad := raw(`"not-a-list"`)
	_, err = svc.CreateLesson(m.ID, LessonReq{
		Title:      strp("坏资源"),
		LessonType: &resources,
		Resources:  &bad,
	})
	assert.True(t, util.IsValidationError(err))

	good := raw(`[{"title": "员工手册", "url": "https://docs.example.com/handbook.pdf"}]`)
	l2, err := svc.CreateLesson(m.ID, LessonReq{
		Title:      strp("资源课"),
		LessonType: &resources,
		Resources:  &good,
	})
	require.NoError(t, err)
	assert.JSONEq(t, string(good), string(l2.Resources))

	// 类型切换清空旧负载
	l3, err := svc.UpdateLesson(l.ID, LessonReq{LessonType: &content, Content: strp("改成图文")})
	require.NoError(t, err)
	assert.Equal(t, "改成图文", l3.Content)
	assert.Empty(t, l3.VideoURL)
}
