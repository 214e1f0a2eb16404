package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"hr_training_backend/internal/model"
	"hr_training_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// DB 建一个独立的内存 sqlite 库并完成建表，各测试互不串扰。
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

// SeedEmployee 插入一个员工账号，密码不做哈希（测试不走登录）。
func SeedEmployee(tb testing.TB, db *gorm.DB, name string, role model.EmployeeRole) *model.EmployeeAccount {
	tb.Helper()

	emp := &model.EmployeeAccount{
		Name:     name,
		Email:    fmt.Sprintf("%s_%d@example.com", name, dbSeq.Add(1)),
		Password: "test-password",
		Role:     role,
	}
	if err := db.Create(emp).Error; err != nil {
		tb.Fatalf("failed to seed employee: %v", err)
	}
	return emp
}

// SeedCourse 插入一门已发布课程。
func SeedCourse(tb testing.TB, db *gorm.DB, title string, creatorID uint) *model.Course {
	tb.Helper()

	course := &model.Course{
		Title:      title,
		Difficulty: model.Beginner,
		Status:     model.CoursePublished,
		CreatorID:  creatorID,
	}
	if err := db.Create(course).Error; err != nil {
		tb.Fatalf("failed to seed course: %v", err)
	}
	return course
}

// SeedModule 插入一个课程模块。
func SeedModule(tb testing.TB, db *gorm.DB, courseID uint, title string, position int) *model.CourseModule {
	tb.Helper()

	m := &model.CourseModule{
		CourseID: courseID,
		Title:    title,
		Position: position,
	}
	if err := db.Create(m).Error; err != nil {
		tb.Fatalf("failed to seed module: %v", err)
	}
	return m
}

// SeedLesson 插入一个内容类型课时。
func SeedLesson(tb testing.TB, db *gorm.DB, moduleID uint, title string, position int) *model.Lesson {
	tb.Helper()

	lesson := &model.Lesson{
		ModuleID:   moduleID,
		Title:      title,
		Position:   position,
		LessonType: model.LessonContent,
		Content:    "lesson body",
	}
	if err := db.Create(lesson).Error; err != nil {
		tb.Fatalf("failed to seed lesson: %v", err)
	}
	return lesson
}
