package database

import (
	"fmt"
	"log"

	"hr_training_backend/internal/config"
	"hr_training_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate 建表。测试用 sqlite 时也走这份模型列表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.EmployeeAccount{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.Quiz{},
		&model.Question{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.QuizAttempt{},
	)
}
