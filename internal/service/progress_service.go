package service

import (
	"errors"
	"time"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/util"
	"hr_training_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, lessonRepo *repository.LessonRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
	}
}

type ProgressReq struct {
	Completed    bool `json:"completed"`
	LastPosition *int `json:"lastPosition"` // 视频课时的播放位置（秒）
}

// RecordLessonProgress 写入 (员工, 课时) 的进度行。
// 标记完成时盖当前时间戳；重复标记会重新盖（以最后一次为准，调用方按
// last write wins 理解）；取消完成则清掉时间戳。除这一行外没有别的副作用，
// 指派状态由读取方推导，这里不回写。请求不带 lastPosition 时保留已存的播放位置。
func (s *ProgressService) RecordLessonProgress(employeeID, lessonID uint, req ProgressReq) (*model.LessonProgress, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	p := &model.LessonProgress{
		EmployeeID: employeeID,
		LessonID:   lessonID,
		Completed:  req.Completed,
	}
	if req.Completed {
		now := time.Now()
		p.CompletedAt = &now
	}
	if req.LastPosition != nil {
		p.LastPosition = *req.LastPosition
	}

	if err := s.ProgressRepo.Upsert(p, req.LastPosition != nil); err != nil {
		return nil, err
	}

	if req.Completed {
		monitoring.LessonsCompleted.Inc()
	}

	stored, err := s.ProgressRepo.FindByEmployeeAndLesson(employeeID, lessonID)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// CompletionPercent 课程完成百分比 = round(100 * 已完成课时 / 全部课时)。
// 没有课时的课程定义为 0，避免除零。
func (s *ProgressService) CompletionPercent(employeeID, courseID uint) (int, error) {
	lessonIDs, err := s.LessonRepo.LessonIDsByCourse(courseID)
	if err != nil {
		return 0, err
	}
	if len(lessonIDs) == 0 {
		return 0, nil
	}

	completed, err := s.ProgressRepo.CountCompleted(employeeID, lessonIDs)
	if err != nil {
		return 0, err
	}

	return roundPercent(int(completed), len(lessonIDs)), nil
}
