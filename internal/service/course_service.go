package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/util"
	"hr_training_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	courseTreeKeyPrefix = "course_tree:"
	courseTreeCacheTTL  = 10 * time.Minute
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository
	QuizRepo   *repository.QuizRepository
	Redis      *redis.Client
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	quizRepo *repository.QuizRepository,
	rdb *redis.Client,
) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
		QuizRepo:   quizRepo,
		Redis:      rdb,
	}
}

type CourseReq struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	CoverURL    *string                 `json:"coverUrl"`
	Category    *string                 `json:"category"`
	Difficulty  *model.CourseDifficulty `json:"difficulty"`
	Duration    *int                    `json:"duration"`
}

func (s *CourseService) CreateCourse(creatorID uint, req CourseReq) (*model.Course, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.NewValidationError("title is required")
	}

	course := &model.Course{
		Title:      *req.Title,
		Difficulty: model.Beginner,
		Status:     model.CourseDraft,
		CreatorID:  creatorID,
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.CoverURL != nil {
		course.CoverURL = *req.CoverURL
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Difficulty != nil {
		if !validDifficulty(*req.Difficulty) {
			return nil, util.NewValidationError("invalid difficulty")
		}
		course.Difficulty = *req.Difficulty
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(courseID uint, req CourseReq) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, util.NewValidationError("title is required")
		}
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.CoverURL != nil {
		course.CoverURL = *req.CoverURL
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Difficulty != nil {
		if !validDifficulty(*req.Difficulty) {
			return nil, util.NewValidationError("invalid difficulty")
		}
		course.Difficulty = *req.Difficulty
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}

	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	s.InvalidateTree(context.Background(), courseID)
	return course, nil
}

// SetCourseStatus 发布或撤回课程。正常流程是 draft→published，改回 draft 也允许
func (s *CourseService) SetCourseStatus(courseID uint, status model.CourseStatus) (*model.Course, error) {
	if status != model.CourseDraft && status != model.CoursePublished {
		return nil, util.NewValidationError("invalid course status")
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	course.Status = status
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	s.InvalidateTree(context.Background(), courseID)
	return course, nil
}

func (s *CourseService) GetCourse(courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListCourses(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListAll(page, limit)
}

// DeleteCourse 级联清掉整个课程树和指派记录
func (s *CourseService) DeleteCourse(courseID uint) error {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if err := s.CourseRepo.Delete(courseID); err != nil {
		return err
	}
	s.InvalidateTree(context.Background(), courseID)
	return nil
}

// GetCourseTree 组装课程内容树。
// 五次顺序读取：课程 → 章节 → 课时 → 测验（章节级∪课时级）→ 题目，
// 任何一步读失败整体失败，绝不返回半棵树。
// 已发布课程的树走 Redis 缓存，内容写操作负责失效。
func (s *CourseService) GetCourseTree(ctx context.Context, courseID uint) (*CourseTree, error) {
	cacheKey := fmt.Sprintf("%s%d", courseTreeKeyPrefix, courseID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var tree CourseTree
			if json.Unmarshal([]byte(cached), &tree) == nil {
				return &tree, nil
			}
		}
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, util.ErrContentUnavailable
	}

	modules, err := s.ModuleRepo.ListByCourse(courseID)
	if err != nil {
		return nil, util.ErrContentUnavailable
	}

	moduleIDs := make([]uint, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	lessons, err := s.LessonRepo.ListByModuleIDs(moduleIDs)
	if err != nil {
		return nil, util.ErrContentUnavailable
	}
	lessonIDs := make([]uint, 0, len(lessons))
	for _, l := range lessons {
		lessonIDs = append(lessonIDs, l.ID)
	}

	quizzes, err := s.QuizRepo.ListByModuleOrLessonIDs(moduleIDs, lessonIDs)
	if err != nil {
		return nil, util.ErrContentUnavailable
	}
	quizIDs := make([]uint, 0, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
	}

	questions, err := s.QuizRepo.ListQuestionsByQuizIDs(quizIDs)
	if err != nil {
		return nil, util.ErrContentUnavailable
	}

	tree := assembleCourseTree(*course, modules, lessons, quizzes, questions)

	if s.Redis != nil && course.Status == model.CoursePublished {
		if data, err := json.Marshal(tree); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, courseTreeCacheTTL).Err(); err != nil {
				logger.Log.Warn("缓存课程树失败", zap.Uint("courseId", courseID), zap.Error(err))
			}
		}
	}

	return tree, nil
}

// InvalidateTree 内容有任何写入就丢掉缓存的树
func (s *CourseService) InvalidateTree(ctx context.Context, courseID uint) {
	if s.Redis == nil {
		return
	}
	cacheKey := fmt.Sprintf("%s%d", courseTreeKeyPrefix, courseID)
	if err := s.Redis.Del(ctx, cacheKey).Err(); err != nil {
		logger.Log.Warn("课程树缓存失效失败", zap.Uint("courseId", courseID), zap.Error(err))
	}
}

func validDifficulty(d model.CourseDifficulty) bool {
	switch d {
	case model.Beginner, model.Intermediate, model.Advanced:
		return true
	}
	return false
}
