package service

import (
	"context"
	"encoding/json"
	"errors"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/util"

	"gorm.io/gorm"
)

// ContentService 章节和课时的管理面：增删改、排序、级联清理
type ContentService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository
	CourseSvc  *CourseService
}

func NewContentService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	courseSvc *CourseService,
) *ContentService {
	return &ContentService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
		CourseSvc:  courseSvc,
	}
}

type ModuleReq struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

func (s *ContentService) CreateModule(courseID uint, req ModuleReq) (*model.CourseModule, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.NewValidationError("title is required")
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	m := &model.CourseModule{
		CourseID: courseID,
		Title:    *req.Title,
	}
	if req.Position != nil {
		m.Position = *req.Position
	} else {
		// 默认排在末尾
		max, err := s.ModuleRepo.MaxPosition(courseID)
		if err != nil {
			return nil, err
		}
		m.Position = max + 1
	}

	// 同一课程内位置必须唯一（允许有空位）
	siblings, err := s.ModuleRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	for _, sib := range siblings {
		if sib.Position == m.Position {
			return nil, util.NewValidationError("position already taken in this course")
		}
	}

	if err := s.ModuleRepo.Create(m); err != nil {
		return nil, err
	}
	s.CourseSvc.InvalidateTree(context.Background(), courseID)
	return m, nil
}

func (s *ContentService) UpdateModule(moduleID uint, req ModuleReq) (*model.CourseModule, error) {
	m, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, util.NewValidationError("title is required")
		}
		m.Title = *req.Title
	}
	if req.Position != nil && *req.Position != m.Position {
		siblings, err := s.ModuleRepo.ListByCourse(m.CourseID)
		if err != nil {
			return nil, err
		}
		for _, sib := range siblings {
			if sib.ID != m.ID && sib.Position == *req.Position {
				return nil, util.NewValidationError("position already taken in this course")
			}
		}
		m.Position = *req.Position
	}

	if err := s.ModuleRepo.Save(m); err != nil {
		return nil, err
	}
	s.CourseSvc.InvalidateTree(context.Background(), m.CourseID)
	return m, nil
}

// ReorderModules 整体重排。positions 是 moduleID → 新位置，
// 校验：全部属于该课程、新位置之间无重复。不要求连续。
func (s *ContentService) ReorderModules(courseID uint, positions map[uint]int) error {
	modules, err := s.ModuleRepo.ListByCourse(courseID)
	if err != nil {
		return err
	}

	known := make(map[uint]int, len(modules))
	for _, m := range modules {
		known[m.ID] = m.Position
	}

	taken := make(map[int]uint)
	for id, pos := range positions {
		if _, ok := known[id]; !ok {
			return util.NewValidationError("module does not belong to this course")
		}
		if _, dup := taken[pos]; dup {
			return util.NewValidationError("duplicate position in reorder request")
		}
		taken[pos] = id
	}
	// 未被重排的章节保持原位，不能和新位置撞车
	for id, pos := range known {
		if _, moved := positions[id]; moved {
			continue
		}
		if _, clash := taken[pos]; clash {
			return util.NewValidationError("reorder would collide with an unmoved module")
		}
		taken[pos] = id
	}

	if err := s.ModuleRepo.UpdatePositions(positions); err != nil {
		return err
	}
	s.CourseSvc.InvalidateTree(context.Background(), courseID)
	return nil
}

func (s *ContentService) DeleteModule(moduleID uint) error {
	m, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}
	if err := s.ModuleRepo.Delete(moduleID); err != nil {
		return err
	}
	s.CourseSvc.InvalidateTree(context.Background(), m.CourseID)
	return nil
}

type LessonReq struct {
	Title      *string           `json:"title"`
	Position   *int              `json:"position"`
	LessonType *model.LessonType `json:"lessonType"`
	Content    *string           `json:"content"`
	VideoURL   *string           `json:"videoUrl"`
	Resources  *json.RawMessage  `json:"resources"`
}

func (s *ContentService) CreateLesson(moduleID uint, req LessonReq) (*model.Lesson, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.NewValidationError("title is required")
	}
	if req.LessonType == nil {
		return nil, util.NewValidationError("lessonType is required")
	}
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	lesson := &model.Lesson{
		ModuleID:   moduleID,
		Title:      *req.Title,
		LessonType: *req.LessonType,
	}
	if err := applyLessonPayload(lesson, req); err != nil {
		return nil, err
	}

	if req.Position != nil {
		lesson.Position = *req.Position
	} else {
		max, err := s.LessonRepo.MaxPosition(moduleID)
		if err != nil {
			return nil, err
		}
		lesson.Position = max + 1
	}

	siblings, err := s.LessonRepo.ListByModule(moduleID)
	if err != nil {
		return nil, err
	}
	for _, sib := range siblings {
		if sib.Position == lesson.Position {
			return nil, util.NewValidationError("position already taken in this module")
		}
	}

	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	s.invalidateByModule(moduleID)
	return lesson, nil
}

func (s *ContentService) UpdateLesson(lessonID uint, req LessonReq) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, util.NewValidationError("title is required")
		}
		lesson.Title = *req.Title
	}
	if req.LessonType != nil {
		lesson.LessonType = *req.LessonType
	}
	if err := applyLessonPayload(lesson, req); err != nil {
		return nil, err
	}
	if req.Position != nil && *req.Position != lesson.Position {
		siblings, err := s.LessonRepo.ListByModule(lesson.ModuleID)
		if err != nil {
			return nil, err
		}
		for _, sib := range siblings {
			if sib.ID != lesson.ID && sib.Position == *req.Position {
				return nil, util.NewValidationError("position already taken in this module")
			}
		}
		lesson.Position = *req.Position
	}

	if err := s.LessonRepo.Save(lesson); err != nil {
		return nil, err
	}
	s.invalidateByModule(lesson.ModuleID)
	return lesson, nil
}

func (s *ContentService) DeleteLesson(lessonID uint) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	if err := s.LessonRepo.Delete(lessonID); err != nil {
		return err
	}
	s.invalidateByModule(lesson.ModuleID)
	return nil
}

// applyLessonPayload 三种课时类型的载荷互斥，只保留与类型匹配的字段
func applyLessonPayload(lesson *model.Lesson, req LessonReq) error {
	switch lesson.LessonType {
	case model.LessonContent:
		if req.Content != nil {
			lesson.Content = *req.Content
		}
		lesson.VideoURL = ""
		lesson.Resources = nil
	case model.LessonVideo:
		if req.VideoURL != nil {
			lesson.VideoURL = *req.VideoURL
		}
		lesson.Content = ""
		lesson.Resources = nil
	case model.LessonResources:
		if req.Resources != nil {
			var links []model.ResourceLink
			if err := json.Unmarshal(*req.Resources, &links); err != nil {
				return util.NewValidationError("resources must be a list of {title, url}")
			}
			lesson.Resources = *req.Resources
		}
		lesson.Content = ""
		lesson.VideoURL = ""
	default:
		return util.NewValidationError("invalid lessonType")
	}
	return nil
}

func (s *ContentService) invalidateByModule(moduleID uint) {
	if m, err := s.ModuleRepo.FindByID(moduleID); err == nil {
		s.CourseSvc.InvalidateTree(context.Background(), m.CourseID)
	}
}
