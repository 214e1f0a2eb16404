package service

import (
	"errors"
	"time"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	EmployeeRepo   *repository.EmployeeRepository
	ProgressSvc    *ProgressService
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	employeeRepo *repository.EmployeeRepository,
	progressSvc *ProgressService,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		EmployeeRepo:   employeeRepo,
		ProgressSvc:    progressSvc,
	}
}

type AssignReq struct {
	EmployeeIDs []uint     `json:"employeeIds" binding:"required"`
	DueDate     *time.Time `json:"dueDate"`
}

type AssignResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Assign 幂等的批量指派：已存在的 (员工, 课程) 静默跳过，只计数不报错。
// 重复指派是正常的调用方行为（比如重跑一次批量指派），不是错误。
func (s *EnrollmentService) Assign(courseID uint, req AssignReq, assignedBy uint) (*AssignResult, error) {
	if len(req.EmployeeIDs) == 0 {
		return nil, util.NewValidationError("employeeIds is required")
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	employees, err := s.EmployeeRepo.FindByIDs(req.EmployeeIDs)
	if err != nil {
		return nil, err
	}
	if len(employees) != len(dedupeIDs(req.EmployeeIDs)) {
		return nil, util.ErrEmployeeNotFound
	}

	result := &AssignResult{}
	for _, employeeID := range req.EmployeeIDs {
		_, err := s.EnrollmentRepo.FindByEmployeeAndCourse(employeeID, courseID)
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		e := &model.Enrollment{
			EmployeeID: employeeID,
			CourseID:   courseID,
			AssignedBy: assignedBy,
			AssignedAt: time.Now(),
			DueDate:    req.DueDate,
			Status:     model.EnrollAssigned,
		}
		if err := s.EnrollmentRepo.Create(e); err != nil {
			return nil, err
		}
		result.Inserted++
	}

	return result, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

type EmployeeStatus string

const (
	StatusAvailable  EmployeeStatus = "available"
	StatusAssigned   EmployeeStatus = "assigned"
	StatusInProgress EmployeeStatus = "in_progress"
	StatusCompleted  EmployeeStatus = "completed"
)

type EmployeeCourseRow struct {
	Course            model.Course      `json:"course"`
	Enrollment        *model.Enrollment `json:"enrollment,omitempty"`
	CompletionPercent int               `json:"completionPercent"`
	EmployeeStatus    EmployeeStatus    `json:"employeeStatus"`
}

// ListForEmployee 全部已发布课程，合并该员工的指派行和推导出的完成状态。
// 完成度 100 一律视为 completed，(0,100) 一律 in_progress——存储里的
// Enrollment.Status 只是提示，不作数。
func (s *EnrollmentService) ListForEmployee(employeeID uint) ([]EmployeeCourseRow, error) {
	courses, err := s.CourseRepo.ListPublished()
	if err != nil {
		return nil, err
	}

	enrollments, err := s.EnrollmentRepo.ListByEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	enrollByCourse := make(map[uint]*model.Enrollment, len(enrollments))
	for i := range enrollments {
		enrollByCourse[enrollments[i].CourseID] = &enrollments[i]
	}

	rows := make([]EmployeeCourseRow, 0, len(courses))
	for _, course := range courses {
		percent, err := s.ProgressSvc.CompletionPercent(employeeID, course.ID)
		if err != nil {
			return nil, err
		}

		enrollment := enrollByCourse[course.ID]
		rows = append(rows, EmployeeCourseRow{
			Course:            course,
			Enrollment:        enrollment,
			CompletionPercent: percent,
			EmployeeStatus:    DeriveStatus(enrollment != nil, percent),
		})
	}

	return rows, nil
}

// DeriveStatus 三段式推导：100 → completed，(0,100) → in_progress，
// 有指派但没动静 → assigned，其余 → available
func DeriveStatus(enrolled bool, completionPercent int) EmployeeStatus {
	switch {
	case completionPercent >= 100:
		return StatusCompleted
	case completionPercent > 0:
		return StatusInProgress
	case enrolled:
		return StatusAssigned
	default:
		return StatusAvailable
	}
}
