package service

import (
	"time"

	"hr_training_backend/internal/repository"
)

// ReportingService 只读聚合视图。
// 两个视图都直接从 Progress/Attempt 源行现算，不维护冗余计数器：
// 报表读取频率远低于写入，用读时成本换掉计数器与源数据不一致这类问题。
type ReportingService struct {
	CourseRepo     *repository.CourseRepository
	ModuleRepo     *repository.ModuleRepository
	LessonRepo     *repository.LessonRepository
	QuizRepo       *repository.QuizRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	AttemptRepo    *repository.AttemptRepository
	EmployeeRepo   *repository.EmployeeRepository
}

func NewReportingService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	quizRepo *repository.QuizRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	attemptRepo *repository.AttemptRepository,
	employeeRepo *repository.EmployeeRepository,
) *ReportingService {
	return &ReportingService{
		CourseRepo:     courseRepo,
		ModuleRepo:     moduleRepo,
		LessonRepo:     lessonRepo,
		QuizRepo:       quizRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		AttemptRepo:    attemptRepo,
		EmployeeRepo:   employeeRepo,
	}
}

type CourseReportRow struct {
	CourseID       uint    `json:"courseId"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	EnrolledCount  int     `json:"enrolledCount"`
	StartedCount   int     `json:"startedCount"`   // 有至少一条进度行的员工数（完成与否都算）
	CompletedCount int     `json:"completedCount"` // 课时全部完成的员工数
	AttemptCount   int     `json:"attemptCount"`
	AverageScore   float64 `json:"averageScore"`
	PassRate       float64 `json:"passRate"` // 及格提交占全部提交的比例
}

// CourseReport 每门课程一行，进度和答题数据按章节→课程的归属关系汇总
func (s *ReportingService) CourseReport() ([]CourseReportRow, error) {
	courses, _, err := s.CourseRepo.ListAll(1, 0)
	if err != nil {
		return nil, err
	}

	rows := make([]CourseReportRow, 0, len(courses))
	for _, course := range courses {
		row := CourseReportRow{
			CourseID: course.ID,
			Title:    course.Title,
			Status:   string(course.Status),
		}

		enrolled, err := s.EnrollmentRepo.CountByCourse(course.ID)
		if err != nil {
			return nil, err
		}
		row.EnrolledCount = int(enrolled)

		lessonIDs, err := s.LessonRepo.LessonIDsByCourse(course.ID)
		if err != nil {
			return nil, err
		}

		progressRows, err := s.ProgressRepo.ListByLessonIDs(lessonIDs)
		if err != nil {
			return nil, err
		}
		started := make(map[uint]bool)
		completedLessons := make(map[uint]int)
		for _, p := range progressRows {
			started[p.EmployeeID] = true
			if p.Completed {
				completedLessons[p.EmployeeID]++
			}
		}
		row.StartedCount = len(started)
		if len(lessonIDs) > 0 {
			for _, n := range completedLessons {
				if n >= len(lessonIDs) {
					row.CompletedCount++
				}
			}
		}

		quizIDs, err := s.courseQuizIDs(course.ID)
		if err != nil {
			return nil, err
		}
		attempts, err := s.AttemptRepo.ListByQuizIDs(quizIDs)
		if err != nil {
			return nil, err
		}
		row.AttemptCount = len(attempts)
		if len(attempts) > 0 {
			scoreSum := 0
			passCount := 0
			for _, a := range attempts {
				scoreSum += a.Score
				if a.Passed {
					passCount++
				}
			}
			row.AverageScore = float64(scoreSum) / float64(len(attempts))
			row.PassRate = float64(passCount) / float64(len(attempts))
		}

		rows = append(rows, row)
	}

	return rows, nil
}

type EmployeeReportRow struct {
	EmployeeID        uint           `json:"employeeId"`
	EmployeeName      string         `json:"employeeName"`
	CourseID          uint           `json:"courseId"`
	CourseTitle       string         `json:"courseTitle"`
	CompletionPercent int            `json:"completionPercent"`
	AttemptCount      int            `json:"attemptCount"`
	LatestScore       *int           `json:"latestScore,omitempty"` // 最近一次提交（按时间，不是最高分）
	LatestPassed      *bool          `json:"latestPassed,omitempty"`
	Status            EmployeeStatus `json:"status"`
	Overdue           bool           `json:"overdue"`
	DueDate           *time.Time     `json:"dueDate,omitempty"`
}

// EmployeeReport 每条指派一行。
// overdue = 设了截止日 且 完成度不足 100 且 截止日严格早于今天。
func (s *ReportingService) EmployeeReport(courseID uint) ([]EmployeeReportRow, error) {
	enrollments, err := s.EnrollmentRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	lessonIDs, err := s.LessonRepo.LessonIDsByCourse(courseID)
	if err != nil {
		return nil, err
	}
	quizIDs, err := s.courseQuizIDs(courseID)
	if err != nil {
		return nil, err
	}

	employeeIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		employeeIDs = append(employeeIDs, e.EmployeeID)
	}
	employees, err := s.EmployeeRepo.FindByIDs(employeeIDs)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[uint]string, len(employees))
	for _, emp := range employees {
		nameByID[emp.ID] = emp.Name
	}

	now := time.Now()
	// 本地日历日零点，Truncate 截的是 UTC 天，跨时区会错一天
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rows := make([]EmployeeReportRow, 0, len(enrollments))
	for _, e := range enrollments {
		row := EmployeeReportRow{
			EmployeeID:   e.EmployeeID,
			EmployeeName: nameByID[e.EmployeeID],
			CourseID:     courseID,
			CourseTitle:  course.Title,
			DueDate:      e.DueDate,
		}

		completed, err := s.ProgressRepo.CountCompleted(e.EmployeeID, lessonIDs)
		if err != nil {
			return nil, err
		}
		row.CompletionPercent = roundPercent(int(completed), len(lessonIDs))

		attempts, err := s.AttemptRepo.ListByEmployeeAndQuizIDs(e.EmployeeID, quizIDs)
		if err != nil {
			return nil, err
		}
		row.AttemptCount = len(attempts)
		if len(attempts) > 0 {
			latest := attempts[len(attempts)-1] // 升序排列，末尾即最近
			row.LatestScore = &latest.Score
			row.LatestPassed = &latest.Passed
		}

		row.Status = DeriveStatus(true, row.CompletionPercent)
		row.Overdue = e.DueDate != nil && row.CompletionPercent < 100 && e.DueDate.Before(today)

		rows = append(rows, row)
	}

	return rows, nil
}

// courseQuizIDs 课程下全部测验：章节级 + 课时级
func (s *ReportingService) courseQuizIDs(courseID uint) ([]uint, error) {
	modules, err := s.ModuleRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	moduleIDs := make([]uint, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	lessonIDs, err := s.LessonRepo.LessonIDsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.QuizRepo.ListByModuleOrLessonIDs(moduleIDs, lessonIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(quizzes))
	ids := make([]uint, 0, len(quizzes))
	for _, q := range quizzes {
		if !seen[q.ID] {
			seen[q.ID] = true
			ids = append(ids, q.ID)
		}
	}
	return ids, nil
}
