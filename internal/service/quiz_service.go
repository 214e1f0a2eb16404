package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/util"
	"hr_training_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
	ModuleRepo  *repository.ModuleRepository
	LessonRepo  *repository.LessonRepository
	CourseSvc   *CourseService
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.AttemptRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	courseSvc *CourseService,
) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		ModuleRepo:  moduleRepo,
		LessonRepo:  lessonRepo,
		CourseSvc:   courseSvc,
	}
}

type QuizReq struct {
	ModuleID  *uint   `json:"moduleId"`
	LessonID  *uint   `json:"lessonId"`
	Title     *string `json:"title"`
	PassMark  *int    `json:"passMark"`
	TimeLimit *int    `json:"timeLimit"`
}

func (s *QuizService) CreateQuiz(req QuizReq) (*model.Quiz, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.NewValidationError("title is required")
	}
	// 挂载点：章节或课时，必须恰好一个
	if (req.ModuleID == nil) == (req.LessonID == nil) {
		return nil, util.NewValidationError("quiz must be attached to exactly one of module or lesson")
	}

	quiz := &model.Quiz{Title: *req.Title, PassMark: 60}
	if req.ModuleID != nil {
		if _, err := s.ModuleRepo.FindByID(*req.ModuleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrModuleNotFound
			}
			return nil, err
		}
		quiz.ModuleID = req.ModuleID
	}
	if req.LessonID != nil {
		if _, err := s.LessonRepo.FindByID(*req.LessonID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrLessonNotFound
			}
			return nil, err
		}
		quiz.LessonID = req.LessonID
	}
	if req.PassMark != nil {
		if *req.PassMark < 0 || *req.PassMark > 100 {
			return nil, util.NewValidationError("passMark must be between 0 and 100")
		}
		quiz.PassMark = *req.PassMark
	}
	if req.TimeLimit != nil {
		if *req.TimeLimit < 0 {
			return nil, util.NewValidationError("timeLimit must not be negative")
		}
		quiz.TimeLimit = *req.TimeLimit
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	s.invalidateQuizCourse(quiz)
	return quiz, nil
}

func (s *QuizService) UpdateQuiz(quizID uint, req QuizReq) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, util.NewValidationError("title is required")
		}
		quiz.Title = *req.Title
	}
	if req.PassMark != nil {
		if *req.PassMark < 0 || *req.PassMark > 100 {
			return nil, util.NewValidationError("passMark must be between 0 and 100")
		}
		quiz.PassMark = *req.PassMark
	}
	if req.TimeLimit != nil {
		if *req.TimeLimit < 0 {
			return nil, util.NewValidationError("timeLimit must not be negative")
		}
		quiz.TimeLimit = *req.TimeLimit
	}

	if err := s.QuizRepo.Save(quiz); err != nil {
		return nil, err
	}
	s.invalidateQuizCourse(quiz)
	return quiz, nil
}

func (s *QuizService) GetQuiz(quizID uint) (*model.Quiz, []model.Question, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrQuizNotFound
		}
		return nil, nil, err
	}
	qs, err := s.QuizRepo.ListQuestions(quizID)
	return quiz, qs, err
}

func (s *QuizService) DeleteQuiz(quizID uint) error {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	if err := s.QuizRepo.Delete(quizID); err != nil {
		return err
	}
	s.invalidateQuizCourse(quiz)
	return nil
}

type QuestionReq struct {
	QuestionType *model.QuestionType `json:"questionType"`
	Text         *string             `json:"text"`
	Options      *json.RawMessage    `json:"options"`
	Answer       *json.RawMessage    `json:"answer"`
	Points       *int                `json:"points"`
	Position     *int                `json:"position"`
}

func (s *QuizService) CreateQuestion(quizID uint, req QuestionReq) (*model.Question, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if req.QuestionType == nil || !validQuestionType(*req.QuestionType) {
		return nil, util.NewValidationError("invalid questionType")
	}
	if req.Text == nil || *req.Text == "" {
		return nil, util.NewValidationError("question text is required")
	}
	if req.Answer == nil {
		return nil, util.NewValidationError("answer is required")
	}

	q := &model.Question{
		QuizID:       quizID,
		QuestionType: *req.QuestionType,
		Text:         *req.Text,
		Answer:       *req.Answer,
		Points:       1,
	}
	if req.Options != nil && *req.QuestionType != model.QuestionShort {
		q.Options = *req.Options
	}
	if req.Points != nil {
		if *req.Points <= 0 {
			return nil, util.NewValidationError("points must be positive")
		}
		q.Points = *req.Points
	}
	if req.Position != nil {
		q.Position = *req.Position
	}

	if err := s.QuizRepo.CreateQuestion(q); err != nil {
		return nil, err
	}
	s.invalidateQuizCourse(quiz)
	return q, nil
}

func (s *QuizService) UpdateQuestion(questionID uint, req QuestionReq) (*model.Question, error) {
	q, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	if req.QuestionType != nil {
		if !validQuestionType(*req.QuestionType) {
			return nil, util.NewValidationError("invalid questionType")
		}
		q.QuestionType = *req.QuestionType
	}
	if req.Text != nil {
		if *req.Text == "" {
			return nil, util.NewValidationError("question text is required")
		}
		q.Text = *req.Text
	}
	if req.Options != nil {
		q.Options = *req.Options
	}
	if req.Answer != nil {
		q.Answer = *req.Answer
	}
	if req.Points != nil {
		if *req.Points <= 0 {
			return nil, util.NewValidationError("points must be positive")
		}
		q.Points = *req.Points
	}
	if req.Position != nil {
		q.Position = *req.Position
	}

	if err := s.QuizRepo.SaveQuestion(q); err != nil {
		return nil, err
	}
	if quiz, err := s.QuizRepo.FindByID(q.QuizID); err == nil {
		s.invalidateQuizCourse(quiz)
	}
	return q, nil
}

func (s *QuizService) DeleteQuestion(questionID uint) error {
	q, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	if err := s.QuizRepo.DeleteQuestion(questionID); err != nil {
		return err
	}
	if quiz, err := s.QuizRepo.FindByID(q.QuizID); err == nil {
		s.invalidateQuizCourse(quiz)
	}
	return nil
}

type AttemptSubmission struct {
	Answers map[uint]json.RawMessage `json:"answers"` // questionID → 提交值，形状随题型
}

// SubmitAttempt 评一次测验提交并落一条答题记录。
// 1. 取测验和题目，测验不存在直接失败，不写任何行
// 2. 逐题判分：提交里多余的题目 ID 忽略，缺答按错算
// 3. 分数 = round(100 * 得分 / 总分)；没有题目的测验恒为 0 分且不及格
// 4. 追加写入 Attempt，逐题明细留档供审计
func (s *QuizService) SubmitAttempt(employeeID, quizID uint, submission AttemptSubmission) (*model.QuizAttempt, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	questions, err := s.QuizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	totalPoints := 0
	earnedPoints := 0
	results := make([]model.AttemptQuestionResult, 0, len(questions))

	for _, q := range questions {
		totalPoints += q.Points

		submitted, answered := submission.Answers[q.ID]
		correct := false
		if answered {
			correct = parseAnswerKey(q).isCorrect(submitted)
		}

		earned := 0
		if correct {
			earned = q.Points
			earnedPoints += earned
		}

		results = append(results, model.AttemptQuestionResult{
			QuestionID:     q.ID,
			Submitted:      submitted,
			Correct:        correct,
			PointsEarned:   earned,
			PointsPossible: q.Points,
		})
	}

	score := roundPercent(earnedPoints, totalPoints)
	passed := totalPoints > 0 && score >= quiz.PassMark

	detail, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		EmployeeID:  employeeID,
		QuizID:      quizID,
		Score:       score,
		Passed:      passed,
		Detail:      detail,
		SubmittedAt: time.Now(),
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	monitoring.AttemptsGraded.Inc()
	return attempt, nil
}

func (s *QuizService) ListAttempts(employeeID, quizID uint) ([]model.QuizAttempt, error) {
	return s.AttemptRepo.ListByEmployeeAndQuiz(employeeID, quizID)
}

func validQuestionType(t model.QuestionType) bool {
	switch t {
	case model.QuestionSingle, model.QuestionMulti, model.QuestionTrueFalse, model.QuestionShort:
		return true
	}
	return false
}

// invalidateQuizCourse 测验属于章节或课时，反查所属课程后失效缓存
func (s *QuizService) invalidateQuizCourse(quiz *model.Quiz) {
	var moduleID uint
	if quiz.ModuleID != nil {
		moduleID = *quiz.ModuleID
	} else if quiz.LessonID != nil {
		lesson, err := s.LessonRepo.FindByID(*quiz.LessonID)
		if err != nil {
			return
		}
		moduleID = lesson.ModuleID
	} else {
		return
	}
	if m, err := s.ModuleRepo.FindByID(moduleID); err == nil {
		s.CourseSvc.InvalidateTree(context.Background(), m.CourseID)
	}
}
