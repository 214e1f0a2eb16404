package service

import (
	"encoding/json"
	"sort"

	"hr_training_backend/internal/model"
)

// CourseTree 课程完整内容树，一次组装、逐层有序，消费方不再自行排序
type CourseTree struct {
	Course  model.Course `json:"course"`
	Modules []ModuleNode `json:"modules"`
}

type ModuleNode struct {
	model.CourseModule
	Lessons []LessonNode `json:"lessons"`
	Quiz    *QuizNode    `json:"quiz,omitempty"`
}

type LessonNode struct {
	ID         uint                 `json:"id"`
	Title      string               `json:"title"`
	Position   int                  `json:"position"`
	LessonType model.LessonType     `json:"lessonType"`
	Content    string               `json:"content,omitempty"`
	VideoURL   string               `json:"videoUrl,omitempty"`
	Resources  []model.ResourceLink `json:"resources,omitempty"`
	Quiz       *QuizNode            `json:"quiz,omitempty"`
}

type QuizNode struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	PassMark  int            `json:"passMark"`
	TimeLimit int            `json:"timeLimit"`
	Questions []QuestionNode `json:"questions"`
}

type QuestionNode struct {
	ID           uint               `json:"id"`
	QuestionType model.QuestionType `json:"questionType"`
	Text         string             `json:"text"`
	Options      []string           `json:"options,omitempty"`
	Points       int                `json:"points"`
	Position     int                `json:"position"`
}

// assembleCourseTree 把平铺的行集合拼装成嵌套课程树。
// 纯内存操作：按父 ID 建索引，按 (position, id) 排序保证并列位置也有确定顺序，
// 测验按 ID 去重（章节查询和课时查询可能取到同一条）。
func assembleCourseTree(
	course model.Course,
	modules []model.CourseModule,
	lessons []model.Lesson,
	quizzes []model.Quiz,
	questions []model.Question,
) *CourseTree {
	questionsByQuiz := make(map[uint][]QuestionNode)
	for _, q := range questions {
		questionsByQuiz[q.QuizID] = append(questionsByQuiz[q.QuizID], QuestionNode{
			ID:           q.ID,
			QuestionType: q.QuestionType,
			Text:         q.Text,
			Options:      decodeStringList(q.Options),
			Points:       q.Points,
			Position:     q.Position,
		})
	}
	for _, qs := range questionsByQuiz {
		sortByPosition(qs)
	}

	seen := make(map[uint]bool)
	moduleQuiz := make(map[uint]*QuizNode)
	lessonQuiz := make(map[uint]*QuizNode)
	for _, quiz := range quizzes {
		if seen[quiz.ID] {
			continue
		}
		seen[quiz.ID] = true

		node := &QuizNode{
			ID:        quiz.ID,
			Title:     quiz.Title,
			PassMark:  quiz.PassMark,
			TimeLimit: quiz.TimeLimit,
			Questions: questionsByQuiz[quiz.ID],
		}
		if node.Questions == nil {
			node.Questions = []QuestionNode{}
		}

		if quiz.ModuleID != nil {
			moduleQuiz[*quiz.ModuleID] = node
		} else if quiz.LessonID != nil {
			lessonQuiz[*quiz.LessonID] = node
		}
	}

	lessonsByModule := make(map[uint][]LessonNode)
	for _, lesson := range lessons {
		lessonsByModule[lesson.ModuleID] = append(lessonsByModule[lesson.ModuleID], LessonNode{
			ID:         lesson.ID,
			Title:      lesson.Title,
			Position:   lesson.Position,
			LessonType: lesson.LessonType,
			Content:    lesson.Content,
			VideoURL:   lesson.VideoURL,
			Resources:  decodeResourceList(lesson.Resources),
			Quiz:       lessonQuiz[lesson.ID],
		})
	}

	tree := &CourseTree{
		Course:  course,
		Modules: []ModuleNode{},
	}
	for _, m := range modules {
		lessonNodes := lessonsByModule[m.ID]
		sort.SliceStable(lessonNodes, func(i, j int) bool {
			if lessonNodes[i].Position != lessonNodes[j].Position {
				return lessonNodes[i].Position < lessonNodes[j].Position
			}
			return lessonNodes[i].ID < lessonNodes[j].ID
		})
		if lessonNodes == nil {
			lessonNodes = []LessonNode{}
		}
		tree.Modules = append(tree.Modules, ModuleNode{
			CourseModule: m,
			Lessons:      lessonNodes,
			Quiz:         moduleQuiz[m.ID],
		})
	}
	sort.SliceStable(tree.Modules, func(i, j int) bool {
		if tree.Modules[i].Position != tree.Modules[j].Position {
			return tree.Modules[i].Position < tree.Modules[j].Position
		}
		return tree.Modules[i].ID < tree.Modules[j].ID
	})

	return tree
}

func sortByPosition(qs []QuestionNode) {
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Position != qs[j].Position {
			return qs[i].Position < qs[j].Position
		}
		return qs[i].ID < qs[j].ID
	})
}

// decodeStringList 存储里的 JSON 字段可能损坏或为空，
// 一律降级为空列表，坏一行不能坏整棵树
func decodeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

func decodeResourceList(raw json.RawMessage) []model.ResourceLink {
	if len(raw) == 0 {
		return nil
	}
	var list []model.ResourceLink
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}
