package controller

import (
	"strconv"

	"hr_training_backend/internal/service"
	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// CreateQuiz godoc
// @Summary 创建测验
// @Description 创建测验，必须且只能挂在一个模块或一个课时上
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.QuizReq true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response "挂载点缺失或重复"
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary 更新测验
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body service.QuizReq true "测验信息"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/admin/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的测验ID")
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.UpdateQuiz(uint(quizID), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// GetQuiz godoc
// @Summary 获取测验及题目
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的测验ID")
		return
	}

	quiz, questions, err := c.QuizService.GetQuiz(uint(quizID))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"quiz":      quiz,
		"questions": questions,
	})
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Description 删除测验及其题目和答题记录
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的测验ID")
		return
	}

	if err := c.QuizService.DeleteQuiz(uint(quizID)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "测验已删除"})
}

// CreateQuestion godoc
// @Summary 创建题目
// @Description 在测验下创建题目，答案键形状须与题型匹配
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body service.QuestionReq true "题目信息"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "题型或答案键不合法"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/admin/quizzes/{id}/questions [post]
func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的测验ID")
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuizService.CreateQuestion(uint(quizID), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目ID"
// @Param   body body service.QuestionReq true "题目信息"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	questionID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的题目ID")
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuizService.UpdateQuestion(uint(questionID), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	questionID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的题目ID")
		return
	}

	if err := c.QuizService.DeleteQuestion(uint(questionID)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "题目已删除"})
}

// SubmitAttempt godoc
// @Summary 提交测验答卷
// @Description 评分并追加一条答题记录，重复提交会产生新记录
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body service.AttemptSubmission true "题目ID到提交值的映射"
// @Success 201 {object} util.Response{data=model.QuizAttempt}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetEmployeeFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的测验ID")
		return
	}

	var submission service.AttemptSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.QuizService.SubmitAttempt(claims.EmployeeID, uint(quizID), submission)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}

// ListAttempts godoc
// @Summary 我的答题记录
// @Description 当前员工在某测验上的全部答题记录，按提交时间倒序
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := util.GetEmployeeFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的测验ID")
		return
	}

	attempts, err := c.QuizService.ListAttempts(claims.EmployeeID, uint(quizID))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
