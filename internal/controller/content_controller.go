package controller

import (
	"strconv"

	"hr_training_backend/internal/service"
	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// CreateModule godoc
// @Summary 创建课程模块
// @Description 在课程下创建模块，不指定 position 时追加到末尾
// @Tags 课程内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body service.ModuleReq true "模块信息"
// @Success 201 {object} util.Response{data=model.CourseModule}
// @Failure 400 {object} util.Response "参数错误或位置冲突"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id}/modules [post]
func (c *ContentController) CreateModule(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	var req service.ModuleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.ContentService.CreateModule(uint(courseID), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, m)
}

// UpdateModule godoc
// @Summary 更新课程模块
// @Tags 课程内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "模块ID"
// @Param   body body service.ModuleReq true "模块信息"
// @Success 200 {object} util.Response{data=model.CourseModule}
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/admin/modules/{id} [put]
func (c *ContentController) UpdateModule(ctx *gin.Context) {
	moduleID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的模块ID")
		return
	}

	var req service.ModuleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.ContentService.UpdateModule(uint(moduleID), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, m)
}

// ReorderRequest 模块重排请求，键为模块ID，值为目标位置
type ReorderRequest struct {
	Positions map[uint]int `json:"positions" binding:"required"`
}

// ReorderModules godoc
// @Summary 重排课程模块
// @Description 批量调整模块顺序，目标位置互相冲突或与未移动模块冲突时整体拒绝
// @Tags 课程内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body ReorderRequest true "模块ID到位置的映射"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "位置冲突或模块不属于该课程"
// @Router /api/admin/courses/{id}/modules/reorder [put]
func (c *ContentController) ReorderModules(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	var req ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContentService.ReorderModules(uint(courseID), req.Positions); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "模块顺序已更新"})
}

// DeleteModule godoc
// @Summary 删除课程模块
// @Description 删除模块及其下全部课时、测验和相关进度记录
// @Tags 课程内容
// @Produce json
// @Security BearerAuth
// @Param   id path int true "模块ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/admin/modules/{id} [delete]
func (c *ContentController) DeleteModule(ctx *gin.Context) {
	moduleID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的模块ID")
		return
	}

	if err := c.ContentService.DeleteModule(uint(moduleID)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "模块已删除"})
}

// CreateLesson godoc
// @Summary 创建课时
// @Description 在模块下创建课时，内容负载须与课时类型匹配
// @Tags 课程内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "模块ID"
// @Param   body body service.LessonReq true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response "参数错误或负载与类型不符"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/admin/modules/{id}/lessons [post]
func (c *ContentController) CreateLesson(ctx *gin.Context) {
	moduleID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的模块ID")
		return
	}

	var req service.LessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.CreateLesson(uint(moduleID), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary 更新课时
// @Tags 课程内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Param   body body service.LessonReq true "课时信息"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/admin/lessons/{id} [put]
func (c *ContentController) UpdateLesson(ctx *gin.Context) {
	lessonID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课时ID")
		return
	}

	var req service.LessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.UpdateLesson(uint(lessonID), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary 删除课时
// @Description 删除课时及其挂载的测验和员工进度记录
// @Tags 课程内容
// @Produce json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/admin/lessons/{id} [delete]
func (c *ContentController) DeleteLesson(ctx *gin.Context) {
	lessonID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课时ID")
		return
	}

	if err := c.ContentService.DeleteLesson(uint(lessonID)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "课时已删除"})
}
