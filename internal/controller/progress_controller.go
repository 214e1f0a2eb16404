package controller

import (
	"strconv"

	"hr_training_backend/internal/service"
	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// RecordProgress godoc
// @Summary 记录课时进度
// @Description 写入当前员工在某课时上的进度，重复写入以最后一次为准
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Param   body body service.ProgressReq true "进度信息"
// @Success 200 {object} util.Response{data=model.LessonProgress}
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id}/progress [post]
func (c *ProgressController) RecordProgress(ctx *gin.Context) {
	claims := util.GetEmployeeFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课时ID")
		return
	}

	var req service.ProgressReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.ProgressService.RecordLessonProgress(claims.EmployeeID, uint(lessonID), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, p)
}

// GetCourseCompletion godoc
// @Summary 课程完成度
// @Description 当前员工在某课程上的完成百分比（按已完成课时数四舍五入）
// @Tags 学习进度
// @Produce json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/courses/{id}/completion [get]
func (c *ProgressController) GetCourseCompletion(ctx *gin.Context) {
	claims := util.GetEmployeeFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	percent, err := c.ProgressService.CompletionPercent(claims.EmployeeID, uint(courseID))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"completionPercent": percent})
}
