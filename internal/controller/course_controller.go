package controller

import (
	"strconv"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/service"
	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 创建一门新课程，初始状态为 draft
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseReq true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetEmployeeFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims.EmployeeID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Description 更新课程基本信息，未提供的字段保持不变
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body service.CourseReq true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(uint(courseID), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// SetStatusRequest 课程状态变更请求
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published"`
}

// SetCourseStatus godoc
// @Summary 发布或下架课程
// @Description 切换课程的 draft/published 状态
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body SetStatusRequest true "目标状态"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id}/status [put]
func (c *CourseController) SetCourseStatus(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	var req SetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.SetCourseStatus(uint(courseID), model.CourseStatus(req.Status))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// GetCourse godoc
// @Summary 获取课程详情
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	course, err := c.CourseService.GetCourse(uint(courseID))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// ListCourses godoc
// @Summary 课程列表
// @Description 分页返回全部课程（含草稿），仅管理端使用
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param   page query int false "页码，默认1"
// @Param   limit query int false "每页数量，默认10"
// @Success 200 {object} util.PageResponse
// @Router /api/admin/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	courses, total, err := c.CourseService.ListCourses(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 删除课程及其全部模块、课时、测验、进度和指派记录
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	if err := c.CourseService.DeleteCourse(uint(courseID)); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "课程已删除"})
}

// GetCourseTree godoc
// @Summary 获取课程内容树
// @Description 返回课程的完整结构：模块、课时、挂在模块或课时上的测验及题目
// @Tags 课程内容
// @Produce json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseTree}
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 503 {object} util.Response "内容暂时不可用"
// @Router /api/courses/{id}/tree [get]
func (c *CourseController) GetCourseTree(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	tree, err := c.CourseService.GetCourseTree(ctx.Request.Context(), uint(courseID))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, tree)
}
