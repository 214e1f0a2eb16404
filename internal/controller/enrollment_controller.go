package controller

import (
	"strconv"

	"hr_training_backend/internal/service"
	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Assign godoc
// @Summary 批量指派课程
// @Description 把课程指派给一批员工，已指派的员工静默跳过，返回插入与跳过数量
// @Tags 指派
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body service.AssignReq true "员工ID列表和可选截止日期"
// @Success 200 {object} util.Response{data=service.AssignResult}
// @Failure 404 {object} util.Response "课程或员工不存在"
// @Router /api/admin/courses/{id}/assign [post]
func (c *EnrollmentController) Assign(ctx *gin.Context) {
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

	var req service.AssignReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.EnrollmentService.Assign(uint(courseID), req, claims.EmployeeID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// MyCourses godoc
// @Summary 我的课程
// @Description 全部已发布课程，合并当前员工的指派信息、完成度和推导状态
// @Tags 指派
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.EmployeeCourseRow}
// @Router /api/my/courses [get]
func (c *EnrollmentController) MyCourses(ctx *gin.Context) {
	claims := util.GetEmployeeFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.EnrollmentService.ListForEmployee(claims.EmployeeID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}
