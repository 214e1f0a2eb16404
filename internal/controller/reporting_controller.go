package controller

import (
	"strconv"

	"hr_training_backend/internal/service"
	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportingController struct {
	ReportingService *service.ReportingService
}

func NewReportingController(reportingService *service.ReportingService) *ReportingController {
	return &ReportingController{ReportingService: reportingService}
}

// CourseReport godoc
// @Summary 课程维度报表
// @Description 每门课程的指派数、开始数、完成数、答题次数、平均分和通过率
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.CourseReportRow}
// @Router /api/admin/reports/courses [get]
func (c *ReportingController) CourseReport(ctx *gin.Context) {
	rows, err := c.ReportingService.CourseReport()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}

// EmployeeReport godoc
// @Summary 员工维度报表
// @Description 某课程下每个被指派员工的完成度、状态、最近成绩和逾期标记
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]service.EmployeeReportRow}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/reports/courses/{id}/employees [get]
func (c *ReportingController) EmployeeReport(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	rows, err := c.ReportingService.EmployeeReport(uint(courseID))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}
