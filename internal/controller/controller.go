package controller

import (
	"errors"
	"net/http"

	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondServiceError 把服务层错误翻译成 HTTP 响应：
// 校验错误 → 400，资源不存在 → 404，内容读取失败 → 503，其余 → 500 并记日志。
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case util.IsValidationError(err):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrEmployeeNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrContentUnavailable):
		util.Error(ctx, http.StatusServiceUnavailable, "内容暂时不可用，请稍后重试")
	default:
		util.LogInternalError(ctx, err)
	}
}
