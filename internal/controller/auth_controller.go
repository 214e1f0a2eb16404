package controller

import (
	"errors"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/service"
	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Department string `json:"department"`
}

// Register godoc
// @Summary 注册新员工账号
// @Description 使用提供的信息注册新员工账号，默认角色为 employee
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "员工注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	emp := &model.EmployeeAccount{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Role:       model.Employee,
	}

	if err := c.AuthService.Register(emp); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "该邮箱已被注册")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": emp.ID})
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 员工登录
// @Description 校验邮箱和密码，返回 JWT
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, 401, "邮箱或密码错误")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// GetMe godoc
// @Summary 获取当前员工信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.EmployeeAccount}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/me [get]
func (c *AuthController) GetMe(ctx *gin.Context) {
	emp := c.AuthService.GetCurrentEmployee(ctx)
	if emp == nil {
		util.Unauthorized(ctx)
		return
	}
	emp.Password = ""
	util.Success(ctx, emp)
}

// ListEmployees godoc
// @Summary 员工列表
// @Description 全量员工列表，管理端指派课程时选人用
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.EmployeeAccount}
// @Router /api/admin/employees [get]
func (c *AuthController) ListEmployees(ctx *gin.Context) {
	employees, err := c.AuthService.ListEmployees()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, employees)
}
