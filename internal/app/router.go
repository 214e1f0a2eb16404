package app

import (
	"hr_training_backend/docs"
	"hr_training_backend/internal/config"
	"hr_training_backend/internal/middleware"
	"hr_training_backend/internal/model"
	"hr_training_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 员工授权路由
	a.registerEmployeeRoutes(router, c, repos, cfg)

	// 3. 管理端路由(admin/hr)
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerEmployeeRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.employee))
	{
		authGroup.GET("/me", c.auth.GetMe)

		// 课程浏览
		authGroup.GET("/courses/:id", c.course.GetCourse)
		authGroup.GET("/courses/:id/tree", c.course.GetCourseTree)
		authGroup.GET("/courses/:id/completion", c.progress.GetCourseCompletion)
		authGroup.GET("/my/courses", c.enrollment.MyCourses)

		// 学习进度
		authGroup.POST("/lessons/:id/progress", c.progress.RecordProgress)

		// 测验
		authGroup.GET("/quizzes/:id", c.quiz.GetQuiz)
		authGroup.POST("/quizzes/:id/attempts", c.quiz.SubmitAttempt)
		authGroup.GET("/quizzes/:id/attempts", c.quiz.ListAttempts)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ActivityMiddleware(repos.employee),
		middleware.RoleMiddleware(model.Admin, model.HR),
	)
	{
		// 课程管理
		admin.POST("/courses", c.course.CreateCourse)
		admin.GET("/courses", c.course.ListCourses)
		admin.PUT("/courses/:id", c.course.UpdateCourse)
		admin.PUT("/courses/:id/status", c.course.SetCourseStatus)
		admin.DELETE("/courses/:id", c.course.DeleteCourse)

		// 模块与课时
		admin.POST("/courses/:id/modules", c.content.CreateModule)
		admin.PUT("/courses/:id/modules/reorder", c.content.ReorderModules)
		admin.PUT("/modules/:id", c.content.UpdateModule)
		admin.DELETE("/modules/:id", c.content.DeleteModule)
		admin.POST("/modules/:id/lessons", c.content.CreateLesson)
		admin.PUT("/lessons/:id", c.content.UpdateLesson)
		admin.DELETE("/lessons/:id", c.content.DeleteLesson)

		// 测验与题目
		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		admin.POST("/quizzes/:id/questions", c.quiz.CreateQuestion)
		admin.PUT("/questions/:id", c.quiz.UpdateQuestion)
		admin.DELETE("/questions/:id", c.quiz.DeleteQuestion)

		// 指派
		admin.GET("/employees", c.auth.ListEmployees)
		admin.POST("/courses/:id/assign", c.enrollment.Assign)

		// 报表
		admin.GET("/reports/courses", c.reporting.CourseReport)
		admin.GET("/reports/courses/:id/employees", c.reporting.EmployeeReport)
	}
}
