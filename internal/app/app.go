package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hr_training_backend/internal/config"
	"hr_training_backend/internal/controller"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/service"
	"hr_training_backend/pkg/database"
	"hr_training_backend/pkg/logger"
	"hr_training_backend/pkg/monitoring"
	"hr_training_backend/pkg/security"
	"hr_training_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	employee   *repository.EmployeeRepository
	course     *repository.CourseRepository
	module     *repository.ModuleRepository
	lesson     *repository.LessonRepository
	quiz       *repository.QuizRepository
	enrollment *repository.EnrollmentRepository
	progress   *repository.ProgressRepository
	attempt    *repository.AttemptRepository
}

type services struct {
	auth       *service.AuthService
	course     *service.CourseService
	content    *service.ContentService
	quiz       *service.QuizService
	progress   *service.ProgressService
	enrollment *service.EnrollmentService
	reporting  *service.ReportingService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	content    *controller.ContentController
	quiz       *controller.QuizController
	progress   *controller.ProgressController
	enrollment *controller.EnrollmentController
	reporting  *controller.ReportingController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		employee:   repository.NewEmployeeRepository(db),
		course:     repository.NewCourseRepository(db),
		module:     repository.NewModuleRepository(db),
		lesson:     repository.NewLessonRepository(db),
		quiz:       repository.NewQuizRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		progress:   repository.NewProgressRepository(db),
		attempt:    repository.NewAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.employee, cfg)
	s.course = service.NewCourseService(repos.course, repos.module, repos.lesson, repos.quiz, rdb)
	s.content = service.NewContentService(repos.course, repos.module, repos.lesson, s.course)
	s.quiz = service.NewQuizService(repos.quiz, repos.attempt, repos.module, repos.lesson, s.course)
	s.progress = service.NewProgressService(repos.progress, repos.lesson)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.employee, s.progress)
	s.reporting = service.NewReportingService(
		repos.course,
		repos.module,
		repos.lesson,
		repos.quiz,
		repos.enrollment,
		repos.progress,
		repos.attempt,
		repos.employee,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.course),
		content:    controller.NewContentController(s.content),
		quiz:       controller.NewQuizController(s.quiz),
		progress:   controller.NewProgressController(s.progress),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		reporting:  controller.NewReportingController(s.reporting),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// debug 模式每次启动都迁移，release 模式须显式带 -migrate
	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
		if cfg.MigrateOnly {
			logger.Log.Info("Migrate-only mode, exiting")
			os.Exit(0)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("hr-training", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
