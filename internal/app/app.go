package app

import (
	"context"
	"fmt"
	"time"

	"codecheck_backend/database"
	"codecheck_backend/internal/config"
	"codecheck_backend/internal/email"
	"codecheck_backend/internal/handlers"
	"codecheck_backend/internal/jobs"
	"codecheck_backend/internal/lint"
	"codecheck_backend/internal/logger"
	"codecheck_backend/internal/middleware"
	"codecheck_backend/internal/repositories"
	"codecheck_backend/internal/routes"
	"codecheck_backend/internal/services"
	"codecheck_backend/internal/storage"
	"codecheck_backend/internal/validator"
	"codecheck_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires storage, the job queue, services, workers and handlers
// onto a gin engine. The context bounds the background machinery.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	queue := jobs.NewQueue(cfg.Jobs.QueueSize, cfg.Jobs.Workers)
	queue.Start(ctx)

	serviceContainer := initializeServices(cfg, storageInstance, queue)

	scanWorker := workers.NewScanWorker(gormDB, serviceContainer.CheckService, queue, cfg.Checker.Schedule)
	if err := scanWorker.Start(ctx); err != nil {
		logger.Fatal("Failed to start scan worker", "error", err)
	}

	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage, submitter jobs.Submitter) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	fileRepo := repositories.NewFileRepository()
	checkRepo := repositories.NewCheckRepository()

	emailProvider := email.NewGomailProvider(cfg)
	runner := lint.NewFlake8Runner(cfg.Checker.Binary, time.Duration(cfg.Checker.TimeoutSeconds)*time.Second)

	authService := services.NewAuthService(userRepo)
	fileService := services.NewFileService(fileRepo, storageInstance, cfg)
	notificationService := services.NewNotificationService(checkRepo, emailProvider)
	checkService := services.NewCheckService(fileRepo, checkRepo, storageInstance, runner, notificationService, submitter)
	reportService := services.NewReportService(checkRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		FileService:         fileService,
		CheckService:        checkService,
		NotificationService: notificationService,
		ReportService:       reportService,
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
