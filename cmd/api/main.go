package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/yourusername/learning-api/internal/config"
	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/handler"
	"github.com/yourusername/learning-api/internal/middleware"
	pgRepo "github.com/yourusername/learning-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/learning-api/internal/repository/redis"
	"github.com/yourusername/learning-api/internal/service"
	"github.com/yourusername/learning-api/pkg/auth"
	"github.com/yourusername/learning-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}
	release := os.Getenv("GIN_MODE") == gin.ReleaseMode

	location, err := cfg.Learning.Location()
	if err != nil {
		log.Printf("Invalid learning config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), release)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	courseRepo := pgRepo.NewCourseRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	completionRepo := pgRepo.NewCompletionRepo(db)
	enrollmentRepo := pgRepo.NewEnrollmentRepo(db)
	certificateRepo := pgRepo.NewCertificateRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Email: без ключа Resend письма не отправляются
	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.ResendAPIKey != "" {
		resendService, err := service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize Resend email service: %v", err)
			os.Exit(1)
		}
		emailService = resendService
	} else {
		log.Println("[Email] RESEND_API_KEY не задан, уведомления о сертификатах отключены")
	}

	// Инициализируем сервисы
	analyticsCache := service.NewAnalyticsCache(cacheRepo, cfg.Learning.CacheTTL())
	quizService := service.NewQuizService(courseRepo, quizRepo, attemptRepo, enrollmentRepo, analyticsCache)
	progressService := service.NewProgressService(
		courseRepo, quizRepo, attemptRepo, completionRepo, enrollmentRepo, analyticsCache,
		service.ProgressConfig{Location: location, TrendSize: cfg.Learning.TrendSize},
	)
	certificateService := service.NewCertificateService(
		certificateRepo, courseRepo, quizRepo, attemptRepo, completionRepo, enrollmentRepo, userRepo, emailService,
	)

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем обработчики
	quizHandler := handler.NewQuizHandler(quizService)
	instructorHandler := handler.NewInstructorHandler(quizService)
	progressHandler := handler.NewProgressHandler(progressService)
	certificateHandler := handler.NewCertificateHandler(certificateService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(cacheRepo)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	router.GET("/health", healthHandler(db, redisClient))

	courseParam := middleware.ExtractUintParam("courseId", handler.CourseIDKey)
	quizParam := middleware.ExtractUintParam("quizId", handler.QuizIDKey)

	api := router.Group("/api")
	{
		// Публичная проверка сертификата
		api.GET("/certificates/verify/:code", certificateHandler.VerifyCertificate)

		authed := api.Group("")
		authed.Use(authMiddleware.RequireAuth())

		courses := authed.Group("/courses/:courseId")
		courses.Use(courseParam)
		{
			courses.POST("/enroll", progressHandler.Enroll)
			courses.GET("/progress", progressHandler.GetProgress)
			courses.GET("/certificate/check", certificateHandler.CheckCertificate)

			lessons := courses.Group("/lessons/:lessonId")
			lessons.Use(middleware.ExtractUintParam("lessonId", handler.LessonIDKey))
			{
				lessons.POST("/complete", progressHandler.CompleteLesson)
				lessons.DELETE("/complete", progressHandler.UncompleteLesson)
			}

			quizzes := courses.Group("/quizzes/:quizId")
			quizzes.Use(quizParam)
			{
				quizzes.GET("", quizHandler.GetQuiz)
				quizzes.POST("/submit",
					rateLimiter.Limit(middleware.SubmitRateLimitConfig(cfg.Learning.SubmitRateLimit)),
					quizHandler.SubmitAttempt)
				quizzes.GET("/attempts", quizHandler.ListAttempts)
				quizzes.GET("/attempts/:attemptId",
					middleware.ExtractUintParam("attemptId", handler.AttemptIDKey),
					quizHandler.GetAttempt)
			}
		}

		certificates := authed.Group("/certificates")
		{
			certificates.GET("", certificateHandler.ListCertificates)
			withID := certificates.Group("/:id")
			withID.Use(middleware.ExtractUintParam("id", handler.CertificateIDKey))
			{
				withID.GET("", certificateHandler.GetCertificate)
				withID.GET("/document", certificateHandler.GetCertificateDocument)
			}
		}

		progress := authed.Group("/progress")
		{
			progress.GET("/analytics", progressHandler.GetOverallAnalytics)
			progress.GET("/courses/:courseId/analytics", courseParam, progressHandler.GetCourseAnalytics)
		}

		instructor := authed.Group("/instructor/courses/:courseId/quizzes/:quizId")
		instructor.Use(authMiddleware.RequireRole(entity.RoleInstructor, entity.RoleAdmin), courseParam, quizParam)
		{
			instructor.GET("/statistics", instructorHandler.GetQuizStatistics)
			instructor.GET("/attempts/export", instructorHandler.ExportQuizAttempts)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}
	if sqlDB, err := database.GetSQLDB(db); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	log.Println("Server exited properly")
}

// corsConfig строит настройки CORS; "*" разрешает любые источники без cookies
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// healthHandler проверяет доступность PostgreSQL и Redis
func healthHandler(db *gorm.DB, redisClient redis.UniversalClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"status": "ok", "database": "ok", "redis": "ok"}
		code := http.StatusOK

		sqlDB, err := database.GetSQLDB(db)
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			log.Printf("[Health] Database ping failed: %v", err)
			status["database"] = "unavailable"
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("[Health] Redis ping failed: %v", err)
			status["redis"] = "unavailable"
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, status)
	}
}
