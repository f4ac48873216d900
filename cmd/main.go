package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/ctrls-academy/exam-platform/config"
	"github.com/ctrls-academy/exam-platform/database"
	_ "github.com/ctrls-academy/exam-platform/docs" // Swagger docs
	"github.com/ctrls-academy/exam-platform/internal/auth"
	"github.com/ctrls-academy/exam-platform/internal/controller"
	adminctrl "github.com/ctrls-academy/exam-platform/internal/controller/admin"
	studentctrl "github.com/ctrls-academy/exam-platform/internal/controller/student"
	"github.com/ctrls-academy/exam-platform/internal/logger"
	"github.com/ctrls-academy/exam-platform/internal/model"
	"github.com/ctrls-academy/exam-platform/internal/repository"
	"github.com/ctrls-academy/exam-platform/internal/service"
	"github.com/ctrls-academy/exam-platform/internal/storage"
)

// @title Exam Platform API
// @version 1.0
// @description Online exam lifecycle API: authoring, timed attempts with autosave, automatic and manual grading, review and reporting.
// @contact.name API Support
// @contact.email support@ctrls.academy
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewSubmissionRepository,
			repository.NewAnswerRepository,
			repository.NewProfileRepository,
		),

		fx.Provide(
			service.NewScoringService,
			service.NewExamService,
			service.NewGradingService,
			service.NewAttemptService,
			service.NewReviewService,
			service.NewStudentExamService,
		),

		fx.Provide(
			auth.NewMiddleware,
			func(cfg *config.Config) (*storage.FSStore, error) { return storage.NewFSStore(cfg) },
			func(s *storage.FSStore) storage.BlobStore { return s },
		),

		fx.Provide(
			adminctrl.NewAdminExamController,
			adminctrl.NewAdminGradingController,
			studentctrl.NewStudentExamController,
			studentctrl.NewAttemptController,
			studentctrl.NewReviewController,
			controller.NewUploadController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer mounts the API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	mw *auth.Middleware,
	blobs *storage.FSStore,
	adminExamCtrl *adminctrl.AdminExamController,
	adminGradingCtrl *adminctrl.AdminGradingController,
	studentExamCtrl *studentctrl.StudentExamController,
	attemptCtrl *studentctrl.AttemptController,
	reviewCtrl *studentctrl.ReviewController,
	uploadCtrl *controller.UploadController,
) {
	// Uploaded files are served from disk under the public base path.
	router.Static(cfg.Storage.PublicBaseURL, blobs.BaseDir())

	api := router.Group("/api/v1", mw.RequireAuth())
	{
		api.POST("/uploads", uploadCtrl.Upload)
	}

	adminGroup := api.Group("/admin", mw.RequireAdmin())
	{
		examsGroup := adminGroup.Group("/exams")
		examsGroup.GET("", adminExamCtrl.ListExams)
		examsGroup.POST("", adminExamCtrl.CreateExam)
		examsGroup.GET("/stats", adminExamCtrl.GetStats)
		examsGroup.GET("/:exam_id", adminExamCtrl.GetExam)
		examsGroup.PUT("/:exam_id", adminExamCtrl.UpdateExam)
		examsGroup.PUT("/:exam_id/questions", adminExamCtrl.SetQuestions)
		examsGroup.GET("/:exam_id/submissions", adminGradingCtrl.ListSubmissions)

		adminGroup.PUT("/grade", adminGradingCtrl.GradeSubmission)
	}

	studentGroup := api.Group("/student")
	{
		studentGroup.GET("/exams", studentExamCtrl.ListExams)
		studentGroup.POST("/exams/:exam_id/attempts", attemptCtrl.StartAttempt)
		studentGroup.PUT("/attempts/:attempt_id/answers", attemptCtrl.SaveAnswers)
		studentGroup.POST("/attempts/:attempt_id/submit", attemptCtrl.Submit)
		studentGroup.GET("/grades", studentExamCtrl.ListGrades)
		studentGroup.GET("/review/:submission_id", reviewCtrl.GetReview)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam platform API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Profile{},
		&model.Exam{},
		&model.ExamVisibility{},
		&model.Question{},
		&model.Submission{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
