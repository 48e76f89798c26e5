package main

import (
	"context"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/auth"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/config"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/database"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/handler"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/middleware"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/router"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/service"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	db, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	if err := db.AutoMigrate(
		&models.School{},
		&models.UserProfile{},
		&models.Subject{},
		&models.Assignment{},
		&models.AssignmentQuestion{},
		&models.AssignmentAttempt{},
		&models.StudentResponse{},
		&models.StudyGroup{},
		&models.GroupMember{},
		&models.ChatMessage{},
		&models.Doubt{},
		&models.DoubtResponse{},
		&models.LessonPlan{},
		&models.GradebookEntry{},
		&models.TeacherMessage{},
		&models.PdfAssessment{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	mongoClient, err := database.ConnectMongo(ctx, cfg.MongoURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer cache.Close()
	} else {
		logger.Warn().Msg("redis url not configured, caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to nats")
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not configured, chat events disabled")
	}

	generator, err := ai.NewOpenRouterGenerator(ai.OpenRouterConfig{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterBaseURL,
		Model:   cfg.AIModel,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build ai generator")
	}

	validate := newValidator()

	profileRepo := repository.NewProfileRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	gradebookRepo := repository.NewGradebookRepository(db)
	studyGroupRepo := repository.NewStudyGroupRepository(db)
	chatRepo := repository.NewChatRepository(db)
	doubtRepo := repository.NewDoubtRepository(db)
	lessonPlanRepo := repository.NewLessonPlanRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	statusRepo := repository.NewStatusRepository(mongoClient, cfg.MongoDBName)

	gate := auth.NewGate(profileRepo)

	quizService := service.NewQuizService(assignmentRepo, attemptRepo, gradebookRepo, generator, validate, logger)
	studyGroupService := service.NewStudyGroupService(studyGroupRepo, chatRepo, natsConn, validate, logger)
	doubtService := service.NewDoubtService(doubtRepo, generator, validate, logger)
	lessonPlanService := service.NewLessonPlanService(lessonPlanRepo, generator, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, logger)
	gradebookService := service.NewGradebookService(gradebookRepo, assignmentRepo, logger)
	analyticsService := service.NewAnalyticsService(assignmentRepo, attemptRepo, lessonPlanRepo, cache, cfg.DashboardCacheTTL, logger)
	progressService := service.NewProgressService(assignmentRepo, attemptRepo, cache, cfg.DashboardCacheTTL, logger)
	messageService := service.NewMessageService(messageRepo, validate, logger)
	assessmentService := service.NewAssessmentService(assessmentRepo, generator, validate, logger)
	statusService := service.NewStatusService(statusRepo, validate, logger)
	seedService := service.NewSeedService(schoolRepo, subjectRepo, profileRepo, logger)

	app := fiber.New(fiber.Config{AppName: cfg.AppName})
	middleware.Register(app, middleware.Config{Logger: &logger, JWTSecret: cfg.JWTSecret})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	table := router.New(router.Handlers{
		Public:     handler.NewPublicHandler(seedService, statusService, gate, logger),
		Quiz:       handler.NewQuizHandler(quizService, gate, logger),
		StudyGroup: handler.NewStudyGroupHandler(studyGroupService, gate, logger),
		Doubt:      handler.NewDoubtHandler(doubtService, gate, logger),
		Progress:   handler.NewProgressHandler(progressService, gate, logger),
		Teacher: handler.NewTeacherHandler(
			assignmentService,
			lessonPlanService,
			gradebookService,
			analyticsService,
			assessmentService,
			messageService,
			gate,
			logger,
		),
	}, logger)
	table.Register(app)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()
	logger.Info().Str("address", cfg.HTTPAddress()).Msg("api listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newValidator reports violations by JSON field name so error messages match
// the wire payloads.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}
