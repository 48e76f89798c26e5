package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/auth"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/handler"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/middleware"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/router"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/service"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

const testSecret = "handler-test-secret"

// stubGenerator replaces the AI provider with canned output.
type stubGenerator struct {
	quiz       []ai.GeneratedQuestion
	quizErr    error
	plan       ai.GeneratedLessonPlan
	planErr    error
	assessment []ai.GeneratedQuestion
	assessErr  error
	answer     string
	answerErr  error
}

func (s *stubGenerator) GenerateQuiz(context.Context, ai.QuizParams) ([]ai.GeneratedQuestion, error) {
	return s.quiz, s.quizErr
}

func (s *stubGenerator) GenerateLessonPlan(context.Context, ai.LessonPlanParams) (ai.GeneratedLessonPlan, error) {
	return s.plan, s.planErr
}

func (s *stubGenerator) GenerateAssessment(context.Context, ai.AssessmentParams) ([]ai.GeneratedQuestion, error) {
	return s.assessment, s.assessErr
}

func (s *stubGenerator) AnswerDoubt(context.Context, ai.DoubtParams) (string, error) {
	return s.answer, s.answerErr
}

// memoryStatusRepository stands in for the document store.
type memoryStatusRepository struct {
	checks []repository.StatusCheck
}

func (m *memoryStatusRepository) Insert(_ context.Context, check repository.StatusCheck) error {
	m.checks = append(m.checks, check)
	return nil
}

func (m *memoryStatusRepository) List(_ context.Context, limit int64) ([]repository.StatusCheck, error) {
	if int64(len(m.checks)) > limit {
		return m.checks[:limit], nil
	}
	return m.checks, nil
}

type fixture struct {
	app       *fiber.App
	db        *gorm.DB
	generator *stubGenerator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
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
	))

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	generator := &stubGenerator{}
	logger := zerolog.Nop()

	assignmentRepo := repository.NewAssignmentRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	gradebookRepo := repository.NewGradebookRepository(db)
	planRepo := repository.NewLessonPlanRepository(db)
	gate := auth.NewGate(repository.NewProfileRepository(db))

	seed := service.NewSeedService(
		repository.NewSchoolRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewProfileRepository(db),
		logger,
	)
	status := service.NewStatusService(&memoryStatusRepository{}, validate, logger)
	quizzes := service.NewQuizService(assignmentRepo, attemptRepo, gradebookRepo, generator, validate, logger)
	groups := service.NewStudyGroupService(
		repository.NewStudyGroupRepository(db),
		repository.NewChatRepository(db),
		nil, validate, logger,
	)
	doubts := service.NewDoubtService(repository.NewDoubtRepository(db), generator, validate, logger)
	progress := service.NewProgressService(assignmentRepo, attemptRepo, nil, time.Minute, logger)
	assignments := service.NewAssignmentService(assignmentRepo, validate, logger)
	plans := service.NewLessonPlanService(planRepo, generator, validate, logger)
	gradebook := service.NewGradebookService(gradebookRepo, assignmentRepo, logger)
	analytics := service.NewAnalyticsService(assignmentRepo, attemptRepo, planRepo, nil, time.Minute, logger)
	assessments := service.NewAssessmentService(repository.NewAssessmentRepository(db), generator, validate, logger)
	messages := service.NewMessageService(repository.NewMessageRepository(db), validate, logger)

	handlers := router.Handlers{
		Public:     handler.NewPublicHandler(seed, status, gate, logger),
		Quiz:       handler.NewQuizHandler(quizzes, gate, logger),
		StudyGroup: handler.NewStudyGroupHandler(groups, gate, logger),
		Doubt:      handler.NewDoubtHandler(doubts, gate, logger),
		Progress:   handler.NewProgressHandler(progress, gate, logger),
		Teacher: handler.NewTeacherHandler(
			assignments, plans, gradebook, analytics, assessments, messages, gate, logger,
		),
	}

	app := fiber.New()
	middleware.Register(app, middleware.Config{JWTSecret: testSecret})
	router.New(handlers, logger).Register(app)

	return &fixture{app: app, db: db, generator: generator}
}

func (f *fixture) profile(t *testing.T, role string) (uuid.UUID, string) {
	t.Helper()

	user := models.UserProfile{
		Email: fmt.Sprintf("%s@example.com", uuid.NewString()),
		Role:  role,
	}
	require.NoError(t, f.db.Create(&user).Error)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	return user.ID, signed
}

func (f *fixture) request(t *testing.T, method, target, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestHelloRoutes(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{"/api/", "/api/root"} {
		resp := f.request(t, http.MethodGet, target, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		require.Equal(t, "Hello World", body["message"])
	}
}

func TestUnknownRouteReportsPath(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, "/api/does-not-exist", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "Route /does-not-exist not found", body["error"])
}

func TestSubjectsRequireAuthentication(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, "/api/subjects", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "Authentication required", body["error"])

	_, token := f.profile(t, models.RoleStudent)
	resp = f.request(t, http.MethodGet, "/api/subjects", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Subjects []models.Subject `json:"subjects"`
		Count    int              `json:"count"`
	}
	decodeBody(t, resp, &listed)
	require.NotNil(t, listed.Subjects)
	require.Zero(t, listed.Count)
}

func TestTeacherSurfaceRequiresTeacherRole(t *testing.T) {
	f := newFixture(t)
	_, studentToken := f.profile(t, models.RoleStudent)

	resp := f.request(t, http.MethodGet, "/api/teacher/dashboard", studentToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "Access denied", body["error"])

	resp = f.request(t, http.MethodGet, "/api/teacher/dashboard", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInvalidTokenTreatedAsAnonymous(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, "/api/subjects", "not.a.jwt", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStatusEndpoints(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodPost, "/api/status", "", map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody map[string]string
	decodeBody(t, resp, &errBody)
	require.Equal(t, "client_name is required", errBody["error"])

	resp = f.request(t, http.MethodPost, "/api/status", "", map[string]string{"client_name": "probe"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created repository.StatusCheck
	decodeBody(t, resp, &created)
	require.Equal(t, "probe", created.ClientName)
	require.NotEmpty(t, created.ID)

	resp = f.request(t, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Legacy contract: a bare array, not a list envelope.
	var checks []repository.StatusCheck
	decodeBody(t, resp, &checks)
	require.Len(t, checks, 1)
}

func TestAssignmentLifecycle(t *testing.T) {
	f := newFixture(t)
	_, teacherToken := f.profile(t, models.RoleTeacher)
	_, studentToken := f.profile(t, models.RoleStudent)

	resp := f.request(t, http.MethodPost, "/api/teacher/assignments", teacherToken, dto.CreateTeacherAssignmentRequest{
		Title:        "State capitals",
		PassingScore: 50,
		MaxAttempts:  2,
		Questions: []dto.QuestionInput{
			{QuestionText: "Capital of Telangana?", Options: []string{"Hyderabad", "Warangal"}, CorrectAnswer: "Hyderabad"},
			{QuestionText: "Capital of Kerala?", Options: []string{"Kochi", "Thiruvananthapuram"}, CorrectAnswer: "Thiruvananthapuram"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created dto.AssignmentResponse
	decodeBody(t, resp, &created)
	require.False(t, created.IsPublished)

	// Invisible to students until published.
	resp = f.request(t, http.MethodGet, "/api/assignments", studentToken, nil)
	var visible struct {
		Assignments []dto.AssignmentResponse `json:"assignments"`
		Count       int                      `json:"count"`
	}
	decodeBody(t, resp, &visible)
	require.Zero(t, visible.Count)

	resp = f.request(t, http.MethodPut, fmt.Sprintf("/api/teacher/assignments/%s/publish", created.ID), teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.request(t, http.MethodGet, "/api/assignments", studentToken, nil)
	decodeBody(t, resp, &visible)
	require.Equal(t, 1, visible.Count)

	resp = f.request(t, http.MethodGet, fmt.Sprintf("/api/assignments/%s/questions", created.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw := readBody(t, resp)
	require.NotContains(t, raw, "correct_answer")
	require.NotContains(t, raw, "explanation")

	var questionList struct {
		Questions []dto.QuestionResponse `json:"questions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &questionList))
	require.Len(t, questionList.Questions, 2)

	resp = f.request(t, http.MethodPost, fmt.Sprintf("/api/assignments/%s/start", created.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var attempt dto.AttemptResponse
	decodeBody(t, resp, &attempt)
	require.Equal(t, 1, attempt.AttemptNumber)

	answers := map[string]string{
		questionList.Questions[0].ID.String(): "Hyderabad",
		questionList.Questions[1].ID.String(): "Kochi",
	}
	resp = f.request(t, http.MethodPost, fmt.Sprintf("/api/assignments/%s/submit", created.ID), studentToken, dto.SubmitAttemptRequest{
		Answers:       answers,
		AttemptNumber: 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result dto.SubmitResultResponse
	decodeBody(t, resp, &result)
	require.Equal(t, 50.0, result.PercentageScore)
	require.True(t, result.Passed)
	require.Len(t, result.Results, 2)
}

func TestStudyGroupFlow(t *testing.T) {
	f := newFixture(t)
	_, creatorToken := f.profile(t, models.RoleStudent)
	_, joinerToken := f.profile(t, models.RoleStudent)

	resp := f.request(t, http.MethodPost, "/api/study-groups", creatorToken, dto.CreateGroupRequest{Name: "Evening revision"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var group dto.StudyGroupResponse
	decodeBody(t, resp, &group)
	require.Len(t, group.InviteCode, 6)

	resp = f.request(t, http.MethodPost, "/api/study-groups/join", joinerToken, dto.JoinGroupRequest{InviteCode: "ZZZZZZ"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errBody map[string]string
	decodeBody(t, resp, &errBody)
	require.Equal(t, "Invalid invite code", errBody["error"])

	resp = f.request(t, http.MethodPost, "/api/study-groups/join", joinerToken, dto.JoinGroupRequest{InviteCode: group.InviteCode})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.request(t, http.MethodPost, fmt.Sprintf("/api/study-groups/%s/chat", group.ID), joinerToken, dto.SendChatRequest{
		MessageText: "hello <script>alert(1)</script> all",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var message dto.ChatMessageResponse
	decodeBody(t, resp, &message)
	require.NotContains(t, message.MessageText, "<script>")

	resp = f.request(t, http.MethodGet, fmt.Sprintf("/api/study-groups/%s/chat", group.ID), creatorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history struct {
		Messages []dto.ChatMessageResponse `json:"messages"`
		Count    int                       `json:"count"`
	}
	decodeBody(t, resp, &history)
	require.Equal(t, 1, history.Count)
}

func TestDoubtWithAIAnswer(t *testing.T) {
	f := newFixture(t)
	f.generator.answer = "Multiply both sides by the denominator."
	_, studentToken := f.profile(t, models.RoleStudent)

	resp := f.request(t, http.MethodPost, "/api/doubts", studentToken, dto.CreateDoubtRequest{
		Title:        "Solving for x",
		QuestionText: "How do I clear the fraction in x/3 = 4?",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created dto.CreatedDoubtResponse
	decodeBody(t, resp, &created)
	require.NotNil(t, created.AIResponse)
	require.Equal(t, "answered", created.Doubt.Status)
	require.Empty(t, created.AIError)
}

func TestDoubtSurvivesAIFailure(t *testing.T) {
	f := newFixture(t)
	f.generator.answerErr = ai.ErrGeneration
	_, studentToken := f.profile(t, models.RoleStudent)

	resp := f.request(t, http.MethodPost, "/api/doubts", studentToken, dto.CreateDoubtRequest{
		Title:        "Stuck",
		QuestionText: "What is a prime number?",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created dto.CreatedDoubtResponse
	decodeBody(t, resp, &created)
	require.Nil(t, created.AIResponse)
	require.Equal(t, "AI response could not be generated", created.AIError)
	require.Equal(t, "open", created.Doubt.Status)
}

func TestStoreFailureSurfacesDetails(t *testing.T) {
	f := newFixture(t)
	_, studentToken := f.profile(t, models.RoleStudent)

	require.NoError(t, f.db.Migrator().DropTable(&models.Doubt{}))

	resp := f.request(t, http.MethodGet, "/api/doubts", studentToken, nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "Failed to list doubts", body["error"])
	require.NotEmpty(t, body["details"])
}

func TestMalformedBodyRejected(t *testing.T) {
	f := newFixture(t)
	_, studentToken := f.profile(t, models.RoleStudent)

	req := httptest.NewRequest(http.MethodPost, "/api/doubts", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+studentToken)

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "Invalid request body", body["error"])
}
