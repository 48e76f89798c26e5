package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

func newTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func newTestValidator() *validator.Validate {
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

// fakeGenerator stubs the AI provider with canned responses per use case.
type fakeGenerator struct {
	quiz       []ai.GeneratedQuestion
	quizErr    error
	plan       ai.GeneratedLessonPlan
	planErr    error
	assessment []ai.GeneratedQuestion
	assessErr  error
	answer     string
	answerErr  error
}

func (f *fakeGenerator) GenerateQuiz(context.Context, ai.QuizParams) ([]ai.GeneratedQuestion, error) {
	return f.quiz, f.quizErr
}

func (f *fakeGenerator) GenerateLessonPlan(context.Context, ai.LessonPlanParams) (ai.GeneratedLessonPlan, error) {
	return f.plan, f.planErr
}

func (f *fakeGenerator) GenerateAssessment(context.Context, ai.AssessmentParams) ([]ai.GeneratedQuestion, error) {
	return f.assessment, f.assessErr
}

func (f *fakeGenerator) AnswerDoubt(context.Context, ai.DoubtParams) (string, error) {
	return f.answer, f.answerErr
}
