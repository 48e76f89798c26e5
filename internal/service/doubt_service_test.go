package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

func newDoubtFixture(t *testing.T) (DoubtService, *fakeGenerator) {
	t.Helper()

	db := newTestDB(t)
	generator := &fakeGenerator{}
	service := NewDoubtService(repository.NewDoubtRepository(db), generator, newTestValidator(), zerolog.Nop())
	return service, generator
}

func TestCreateDoubtWithAIAnswer(t *testing.T) {
	service, generator := newDoubtFixture(t)
	generator.answer = "Water moves across the membrane by osmosis."
	studentID := uuid.New()

	created, err := service.Create(context.Background(), studentID, dto.CreateDoubtRequest{
		Title:        "Osmosis",
		QuestionText: "Why does water move into the cell?",
		Subject:      "Biology",
	})
	require.NoError(t, err)
	require.NotNil(t, created.AIResponse)
	require.Equal(t, generator.answer, *created.AIResponse)
	require.Empty(t, created.AIError)
	require.Equal(t, models.DoubtStatusAnswered, created.Doubt.Status)
	require.Len(t, created.Doubt.Responses, 1)
	require.Equal(t, models.DoubtResponseTypeAI, created.Doubt.Responses[0].ResponseType)
	require.Nil(t, created.Doubt.Responses[0].ResponderID)
}

func TestCreateDoubtDegradesOnAIFailure(t *testing.T) {
	service, generator := newDoubtFixture(t)
	generator.answerErr = ai.ErrGeneration
	studentID := uuid.New()

	created, err := service.Create(context.Background(), studentID, dto.CreateDoubtRequest{
		Title:        "Gravity",
		QuestionText: "Why do things fall?",
	})
	require.NoError(t, err, "AI failure must not fail the request")
	require.Nil(t, created.AIResponse)
	require.NotEmpty(t, created.AIError)
	require.Equal(t, models.DoubtStatusOpen, created.Doubt.Status)
	require.Empty(t, created.Doubt.Responses)

	// The doubt itself was persisted.
	doubts, err := service.List(context.Background(), studentID)
	require.NoError(t, err)
	require.Len(t, doubts, 1)
	require.Equal(t, "Gravity", doubts[0].Title)
}

func TestCreateDoubtValidatesPayload(t *testing.T) {
	service, _ := newDoubtFixture(t)

	_, err := service.Create(context.Background(), uuid.New(), dto.CreateDoubtRequest{Title: "no question"})
	require.Error(t, err)
}

func TestCreateDoubtDefaultsPriority(t *testing.T) {
	service, generator := newDoubtFixture(t)
	generator.answer = "answer"

	created, err := service.Create(context.Background(), uuid.New(), dto.CreateDoubtRequest{
		Title:        "Priorities",
		QuestionText: "What happens without one?",
	})
	require.NoError(t, err)
	require.Equal(t, "normal", created.Doubt.PriorityLevel)
}

func TestListDoubtsScopedToStudent(t *testing.T) {
	service, generator := newDoubtFixture(t)
	generator.answer = "answer"

	mine := uuid.New()
	other := uuid.New()

	_, err := service.Create(context.Background(), mine, dto.CreateDoubtRequest{Title: "A", QuestionText: "?"})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), other, dto.CreateDoubtRequest{Title: "B", QuestionText: "?"})
	require.NoError(t, err)

	doubts, err := service.List(context.Background(), mine)
	require.NoError(t, err)
	require.Len(t, doubts, 1)
	require.Equal(t, "A", doubts[0].Title)
}
