package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

func newLessonPlanFixture(t *testing.T) (LessonPlanService, *fakeGenerator) {
	t.Helper()

	db := newTestDB(t)
	generator := &fakeGenerator{}
	service := NewLessonPlanService(repository.NewLessonPlanRepository(db), generator, newTestValidator(), zerolog.Nop())
	return service, generator
}

func decodeList(t *testing.T, raw []byte) []string {
	t.Helper()

	var values []string
	require.NoError(t, json.Unmarshal(raw, &values))
	return values
}

func TestCreateLessonPlanManual(t *testing.T) {
	service, _ := newLessonPlanFixture(t)
	teacherID := uuid.New()

	plan, err := service.Create(context.Background(), teacherID, dto.CreateLessonPlanRequest{
		Title:       "Fractions intro",
		GradeLevel:  6,
		KeyConcepts: []string{"numerator", "denominator"},
	})
	require.NoError(t, err)
	require.Equal(t, "Fractions intro", plan.Title)
	require.Equal(t, models.LessonPlanStatusDraft, plan.Status)
	require.Equal(t, []string{"numerator", "denominator"}, decodeList(t, plan.KeyConcepts))
	// Omitted lists are stored as empty arrays, never null.
	require.Equal(t, []string{}, decodeList(t, plan.Activities))
}

func TestCreateLessonPlanWithAIDraft(t *testing.T) {
	service, generator := newLessonPlanFixture(t)
	generator.plan = ai.GeneratedLessonPlan{
		Title:       "Fractions, visually",
		KeyConcepts: []string{"parts of a whole"},
		Activities:  []string{"pizza slicing"},
		Resources:   []string{"fraction tiles"},
	}

	plan, err := service.Create(context.Background(), uuid.New(), dto.CreateLessonPlanRequest{
		Title: "Fractions",
		UseAI: true,
		Topic: "Fractions",
	})
	require.NoError(t, err)
	require.Equal(t, "Fractions, visually", plan.Title)
	require.Equal(t, []string{"pizza slicing"}, decodeList(t, plan.Activities))
}

func TestCreateLessonPlanAIFailureFailsRequest(t *testing.T) {
	service, generator := newLessonPlanFixture(t)
	generator.planErr = ai.ErrGeneration

	_, err := service.Create(context.Background(), uuid.New(), dto.CreateLessonPlanRequest{
		Title: "Fractions",
		UseAI: true,
	})
	require.ErrorIs(t, err, ai.ErrGeneration)
}

func TestUpdateLessonPlanPartial(t *testing.T) {
	service, _ := newLessonPlanFixture(t)
	teacherID := uuid.New()

	plan, err := service.Create(context.Background(), teacherID, dto.CreateLessonPlanRequest{Title: "Before"})
	require.NoError(t, err)

	title := "After"
	status := models.LessonPlanStatusActive
	resources := []string{"workbook"}
	updated, err := service.Update(context.Background(), plan.ID, teacherID, dto.UpdateLessonPlanRequest{
		Title:     &title,
		Status:    &status,
		Resources: &resources,
	})
	require.NoError(t, err)
	require.Equal(t, "After", updated.Title)
	require.Equal(t, models.LessonPlanStatusActive, updated.Status)
	require.Equal(t, []string{"workbook"}, decodeList(t, updated.Resources))
	require.Equal(t, plan.GradeLevel, updated.GradeLevel, "untouched fields survive")
}

func TestUpdateLessonPlanOwnershipEnforced(t *testing.T) {
	service, _ := newLessonPlanFixture(t)

	plan, err := service.Create(context.Background(), uuid.New(), dto.CreateLessonPlanRequest{Title: "Mine"})
	require.NoError(t, err)

	title := "Stolen"
	_, err = service.Update(context.Background(), plan.ID, uuid.New(), dto.UpdateLessonPlanRequest{Title: &title})
	require.ErrorIs(t, err, ErrLessonPlanNotFound)
}

func TestDeleteLessonPlan(t *testing.T) {
	service, _ := newLessonPlanFixture(t)
	teacherID := uuid.New()

	plan, err := service.Create(context.Background(), teacherID, dto.CreateLessonPlanRequest{Title: "Temp"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), plan.ID, teacherID))

	plans, err := service.List(context.Background(), teacherID)
	require.NoError(t, err)
	require.Empty(t, plans)

	require.ErrorIs(t, service.Delete(context.Background(), plan.ID, teacherID), ErrLessonPlanNotFound)
}
