package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
)

type gradebookFixture struct {
	db          *gorm.DB
	service     GradebookService
	assignments repository.AssignmentRepository
	gradebook   repository.GradebookRepository
}

func newGradebookFixture(t *testing.T) *gradebookFixture {
	t.Helper()

	db := newTestDB(t)
	assignments := repository.NewAssignmentRepository(db)
	gradebook := repository.NewGradebookRepository(db)

	return &gradebookFixture{
		db:          db,
		assignments: assignments,
		gradebook:   gradebook,
		service:     NewGradebookService(gradebook, assignments, zerolog.Nop()),
	}
}

func (f *gradebookFixture) seedEntry(t *testing.T, teacherID uuid.UUID, autoScore, percentage float64) models.GradebookEntry {
	t.Helper()

	assignment := models.Assignment{Title: "Quiz", TeacherID: teacherID}
	require.NoError(t, f.assignments.Create(context.Background(), &assignment, nil))

	entry := models.GradebookEntry{
		StudentID:    uuid.New(),
		AssignmentID: assignment.ID,
		AutoScore:    autoScore,
		FinalScore:   autoScore,
		Percentage:   percentage,
		GradeLetter:  gradeLetter(percentage),
	}
	require.NoError(t, f.gradebook.Upsert(context.Background(), &entry))
	return entry
}

func TestGradebookListScopedToTeacher(t *testing.T) {
	f := newGradebookFixture(t)
	teacherID := uuid.New()

	f.seedEntry(t, teacherID, 8, 80)
	f.seedEntry(t, uuid.New(), 5, 50) // someone else's assignment

	entries, err := f.service.List(context.Background(), teacherID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 8.0, entries[0].AutoScore)
}

func TestGradebookOverride(t *testing.T) {
	f := newGradebookFixture(t)
	teacherID := uuid.New()
	entry := f.seedEntry(t, teacherID, 5, 50)

	manual := 9.0
	comments := "bumped after review"
	updated, err := f.service.Override(context.Background(), entry.ID, teacherID, dto.UpdateGradebookRequest{
		ManualScore: &manual,
		Comments:    &comments,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ManualScore)
	require.Equal(t, 9.0, *updated.ManualScore)
	require.Equal(t, 9.0, updated.FinalScore)
	require.Equal(t, 5.0, updated.AutoScore, "auto score stays on record")
	require.Equal(t, 90.0, updated.Percentage)
	require.Equal(t, "A", updated.GradeLetter)
	require.Equal(t, comments, updated.Comments)
}

func TestGradebookOverrideCommentsOnly(t *testing.T) {
	f := newGradebookFixture(t)
	teacherID := uuid.New()
	entry := f.seedEntry(t, teacherID, 5, 50)

	comments := "see me after class"
	updated, err := f.service.Override(context.Background(), entry.ID, teacherID, dto.UpdateGradebookRequest{
		Comments: &comments,
	})
	require.NoError(t, err)
	require.Nil(t, updated.ManualScore)
	require.Equal(t, 5.0, updated.FinalScore)
	require.Equal(t, 50.0, updated.Percentage)
}

func TestGradebookOverrideOwnershipEnforced(t *testing.T) {
	f := newGradebookFixture(t)
	entry := f.seedEntry(t, uuid.New(), 5, 50)

	manual := 10.0
	_, err := f.service.Override(context.Background(), entry.ID, uuid.New(), dto.UpdateGradebookRequest{
		ManualScore: &manual,
	})
	require.ErrorIs(t, err, ErrGradebookEntryNotFound)
}

func TestGradebookOverrideUnknownEntry(t *testing.T) {
	f := newGradebookFixture(t)

	_, err := f.service.Override(context.Background(), uuid.New(), uuid.New(), dto.UpdateGradebookRequest{})
	require.ErrorIs(t, err, ErrGradebookEntryNotFound)
}

func TestManualPercentageWithoutBaseline(t *testing.T) {
	entry := models.GradebookEntry{AutoScore: 0, Percentage: 0}
	require.Equal(t, 0.0, manualPercentage(entry, 5))
}
