package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
)

// ErrGradebookEntryNotFound indicates the entry does not exist or is not
// attached to one of the teacher's assignments.
var ErrGradebookEntryNotFound = errors.New("gradebook entry not found")

// GradebookService exposes the teacher-side gradebook use cases.
type GradebookService interface {
	List(ctx context.Context, teacherID uuid.UUID) ([]dto.GradebookEntryResponse, error)
	Override(ctx context.Context, entryID, teacherID uuid.UUID, payload dto.UpdateGradebookRequest) (dto.GradebookEntryResponse, error)
}

type gradebookService struct {
	gradebook   repository.GradebookRepository
	assignments repository.AssignmentRepository
	logger      zerolog.Logger
}

// NewGradebookService builds a new gradebook service.
func NewGradebookService(
	gradebook repository.GradebookRepository,
	assignments repository.AssignmentRepository,
	logger zerolog.Logger,
) GradebookService {
	return &gradebookService{
		gradebook:   gradebook,
		assignments: assignments,
		logger:      logger.With().Str("component", "gradebook_service").Logger(),
	}
}

// List returns every gradebook entry attached to the teacher's assignments.
func (s *gradebookService) List(ctx context.Context, teacherID uuid.UUID) ([]dto.GradebookEntryResponse, error) {
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(assignments))
	for _, assignment := range assignments {
		ids = append(ids, assignment.ID)
	}

	entries, err := s.gradebook.ListForAssignments(ctx, ids)
	if err != nil {
		return nil, err
	}

	return dto.NewGradebookEntryResponseSlice(entries), nil
}

// Override applies a manual score or comment to an entry. The entry must
// belong to one of the teacher's own assignments; a manual score replaces the
// final score while the automatic score stays on record.
func (s *gradebookService) Override(ctx context.Context, entryID, teacherID uuid.UUID, payload dto.UpdateGradebookRequest) (dto.GradebookEntryResponse, error) {
	entry, err := s.gradebook.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GradebookEntryResponse{}, ErrGradebookEntryNotFound
		}
		return dto.GradebookEntryResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, entry.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GradebookEntryResponse{}, ErrGradebookEntryNotFound
		}
		return dto.GradebookEntryResponse{}, err
	}
	if assignment.TeacherID != teacherID {
		return dto.GradebookEntryResponse{}, ErrGradebookEntryNotFound
	}

	if payload.ManualScore != nil {
		entry.ManualScore = payload.ManualScore
		entry.FinalScore = *payload.ManualScore
		entry.Percentage = manualPercentage(entry, *payload.ManualScore)
		entry.GradeLetter = gradeLetter(entry.Percentage)
	}
	if payload.Comments != nil {
		entry.Comments = *payload.Comments
	}

	if err := s.gradebook.Update(ctx, &entry); err != nil {
		return dto.GradebookEntryResponse{}, err
	}

	s.logger.Info().
		Str("entry_id", entry.ID.String()).
		Msg("gradebook entry overridden")

	return dto.NewGradebookEntryResponse(entry), nil
}

// manualPercentage rescales the stored percentage to the manual score using
// the ratio from the auto-graded pass. Without a usable baseline the stored
// percentage is kept.
func manualPercentage(entry models.GradebookEntry, manualScore float64) float64 {
	if entry.AutoScore <= 0 || entry.Percentage <= 0 {
		return entry.Percentage
	}

	possible := entry.AutoScore * 100 / entry.Percentage
	if possible <= 0 {
		return entry.Percentage
	}

	return 100 * manualScore / possible
}
