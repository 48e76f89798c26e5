package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
)

// ProgressService aggregates a student's attempt history into a progress view.
type ProgressService interface {
	StudentProgress(ctx context.Context, studentID uuid.UUID) (dto.StudentProgressResponse, error)
}

type progressService struct {
	assignments repository.AssignmentRepository
	attempts    repository.AttemptRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewProgressService builds a new progress service. The redis client is
// optional; when nil, every call recomputes from the database.
func NewProgressService(
	assignments repository.AssignmentRepository,
	attempts repository.AttemptRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) ProgressService {
	return &progressService{
		assignments: assignments,
		attempts:    attempts,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "progress_service").Logger(),
	}
}

func (s *progressService) StudentProgress(ctx context.Context, studentID uuid.UUID) (dto.StudentProgressResponse, error) {
	key := fmt.Sprintf("proxilearn:progress:student:%s", studentID)
	return cachedJSON(ctx, s.cache, s.logger, key, s.cacheTTL, func(ctx context.Context) (dto.StudentProgressResponse, error) {
		return s.buildProgress(ctx, studentID)
	})
}

func (s *progressService) buildProgress(ctx context.Context, studentID uuid.UUID) (dto.StudentProgressResponse, error) {
	attempts, err := s.attempts.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentProgressResponse{}, err
	}

	// Attempts arrive newest first, so the first one seen per assignment
	// carries the latest status.
	type rollup struct {
		attempts       int
		bestScore      float64
		bestPercentage float64
		passed         bool
		completed      bool
		lastStatus     string
	}

	order := make([]uuid.UUID, 0)
	rollups := make(map[uuid.UUID]*rollup)
	for _, attempt := range attempts {
		entry, seen := rollups[attempt.AssignmentID]
		if !seen {
			entry = &rollup{lastStatus: attempt.Status}
			rollups[attempt.AssignmentID] = entry
			order = append(order, attempt.AssignmentID)
		}

		entry.attempts++
		if attempt.Status == models.AttemptStatusCompleted {
			entry.completed = true
			if attempt.TotalScore > entry.bestScore {
				entry.bestScore = attempt.TotalScore
			}
			if attempt.PercentageScore > entry.bestPercentage {
				entry.bestPercentage = attempt.PercentageScore
			}
			if attempt.Passed {
				entry.passed = true
			}
		}
	}

	assignments, err := s.assignments.ListByIDs(ctx, order)
	if err != nil {
		return dto.StudentProgressResponse{}, err
	}

	titles := make(map[uuid.UUID]models.Assignment, len(assignments))
	for _, assignment := range assignments {
		titles[assignment.ID] = assignment
	}

	progress := make([]dto.AssignmentProgress, 0, len(order))
	completedCount := 0
	var percentageSum float64

	for _, assignmentID := range order {
		entry := rollups[assignmentID]
		assignment := titles[assignmentID]

		progress = append(progress, dto.AssignmentProgress{
			AssignmentID:   assignmentID,
			Title:          assignment.Title,
			AttemptsUsed:   entry.attempts,
			MaxAttempts:    assignment.MaxAttempts,
			BestScore:      entry.bestScore,
			BestPercentage: entry.bestPercentage,
			Passed:         entry.passed,
			LastStatus:     entry.lastStatus,
		})

		if entry.completed {
			completedCount++
			percentageSum += entry.bestPercentage
		}
	}

	response := dto.StudentProgressResponse{
		TotalAssignments:     len(order),
		CompletedAssignments: completedCount,
		Progress:             progress,
	}
	if completedCount > 0 {
		response.AveragePercentage = percentageSum / float64(completedCount)
	}

	return response, nil
}
