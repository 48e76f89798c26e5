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

// AnalyticsService aggregates teacher-facing dashboard and per-assignment
// submission analytics.
type AnalyticsService interface {
	Dashboard(ctx context.Context, teacherID uuid.UUID) (dto.TeacherDashboardResponse, error)
	Analytics(ctx context.Context, teacherID uuid.UUID) (dto.TeacherAnalyticsResponse, error)
}

type analyticsService struct {
	assignments repository.AssignmentRepository
	attempts    repository.AttemptRepository
	plans       repository.LessonPlanRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewAnalyticsService builds a new analytics service. The redis client is
// optional; when nil, every call recomputes from the database.
func NewAnalyticsService(
	assignments repository.AssignmentRepository,
	attempts repository.AttemptRepository,
	plans repository.LessonPlanRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) AnalyticsService {
	return &analyticsService{
		assignments: assignments,
		attempts:    attempts,
		plans:       plans,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "analytics_service").Logger(),
	}
}

func (s *analyticsService) Dashboard(ctx context.Context, teacherID uuid.UUID) (dto.TeacherDashboardResponse, error) {
	key := fmt.Sprintf("proxilearn:dashboard:teacher:%s", teacherID)
	return cachedJSON(ctx, s.cache, s.logger, key, s.cacheTTL, func(ctx context.Context) (dto.TeacherDashboardResponse, error) {
		return s.buildDashboard(ctx, teacherID)
	})
}

func (s *analyticsService) buildDashboard(ctx context.Context, teacherID uuid.UUID) (dto.TeacherDashboardResponse, error) {
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	ids := make([]uuid.UUID, 0, len(assignments))
	published := 0
	for _, assignment := range assignments {
		ids = append(ids, assignment.ID)
		if assignment.IsPublished {
			published++
		}
	}

	attempts, err := s.attempts.ListCompletedForAssignments(ctx, ids)
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	plans, err := s.plans.ListByTeacher(ctx, teacherID)
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	var percentageSum float64
	passedCount := 0
	for _, attempt := range attempts {
		percentageSum += attempt.PercentageScore
		if attempt.Passed {
			passedCount++
		}
	}

	dashboard := dto.TeacherDashboardResponse{
		TotalAssignments:     len(assignments),
		PublishedAssignments: published,
		TotalAttempts:        len(attempts),
		LessonPlanCount:      len(plans),
	}
	if len(attempts) > 0 {
		dashboard.AveragePercentage = percentageSum / float64(len(attempts))
		dashboard.PassRate = 100 * float64(passedCount) / float64(len(attempts))
	}

	return dashboard, nil
}

func (s *analyticsService) Analytics(ctx context.Context, teacherID uuid.UUID) (dto.TeacherAnalyticsResponse, error) {
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return dto.TeacherAnalyticsResponse{}, err
	}

	ids := make([]uuid.UUID, 0, len(assignments))
	for _, assignment := range assignments {
		ids = append(ids, assignment.ID)
	}

	attempts, err := s.attempts.ListCompletedForAssignments(ctx, ids)
	if err != nil {
		return dto.TeacherAnalyticsResponse{}, err
	}

	byAssignment := make(map[uuid.UUID][]models.AssignmentAttempt, len(assignments))
	for _, attempt := range attempts {
		byAssignment[attempt.AssignmentID] = append(byAssignment[attempt.AssignmentID], attempt)
	}

	rows := make([]dto.AssignmentAnalytics, 0, len(assignments))
	for _, assignment := range assignments {
		row := dto.AssignmentAnalytics{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
		}

		group := byAssignment[assignment.ID]
		row.AttemptCount = len(group)
		if len(group) > 0 {
			var percentageSum float64
			passedCount := 0
			for _, attempt := range group {
				percentageSum += attempt.PercentageScore
				if attempt.Passed {
					passedCount++
				}
			}
			row.AveragePercentage = percentageSum / float64(len(group))
			row.PassRate = 100 * float64(passedCount) / float64(len(group))
		}

		rows = append(rows, row)
	}

	return dto.TeacherAnalyticsResponse{Assignments: rows}, nil
}
