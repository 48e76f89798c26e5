package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
)

// AssignmentService exposes the teacher-side assignment use cases.
type AssignmentService interface {
	Create(ctx context.Context, teacherID uuid.UUID, payload dto.CreateTeacherAssignmentRequest) (dto.AssignmentResponse, error)
	List(ctx context.Context, teacherID uuid.UUID) ([]dto.AssignmentResponse, error)
	Publish(ctx context.Context, id, teacherID uuid.UUID) (dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(
	assignments repository.AssignmentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

// Create persists a teacher-authored assignment with its questions. Assignments
// start unpublished and become visible to students only after Publish.
func (s *assignmentService) Create(ctx context.Context, teacherID uuid.UUID, payload dto.CreateTeacherAssignmentRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	maxAttempts := payload.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	assignment := models.Assignment{
		Title:          payload.Title,
		Type:           "quiz",
		Difficulty:     payload.Difficulty,
		TeacherID:      teacherID,
		TotalQuestions: len(payload.Questions),
		TimeLimit:      payload.TimeLimit,
		MaxAttempts:    maxAttempts,
		PassingScore:   payload.PassingScore,
	}

	if payload.SubjectID != "" {
		if subjectID, err := uuid.Parse(payload.SubjectID); err == nil {
			assignment.SubjectID = &subjectID
		}
	}

	if payload.DueDate != "" {
		dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
		if err != nil {
			return dto.AssignmentResponse{}, fmt.Errorf("due_date must be RFC3339: %w", err)
		}
		assignment.DueDate = &dueDate
	}

	questions := make([]models.AssignmentQuestion, 0, len(payload.Questions))
	for _, input := range payload.Questions {
		options, err := json.Marshal(input.Options)
		if err != nil {
			return dto.AssignmentResponse{}, fmt.Errorf("encode options: %w", err)
		}

		points := input.Points
		if points <= 0 {
			points = 1
		}

		questions = append(questions, models.AssignmentQuestion{
			QuestionText:  input.QuestionText,
			Options:       options,
			CorrectAnswer: input.CorrectAnswer,
			Explanation:   input.Explanation,
			Points:        points,
		})
	}

	if err := s.assignments.Create(ctx, &assignment, questions); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().
		Str("assignment_id", assignment.ID.String()).
		Int("questions", len(questions)).
		Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) List(ctx context.Context, teacherID uuid.UUID) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *assignmentService) Publish(ctx context.Context, id, teacherID uuid.UUID) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.Publish(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Str("assignment_id", assignment.ID.String()).Msg("assignment published")
	return dto.NewAssignmentResponse(assignment), nil
}
