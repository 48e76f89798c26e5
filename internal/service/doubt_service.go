package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

// DoubtService exposes doubt submission and listing use cases.
type DoubtService interface {
	Create(ctx context.Context, studentID uuid.UUID, payload dto.CreateDoubtRequest) (dto.CreatedDoubtResponse, error)
	List(ctx context.Context, studentID uuid.UUID) ([]dto.DoubtResponse, error)
}

type doubtService struct {
	doubts    repository.DoubtRepository
	generator ai.Generator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDoubtService builds a new doubt service.
func NewDoubtService(
	doubts repository.DoubtRepository,
	generator ai.Generator,
	validate *validator.Validate,
	logger zerolog.Logger,
) DoubtService {
	return &doubtService{
		doubts:    doubts,
		generator: generator,
		validator: validate,
		logger:    logger.With().Str("component", "doubt_service").Logger(),
	}
}

// Create persists the doubt first, then asks the AI for an answer. AI failure
// never loses the doubt: the record stays open and the error is reported back
// alongside it.
func (s *doubtService) Create(ctx context.Context, studentID uuid.UUID, payload dto.CreateDoubtRequest) (dto.CreatedDoubtResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CreatedDoubtResponse{}, err
	}

	priority := payload.PriorityLevel
	if priority == "" {
		priority = "normal"
	}

	doubt := models.Doubt{
		StudentID:     studentID,
		Title:         strings.TrimSpace(payload.Title),
		QuestionText:  payload.QuestionText,
		Context:       payload.Context,
		PriorityLevel: priority,
		Status:        models.DoubtStatusOpen,
	}

	if payload.SubjectID != "" {
		if subjectID, err := uuid.Parse(payload.SubjectID); err == nil {
			doubt.SubjectID = &subjectID
		}
	}

	if err := s.doubts.Create(ctx, &doubt); err != nil {
		return dto.CreatedDoubtResponse{}, err
	}

	answer, err := s.generator.AnswerDoubt(ctx, ai.DoubtParams{
		Title:        doubt.Title,
		QuestionText: doubt.QuestionText,
		Subject:      payload.Subject,
		Context:      doubt.Context,
	})
	if err != nil {
		s.logger.Warn().Err(err).
			Str("doubt_id", doubt.ID.String()).
			Msg("ai answer failed, doubt stays open")

		return dto.CreatedDoubtResponse{
			Doubt:   dto.NewDoubtResponse(doubt),
			AIError: "AI response could not be generated",
		}, nil
	}

	response := models.DoubtResponse{
		DoubtID:      doubt.ID,
		ResponseText: answer,
		ResponseType: models.DoubtResponseTypeAI,
	}
	if err := s.doubts.AddResponse(ctx, &response); err != nil {
		return dto.CreatedDoubtResponse{}, err
	}

	if err := s.doubts.SetStatus(ctx, doubt.ID, models.DoubtStatusAnswered); err != nil {
		return dto.CreatedDoubtResponse{}, err
	}

	doubt.Status = models.DoubtStatusAnswered
	doubt.Responses = append(doubt.Responses, response)

	s.logger.Info().
		Str("doubt_id", doubt.ID.String()).
		Msg("doubt answered by ai")

	return dto.CreatedDoubtResponse{
		Doubt:      dto.NewDoubtResponse(doubt),
		AIResponse: &answer,
	}, nil
}

func (s *doubtService) List(ctx context.Context, studentID uuid.UUID) ([]dto.DoubtResponse, error) {
	doubts, err := s.doubts.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewDoubtResponseSlice(doubts), nil
}
