package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

// AssessmentService exposes AI-generated printable assessments.
type AssessmentService interface {
	Create(ctx context.Context, teacherID uuid.UUID, payload dto.CreateAssessmentRequest) (dto.AssessmentResponse, error)
	List(ctx context.Context, teacherID uuid.UUID) ([]dto.AssessmentResponse, error)
}

type assessmentService struct {
	assessments repository.AssessmentRepository
	generator   ai.Generator
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssessmentService builds a new assessment service.
func NewAssessmentService(
	assessments repository.AssessmentRepository,
	generator ai.Generator,
	validate *validator.Validate,
	logger zerolog.Logger,
) AssessmentService {
	return &assessmentService{
		assessments: assessments,
		generator:   generator,
		validator:   validate,
		logger:      logger.With().Str("component", "assessment_service").Logger(),
	}
}

// Create asks the generator for a question set covering the requested topics
// and stores the result ready for rendering. Generation failure fails the
// request.
func (s *assessmentService) Create(ctx context.Context, teacherID uuid.UUID, payload dto.CreateAssessmentRequest) (dto.AssessmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssessmentResponse{}, err
	}

	questions, err := s.generator.GenerateAssessment(ctx, ai.AssessmentParams{
		Title:         payload.Title,
		Subject:       payload.Subject,
		Topics:        payload.Topics,
		Difficulty:    payload.Difficulty,
		QuestionCount: payload.QuestionCount,
	})
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	topicsJSON, err := json.Marshal(payload.Topics)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("encode topics: %w", err)
	}
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("encode questions: %w", err)
	}

	assessment := models.PdfAssessment{
		TeacherID: teacherID,
		Title:     payload.Title,
		Topics:    datatypes.JSON(topicsJSON),
		Questions: datatypes.JSON(questionsJSON),
		Status:    "ready",
	}

	if payload.SubjectID != "" {
		if subjectID, err := uuid.Parse(payload.SubjectID); err == nil {
			assessment.SubjectID = &subjectID
		}
	}

	if err := s.assessments.Create(ctx, &assessment); err != nil {
		return dto.AssessmentResponse{}, err
	}

	s.logger.Info().
		Str("assessment_id", assessment.ID.String()).
		Int("questions", len(questions)).
		Msg("assessment generated")

	return dto.NewAssessmentResponse(assessment), nil
}

func (s *assessmentService) List(ctx context.Context, teacherID uuid.UUID) ([]dto.AssessmentResponse, error) {
	assessments, err := s.assessments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssessmentResponseSlice(assessments), nil
}
