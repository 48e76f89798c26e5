package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

// ErrLessonPlanNotFound indicates the plan does not exist or is not owned by
// the requesting teacher.
var ErrLessonPlanNotFound = errors.New("lesson plan not found")

// LessonPlanService exposes lesson plan CRUD with optional AI drafting.
type LessonPlanService interface {
	Create(ctx context.Context, teacherID uuid.UUID, payload dto.CreateLessonPlanRequest) (dto.LessonPlanResponse, error)
	List(ctx context.Context, teacherID uuid.UUID) ([]dto.LessonPlanResponse, error)
	Update(ctx context.Context, id, teacherID uuid.UUID, payload dto.UpdateLessonPlanRequest) (dto.LessonPlanResponse, error)
	Delete(ctx context.Context, id, teacherID uuid.UUID) error
}

type lessonPlanService struct {
	plans     repository.LessonPlanRepository
	generator ai.Generator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewLessonPlanService builds a new lesson plan service.
func NewLessonPlanService(
	plans repository.LessonPlanRepository,
	generator ai.Generator,
	validate *validator.Validate,
	logger zerolog.Logger,
) LessonPlanService {
	return &lessonPlanService{
		plans:     plans,
		generator: generator,
		validator: validate,
		logger:    logger.With().Str("component", "lesson_plan_service").Logger(),
	}
}

// Create persists a lesson plan. With use_ai set, the concept, activity, and
// resource lists are drafted by the generator from the requested topic; AI
// failure fails the request since the draft is the point of the call.
func (s *lessonPlanService) Create(ctx context.Context, teacherID uuid.UUID, payload dto.CreateLessonPlanRequest) (dto.LessonPlanResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LessonPlanResponse{}, err
	}

	plan := models.LessonPlan{
		TeacherID:       teacherID,
		Title:           payload.Title,
		GradeLevel:      payload.GradeLevel,
		DurationMinutes: payload.DurationMinutes,
		Status:          models.LessonPlanStatusDraft,
	}

	if payload.SubjectID != "" {
		if subjectID, err := uuid.Parse(payload.SubjectID); err == nil {
			plan.SubjectID = &subjectID
		}
	}

	keyConcepts := payload.KeyConcepts
	activities := payload.Activities
	resources := payload.Resources

	if payload.UseAI {
		topic := payload.Topic
		if topic == "" {
			topic = payload.Title
		}

		draft, err := s.generator.GenerateLessonPlan(ctx, ai.LessonPlanParams{
			Topic:           topic,
			Subject:         payload.Subject,
			GradeLevel:      payload.GradeLevel,
			DurationMinutes: payload.DurationMinutes,
		})
		if err != nil {
			return dto.LessonPlanResponse{}, err
		}

		if draft.Title != "" {
			plan.Title = draft.Title
		}
		keyConcepts = draft.KeyConcepts
		activities = draft.Activities
		resources = draft.Resources
	}

	var err error
	if plan.KeyConcepts, err = encodeStringList(keyConcepts); err != nil {
		return dto.LessonPlanResponse{}, err
	}
	if plan.Activities, err = encodeStringList(activities); err != nil {
		return dto.LessonPlanResponse{}, err
	}
	if plan.Resources, err = encodeStringList(resources); err != nil {
		return dto.LessonPlanResponse{}, err
	}

	if err := s.plans.Create(ctx, &plan); err != nil {
		return dto.LessonPlanResponse{}, err
	}

	s.logger.Info().
		Str("plan_id", plan.ID.String()).
		Bool("ai_drafted", payload.UseAI).
		Msg("lesson plan created")

	return dto.NewLessonPlanResponse(plan), nil
}

func (s *lessonPlanService) List(ctx context.Context, teacherID uuid.UUID) ([]dto.LessonPlanResponse, error) {
	plans, err := s.plans.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewLessonPlanResponseSlice(plans), nil
}

func (s *lessonPlanService) Update(ctx context.Context, id, teacherID uuid.UUID, payload dto.UpdateLessonPlanRequest) (dto.LessonPlanResponse, error) {
	plan, err := s.plans.GetOwned(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonPlanResponse{}, ErrLessonPlanNotFound
		}
		return dto.LessonPlanResponse{}, err
	}

	if payload.Title != nil {
		plan.Title = *payload.Title
	}
	if payload.GradeLevel != nil {
		plan.GradeLevel = *payload.GradeLevel
	}
	if payload.DurationMinutes != nil {
		plan.DurationMinutes = *payload.DurationMinutes
	}
	if payload.Status != nil {
		plan.Status = *payload.Status
	}
	if payload.KeyConcepts != nil {
		if plan.KeyConcepts, err = encodeStringList(*payload.KeyConcepts); err != nil {
			return dto.LessonPlanResponse{}, err
		}
	}
	if payload.Activities != nil {
		if plan.Activities, err = encodeStringList(*payload.Activities); err != nil {
			return dto.LessonPlanResponse{}, err
		}
	}
	if payload.Resources != nil {
		if plan.Resources, err = encodeStringList(*payload.Resources); err != nil {
			return dto.LessonPlanResponse{}, err
		}
	}

	if err := s.plans.Update(ctx, &plan); err != nil {
		return dto.LessonPlanResponse{}, err
	}

	return dto.NewLessonPlanResponse(plan), nil
}

func (s *lessonPlanService) Delete(ctx context.Context, id, teacherID uuid.UUID) error {
	if err := s.plans.Delete(ctx, id, teacherID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLessonPlanNotFound
		}
		return err
	}

	s.logger.Info().Str("plan_id", id.String()).Msg("lesson plan deleted")
	return nil
}

func encodeStringList(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}

	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode list: %w", err)
	}

	return datatypes.JSON(encoded), nil
}
