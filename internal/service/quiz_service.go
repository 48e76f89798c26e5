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
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

// ErrAssignmentNotFound indicates the requested assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrMaxAttemptsExceeded indicates the student used up the attempt budget.
var ErrMaxAttemptsExceeded = errors.New("maximum attempts exceeded")

// ErrAttemptNotFound indicates no matching in-progress attempt exists.
var ErrAttemptNotFound = errors.New("attempt not found")

// QuizService exposes the student-side quiz use cases: AI generation,
// listing, attempt admission, and grading.
type QuizService interface {
	GenerateQuiz(ctx context.Context, studentID uuid.UUID, payload dto.GenerateQuizRequest) (dto.GeneratedQuizResponse, error)
	ListAssignments(ctx context.Context, studentID uuid.UUID) ([]dto.AssignmentResponse, error)
	Questions(ctx context.Context, assignmentID uuid.UUID) ([]dto.QuestionResponse, error)
	StartAttempt(ctx context.Context, assignmentID, studentID uuid.UUID) (dto.AttemptResponse, error)
	SubmitAttempt(ctx context.Context, assignmentID, studentID uuid.UUID, payload dto.SubmitAttemptRequest) (dto.SubmitResultResponse, error)
}

type quizService struct {
	assignments repository.AssignmentRepository
	attempts    repository.AttemptRepository
	gradebook   repository.GradebookRepository
	generator   ai.Generator
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewQuizService builds a new quiz service.
func NewQuizService(
	assignments repository.AssignmentRepository,
	attempts repository.AttemptRepository,
	gradebook repository.GradebookRepository,
	generator ai.Generator,
	validate *validator.Validate,
	logger zerolog.Logger,
) QuizService {
	return &quizService{
		assignments: assignments,
		attempts:    attempts,
		gradebook:   gradebook,
		generator:   generator,
		validator:   validate,
		logger:      logger.With().Str("component", "quiz_service").Logger(),
		now:         time.Now,
	}
}

// GenerateQuiz asks the AI generator for questions and persists the result as
// an unpublished practice assignment owned by the student. Generation failure
// fails the whole request.
func (s *quizService) GenerateQuiz(ctx context.Context, studentID uuid.UUID, payload dto.GenerateQuizRequest) (dto.GeneratedQuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GeneratedQuizResponse{}, err
	}

	generated, err := s.generator.GenerateQuiz(ctx, ai.QuizParams{
		Topic:         payload.Topic,
		Subject:       payload.Subject,
		Difficulty:    payload.Difficulty,
		QuestionCount: payload.QuestionCount,
	})
	if err != nil {
		return dto.GeneratedQuizResponse{}, err
	}

	assignment := models.Assignment{
		Title:          fmt.Sprintf("%s Practice Quiz", payload.Topic),
		Type:           "quiz",
		Difficulty:     payload.Difficulty,
		TeacherID:      studentID,
		TotalQuestions: len(generated),
		MaxAttempts:    3,
	}

	if payload.SubjectID != "" {
		if subjectID, err := uuid.Parse(payload.SubjectID); err == nil {
			assignment.SubjectID = &subjectID
		}
	}

	questions := make([]models.AssignmentQuestion, 0, len(generated))
	for _, question := range generated {
		options, err := json.Marshal(question.Options)
		if err != nil {
			return dto.GeneratedQuizResponse{}, fmt.Errorf("encode options: %w", err)
		}

		questions = append(questions, models.AssignmentQuestion{
			QuestionText:  question.QuestionText,
			Options:       options,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
			Points:        question.Points,
		})
	}

	if err := s.assignments.Create(ctx, &assignment, questions); err != nil {
		return dto.GeneratedQuizResponse{}, err
	}

	s.logger.Info().
		Str("assignment_id", assignment.ID.String()).
		Int("questions", len(questions)).
		Msg("practice quiz generated")

	return dto.GeneratedQuizResponse{
		AssignmentID: assignment.ID,
		Title:        assignment.Title,
		Questions:    dto.NewQuestionResponseSlice(questions),
	}, nil
}

func (s *quizService) ListAssignments(ctx context.Context, studentID uuid.UUID) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.ListVisibleToStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *quizService) Questions(ctx context.Context, assignmentID uuid.UUID) ([]dto.QuestionResponse, error) {
	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	questions, err := s.assignments.Questions(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	return dto.NewQuestionResponseSlice(questions), nil
}

func (s *quizService) StartAttempt(ctx context.Context, assignmentID, studentID uuid.UUID) (dto.AttemptResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrAssignmentNotFound
		}
		return dto.AttemptResponse{}, err
	}

	attempt, err := s.attempts.Start(ctx, assignment.ID, studentID, assignment.MaxAttempts)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMaxAttemptsExceeded):
			return dto.AttemptResponse{}, ErrMaxAttemptsExceeded
		case errors.Is(err, gorm.ErrRecordNotFound):
			return dto.AttemptResponse{}, ErrAssignmentNotFound
		default:
			return dto.AttemptResponse{}, err
		}
	}

	s.logger.Info().
		Str("assignment_id", assignment.ID.String()).
		Int("attempt_number", attempt.AttemptNumber).
		Msg("attempt started")

	return dto.NewAttemptResponse(attempt), nil
}

// SubmitAttempt grades the submission: exact string equality per question, no
// partial credit, percentage over total possible points (zero when nothing is
// gradeable). Completion and scores land in one scoped write, so re-submitting
// the same attempt number overwrites the previous grade.
func (s *quizService) SubmitAttempt(ctx context.Context, assignmentID, studentID uuid.UUID, payload dto.SubmitAttemptRequest) (dto.SubmitResultResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmitResultResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmitResultResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmitResultResponse{}, err
	}

	questions, err := s.assignments.Questions(ctx, assignmentID)
	if err != nil {
		return dto.SubmitResultResponse{}, err
	}

	var earned, possible float64
	responses := make([]models.StudentResponse, 0, len(questions))
	results := make([]dto.GradedQuestionResult, 0, len(questions))

	for _, question := range questions {
		possible += question.Points

		answer := payload.Answers[question.ID.String()]
		correct := answer == question.CorrectAnswer
		points := 0.0
		if correct {
			points = question.Points
		}
		earned += points

		responses = append(responses, models.StudentResponse{
			AssignmentID:  assignmentID,
			StudentID:     studentID,
			QuestionID:    question.ID,
			StudentAnswer: answer,
			IsCorrect:     correct,
			PointsEarned:  points,
			AttemptNumber: payload.AttemptNumber,
		})
		results = append(results, dto.GradedQuestionResult{
			QuestionID:    question.ID,
			StudentAnswer: answer,
			IsCorrect:     correct,
			PointsEarned:  points,
		})
	}

	percentage := 0.0
	if possible > 0 {
		percentage = 100 * earned / possible
	}
	passed := percentage >= assignment.EffectivePassingScore()

	submittedAt := s.now()
	attempt := models.AssignmentAttempt{
		AssignmentID:    assignmentID,
		StudentID:       studentID,
		AttemptNumber:   payload.AttemptNumber,
		Status:          models.AttemptStatusCompleted,
		TotalScore:      earned,
		PercentageScore: percentage,
		Passed:          passed,
		SubmittedAt:     &submittedAt,
	}

	if err := s.attempts.Complete(ctx, attempt, responses); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.SubmitResultResponse{}, ErrAttemptNotFound
		}
		return dto.SubmitResultResponse{}, err
	}

	entry := models.GradebookEntry{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		AutoScore:    earned,
		FinalScore:   earned,
		Percentage:   percentage,
		GradeLetter:  gradeLetter(percentage),
	}
	if err := s.gradebook.Upsert(ctx, &entry); err != nil {
		s.logger.Warn().Err(err).
			Str("assignment_id", assignmentID.String()).
			Msg("failed to upsert gradebook entry")
	}

	s.logger.Info().
		Str("assignment_id", assignmentID.String()).
		Float64("percentage", percentage).
		Bool("passed", passed).
		Msg("attempt graded")

	return dto.SubmitResultResponse{
		Attempt:         dto.NewAttemptResponse(attempt),
		TotalScore:      earned,
		PossibleScore:   possible,
		PercentageScore: percentage,
		Passed:          passed,
		Results:         results,
	}, nil
}

func gradeLetter(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}
