package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/auth"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/service"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/utils"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

// QuizHandler serves the student-side assignment surface.
type QuizHandler struct {
	quizzes service.QuizService
	gate    *auth.Gate
	logger  zerolog.Logger
}

// NewQuizHandler builds the handler.
func NewQuizHandler(quizzes service.QuizService, gate *auth.Gate, logger zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizzes: quizzes,
		gate:    gate,
		logger:  logger.With().Str("component", "quiz_handler").Logger(),
	}
}

// GenerateQuiz creates an AI practice quiz owned by the caller.
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx, _ []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	var payload dto.GenerateQuizRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	quiz, err := h.quizzes.GenerateQuiz(c.UserContext(), studentID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, ai.ErrGeneration):
			return utils.SendErrorDetails(c, fiber.StatusInternalServerError, "Failed to generate quiz", err)
		default:
			return sendStoreError(c, "Failed to create quiz", err)
		}
	}

	return utils.SendEntity(c, quiz)
}

// ListAssignments returns the assignments visible to the caller.
func (h *QuizHandler) ListAssignments(c *fiber.Ctx, _ []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	assignments, err := h.quizzes.ListAssignments(c.UserContext(), studentID)
	if err != nil {
		return sendStoreError(c, "Failed to list assignments", err)
	}

	return utils.SendList(c, "assignments", assignments)
}

// Questions returns the assignment's questions without answers.
func (h *QuizHandler) Questions(c *fiber.Ctx, params []string) error {
	if _, err := h.gate.Identity(c); err != nil {
		return sendAuthError(c, err)
	}

	assignmentID, ok, err := parseIDParam(c, params)
	if !ok {
		return err
	}

	questions, err := h.quizzes.Questions(c.UserContext(), assignmentID)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return sendStoreError(c, "Failed to load questions", err)
	}

	return utils.SendList(c, "questions", questions)
}

// StartAttempt admits a new attempt against the attempt cap.
func (h *QuizHandler) StartAttempt(c *fiber.Ctx, params []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	assignmentID, ok, err := parseIDParam(c, params)
	if !ok {
		return err
	}

	attempt, err := h.quizzes.StartAttempt(c.UserContext(), assignmentID, studentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Assignment not found")
		case errors.Is(err, service.ErrMaxAttemptsExceeded):
			return utils.SendError(c, fiber.StatusBadRequest, "Maximum attempts exceeded")
		default:
			return sendStoreError(c, "Failed to start attempt", err)
		}
	}

	return utils.SendEntity(c, attempt)
}

// SubmitAttempt grades and finalizes an in-progress attempt.
func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx, params []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	assignmentID, ok, err := parseIDParam(c, params)
	if !ok {
		return err
	}

	var payload dto.SubmitAttemptRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	result, err := h.quizzes.SubmitAttempt(c.UserContext(), assignmentID, studentID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrAssignmentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Assignment not found")
		case errors.Is(err, service.ErrAttemptNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Attempt not found")
		default:
			return sendStoreError(c, "Failed to submit attempt", err)
		}
	}

	return utils.SendEntity(c, result)
}
