package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/auth"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/service"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/utils"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"
)

// TeacherHandler serves the teacher-role surface: dashboard, lesson plans,
// assignments, gradebook, analytics, assessments, and messaging.
type TeacherHandler struct {
	assignments service.AssignmentService
	plans       service.LessonPlanService
	gradebook   service.GradebookService
	analytics   service.AnalyticsService
	assessments service.AssessmentService
	messages    service.MessageService
	gate        *auth.Gate
	logger      zerolog.Logger
}

// NewTeacherHandler builds the handler.
func NewTeacherHandler(
	assignments service.AssignmentService,
	plans service.LessonPlanService,
	gradebook service.GradebookService,
	analytics service.AnalyticsService,
	assessments service.AssessmentService,
	messages service.MessageService,
	gate *auth.Gate,
	logger zerolog.Logger,
) *TeacherHandler {
	return &TeacherHandler{
		assignments: assignments,
		plans:       plans,
		gradebook:   gradebook,
		analytics:   analytics,
		assessments: assessments,
		messages:    messages,
		gate:        gate,
		logger:      logger.With().Str("component", "teacher_handler").Logger(),
	}
}

func (h *TeacherHandler) requireTeacher(c *fiber.Ctx) (uuid.UUID, error) {
	profile, err := h.gate.RequireRole(c.UserContext(), c, models.RoleTeacher)
	if err != nil {
		return uuid.Nil, err
	}
	return profile.ID, nil
}

// Dashboard returns the teacher's headline numbers.
func (h *TeacherHandler) Dashboard(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	dashboard, err := h.analytics.Dashboard(c.UserContext(), teacherID)
	if err != nil {
		return sendStoreError(c, "Failed to load dashboard", err)
	}

	return utils.SendEntity(c, dashboard)
}

// Analytics returns the per-assignment submission breakdown.
func (h *TeacherHandler) Analytics(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	analytics, err := h.analytics.Analytics(c.UserContext(), teacherID)
	if err != nil {
		return sendStoreError(c, "Failed to load analytics", err)
	}

	return utils.SendEntity(c, analytics)
}

// CreateLessonPlan creates a plan, optionally AI-drafted.
func (h *TeacherHandler) CreateLessonPlan(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	var payload dto.CreateLessonPlanRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	plan, err := h.plans.Create(c.UserContext(), teacherID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, ai.ErrGeneration):
			return utils.SendErrorDetails(c, fiber.StatusInternalServerError, "Failed to generate lesson plan", err)
		default:
			return sendStoreError(c, "Failed to create lesson plan", err)
		}
	}

	return utils.SendEntity(c, plan)
}

// ListLessonPlans returns the teacher's plans.
func (h *TeacherHandler) ListLessonPlans(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	plans, err := h.plans.List(c.UserContext(), teacherID)
	if err != nil {
		return sendStoreError(c, "Failed to list lesson plans", err)
	}

	return utils.SendList(c, "lesson_plans", plans)
}

// UpdateLessonPlan applies a partial update to an owned plan.
func (h *TeacherHandler) UpdateLessonPlan(c *fiber.Ctx, params []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	planID, ok, err := parseIDParam(c, params)
	if !ok {
		return err
	}

	var payload dto.UpdateLessonPlanRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	plan, err := h.plans.Update(c.UserContext(), planID, teacherID, payload)
	if err != nil {
		if errors.Is(err, service.ErrLessonPlanNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Lesson plan not found")
		}
		return sendStoreError(c, "Failed to update lesson plan", err)
	}

	return utils.SendEntity(c, plan)
}

// DeleteLessonPlan removes an owned plan.
func (h *TeacherHandler) DeleteLessonPlan(c *fiber.Ctx, params []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	planID, ok, err := parseIDParam(c, params)
	if !ok {
		return err
	}

	if err := h.plans.Delete(c.UserContext(), planID, teacherID); err != nil {
		if errors.Is(err, service.ErrLessonPlanNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Lesson plan not found")
		}
		return sendStoreError(c, "Failed to delete lesson plan", err)
	}

	return utils.SendEntity(c, fiber.Map{"message": "Lesson plan deleted"})
}

// CreateAssignment creates an unpublished assignment with its questions.
func (h *TeacherHandler) CreateAssignment(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	var payload dto.CreateTeacherAssignmentRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	assignment, err := h.assignments.Create(c.UserContext(), teacherID, payload)
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		return sendStoreError(c, "Failed to create assignment", err)
	}

	return utils.SendEntity(c, assignment)
}

// ListAssignments returns the teacher's assignments.
func (h *TeacherHandler) ListAssignments(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	assignments, err := h.assignments.List(c.UserContext(), teacherID)
	if err != nil {
		return sendStoreError(c, "Failed to list assignments", err)
	}

	return utils.SendList(c, "assignments", assignments)
}

// PublishAssignment makes an owned assignment visible to students.
func (h *TeacherHandler) PublishAssignment(c *fiber.Ctx, params []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	assignmentID, ok, err := parseIDParam(c, params)
	if !ok {
		return err
	}

	assignment, err := h.assignments.Publish(c.UserContext(), assignmentID, teacherID)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return sendStoreError(c, "Failed to publish assignment", err)
	}

	return utils.SendEntity(c, assignment)
}

// Gradebook lists every entry attached to the teacher's assignments.
func (h *TeacherHandler) Gradebook(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	entries, err := h.gradebook.List(c.UserContext(), teacherID)
	if err != nil {
		return sendStoreError(c, "Failed to list gradebook", err)
	}

	return utils.SendList(c, "gradebook", entries)
}

// OverrideGrade applies a manual score or comment to a gradebook entry.
func (h *TeacherHandler) OverrideGrade(c *fiber.Ctx, params []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	entryID, ok, err := parseIDParam(c, params)
	if !ok {
		return err
	}

	var payload dto.UpdateGradebookRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	entry, err := h.gradebook.Override(c.UserContext(), entryID, teacherID, payload)
	if err != nil {
		if errors.Is(err, service.ErrGradebookEntryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Gradebook entry not found")
		}
		return sendStoreError(c, "Failed to update gradebook entry", err)
	}

	return utils.SendEntity(c, entry)
}

// CreateAssessment generates a printable question set.
func (h *TeacherHandler) CreateAssessment(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	var payload dto.CreateAssessmentRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	assessment, err := h.assessments.Create(c.UserContext(), teacherID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, ai.ErrGeneration):
			return utils.SendErrorDetails(c, fiber.StatusInternalServerError, "Failed to generate assessment", err)
		default:
			return sendStoreError(c, "Failed to create assessment", err)
		}
	}

	return utils.SendEntity(c, assessment)
}

// ListAssessments returns the teacher's generated assessments.
func (h *TeacherHandler) ListAssessments(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	assessments, err := h.assessments.List(c.UserContext(), teacherID)
	if err != nil {
		return sendStoreError(c, "Failed to list assessments", err)
	}

	return utils.SendList(c, "assessments", assessments)
}

// SendMessage sends a direct message to another user.
func (h *TeacherHandler) SendMessage(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	var payload dto.SendMessageRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	message, err := h.messages.Send(c.UserContext(), teacherID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrInvalidRecipient):
			return utils.SendError(c, fiber.StatusBadRequest, "Invalid recipient id")
		default:
			return sendStoreError(c, "Failed to send message", err)
		}
	}

	return utils.SendEntity(c, message)
}

// ListMessages returns the teacher's sent and received messages, marking the
// received ones read.
func (h *TeacherHandler) ListMessages(c *fiber.Ctx, _ []string) error {
	teacherID, err := h.requireTeacher(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	messages, err := h.messages.List(c.UserContext(), teacherID)
	if err != nil {
		return sendStoreError(c, "Failed to list messages", err)
	}

	if err := h.messages.MarkRead(c.UserContext(), teacherID); err != nil {
		h.logger.Warn().Err(err).Msg("failed to mark messages read")
	}

	return utils.SendList(c, "messages", messages)
}
