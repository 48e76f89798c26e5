package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/auth"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/service"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/utils"
)

// StudyGroupHandler serves the study group and chat surface.
type StudyGroupHandler struct {
	groups service.StudyGroupService
	gate   *auth.Gate
	logger zerolog.Logger
}

// NewStudyGroupHandler builds the handler.
func NewStudyGroupHandler(groups service.StudyGroupService, gate *auth.Gate, logger zerolog.Logger) *StudyGroupHandler {
	return &StudyGroupHandler{
		groups: groups,
		gate:   gate,
		logger: logger.With().Str("component", "study_group_handler").Logger(),
	}
}

// Create registers a new study group with the caller as creator.
func (h *StudyGroupHandler) Create(c *fiber.Ctx, _ []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	var payload dto.CreateGroupRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	group, err := h.groups.Create(c.UserContext(), studentID, payload)
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		return sendStoreError(c, "Failed to create study group", err)
	}

	return utils.SendEntity(c, group)
}

// Join admits the caller into a group by invite code.
func (h *StudyGroupHandler) Join(c *fiber.Ctx, _ []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	var payload dto.JoinGroupRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	group, err := h.groups.Join(c.UserContext(), studentID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrInvalidInviteCode):
			return utils.SendError(c, fiber.StatusNotFound, "Invalid invite code")
		case errors.Is(err, service.ErrGroupFull):
			return utils.SendError(c, fiber.StatusBadRequest, "Group is full")
		case errors.Is(err, service.ErrAlreadyMember):
			return utils.SendError(c, fiber.StatusBadRequest, "Already a member of this group")
		default:
			return sendStoreError(c, "Failed to join study group", err)
		}
	}

	return utils.SendEntity(c, group)
}

// List returns the caller's active groups.
func (h *StudyGroupHandler) List(c *fiber.Ctx, _ []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	groups, err := h.groups.List(c.UserContext(), studentID)
	if err != nil {
		return sendStoreError(c, "Failed to list study groups", err)
	}

	return utils.SendList(c, "study_groups", groups)
}

// SendChat posts a sanitized message into a group the caller belongs to.
func (h *StudyGroupHandler) SendChat(c *fiber.Ctx, params []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	groupID, ok, err := parseIDParam(c, params)
	if !ok {
		return err
	}

	var payload dto.SendChatRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	message, err := h.groups.SendChat(c.UserContext(), groupID, studentID, payload)
	if err != nil {
		return h.sendChatError(c, err)
	}

	return utils.SendEntity(c, message)
}

// ChatHistory returns the latest messages in chronological order.
func (h *StudyGroupHandler) ChatHistory(c *fiber.Ctx, params []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	groupID, ok, err := parseIDParam(c, params)
	if !ok {
		return err
	}

	messages, err := h.groups.ChatHistory(c.UserContext(), groupID, studentID)
	if err != nil {
		return h.sendChatError(c, err)
	}

	return utils.SendList(c, "messages", messages)
}

func (h *StudyGroupHandler) sendChatError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return sendValidationError(c, err)
	case errors.Is(err, service.ErrGroupNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Study group not found")
	case errors.Is(err, service.ErrNotGroupMember):
		return utils.SendError(c, fiber.StatusForbidden, "Access denied")
	default:
		return sendStoreError(c, "Failed to access group chat", err)
	}
}
