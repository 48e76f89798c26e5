package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/auth"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/service"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/utils"
)

// DoubtHandler serves the doubt submission surface.
type DoubtHandler struct {
	doubts service.DoubtService
	gate   *auth.Gate
	logger zerolog.Logger
}

// NewDoubtHandler builds the handler.
func NewDoubtHandler(doubts service.DoubtService, gate *auth.Gate, logger zerolog.Logger) *DoubtHandler {
	return &DoubtHandler{
		doubts: doubts,
		gate:   gate,
		logger: logger.With().Str("component", "doubt_handler").Logger(),
	}
}

// Create submits a doubt and attaches the AI answer when available.
func (h *DoubtHandler) Create(c *fiber.Ctx, _ []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	var payload dto.CreateDoubtRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	created, err := h.doubts.Create(c.UserContext(), studentID, payload)
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		return sendStoreError(c, "Failed to create doubt", err)
	}

	return utils.SendEntity(c, created)
}

// List returns the caller's doubts with their responses.
func (h *DoubtHandler) List(c *fiber.Ctx, _ []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	doubts, err := h.doubts.List(c.UserContext(), studentID)
	if err != nil {
		return sendStoreError(c, "Failed to list doubts", err)
	}

	return utils.SendList(c, "doubts", doubts)
}
