package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/auth"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/service"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/utils"
)

// ProgressHandler serves the student progress view.
type ProgressHandler struct {
	progress service.ProgressService
	gate     *auth.Gate
	logger   zerolog.Logger
}

// NewProgressHandler builds the handler.
func NewProgressHandler(progress service.ProgressService, gate *auth.Gate, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		progress: progress,
		gate:     gate,
		logger:   logger.With().Str("component", "progress_handler").Logger(),
	}
}

// StudentProgress returns the caller's aggregated attempt history.
func (h *ProgressHandler) StudentProgress(c *fiber.Ctx, _ []string) error {
	studentID, err := h.gate.Identity(c)
	if err != nil {
		return sendAuthError(c, err)
	}

	progress, err := h.progress.StudentProgress(c.UserContext(), studentID)
	if err != nil {
		return sendStoreError(c, "Failed to load student progress", err)
	}

	return utils.SendEntity(c, progress)
}
