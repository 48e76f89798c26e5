package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/auth"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/service"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/utils"
)

// PublicHandler serves the unauthenticated surface plus the shared reference
// catalog.
type PublicHandler struct {
	seed   service.SeedService
	status service.StatusService
	gate   *auth.Gate
	logger zerolog.Logger
}

// NewPublicHandler builds the handler.
func NewPublicHandler(seed service.SeedService, status service.StatusService, gate *auth.Gate, logger zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		seed:   seed,
		status: status,
		gate:   gate,
		logger: logger.With().Str("component", "public_handler").Logger(),
	}
}

// Hello answers the legacy liveness probe.
func (h *PublicHandler) Hello(c *fiber.Ctx, _ []string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Hello World"})
}

// DBTest probes relational connectivity.
func (h *PublicHandler) DBTest(c *fiber.Ctx, _ []string) error {
	result, err := h.seed.DBTest(c.UserContext())
	if err != nil {
		return utils.SendErrorDetails(c, fiber.StatusInternalServerError, "Database connection failed", err)
	}

	return utils.SendEntity(c, result)
}

// InitDemoSchools provisions the demo school fixtures.
func (h *PublicHandler) InitDemoSchools(c *fiber.Ctx, _ []string) error {
	schools, err := h.seed.InitDemoSchools(c.UserContext())
	if err != nil {
		return utils.SendErrorDetails(c, fiber.StatusInternalServerError, "Failed to seed demo schools", err)
	}

	return utils.SendList(c, "schools", schools)
}

// Subjects lists the subject catalog for authenticated users.
func (h *PublicHandler) Subjects(c *fiber.Ctx, _ []string) error {
	if _, err := h.gate.Identity(c); err != nil {
		return sendAuthError(c, err)
	}

	subjects, err := h.seed.ListSubjects(c.UserContext())
	if err != nil {
		return sendStoreError(c, "Failed to list subjects", err)
	}

	return utils.SendList(c, "subjects", subjects)
}

// CreateStatus records a legacy status check in the document store.
func (h *PublicHandler) CreateStatus(c *fiber.Ctx, _ []string) error {
	var payload dto.CreateStatusRequest
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	check, err := h.status.Create(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		return utils.SendErrorDetails(c, fiber.StatusInternalServerError, "Failed to create status check", err)
	}

	return utils.SendEntity(c, check)
}

// ListStatus returns recorded status checks as a bare array.
func (h *PublicHandler) ListStatus(c *fiber.Ctx, _ []string) error {
	checks, err := h.status.List(c.UserContext())
	if err != nil {
		return utils.SendErrorDetails(c, fiber.StatusInternalServerError, "Failed to list status checks", err)
	}

	return c.Status(fiber.StatusOK).JSON(checks)
}
