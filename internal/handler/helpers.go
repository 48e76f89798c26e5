package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/auth"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/utils"
)

// parseBody decodes the JSON request body, reporting a 400 on malformed input.
// The returned bool tells the caller whether to continue.
func parseBody(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	return true, nil
}

// parseIDParam parses a captured path segment as a UUID.
func parseIDParam(c *fiber.Ctx, params []string) (uuid.UUID, bool, error) {
	if len(params) == 0 {
		return uuid.Nil, false, utils.SendError(c, fiber.StatusBadRequest, "Invalid id")
	}

	id, err := uuid.Parse(params[0])
	if err != nil {
		return uuid.Nil, false, utils.SendError(c, fiber.StatusBadRequest, "Invalid id")
	}

	return id, true, nil
}

// sendValidationError reports validator failures as a 400 that names the
// offending JSON fields, one clause per field.
func sendValidationError(c *fiber.Ctx, err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	clauses := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		if fieldError.Tag() == "required" {
			clauses = append(clauses, fmt.Sprintf("%s is required", fieldError.Field()))
		} else {
			clauses = append(clauses, fmt.Sprintf("%s is invalid", fieldError.Field()))
		}
	}

	return utils.SendError(c, fiber.StatusBadRequest, strings.Join(clauses, ", "))
}

// isValidationError reports whether the error came from payload validation.
func isValidationError(err error) bool {
	var fieldErrors validator.ValidationErrors
	return errors.As(err, &fieldErrors)
}

// sendAuthError maps gate failures onto their status codes.
func sendAuthError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return utils.SendError(c, fiber.StatusUnauthorized, "Authentication required")
	case errors.Is(err, auth.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "Access denied")
	default:
		return sendStoreError(c, "Failed to resolve session", err)
	}
}

// sendStoreError reports an unclassified store or provider failure as a 500
// that surfaces the underlying message in details.
func sendStoreError(c *fiber.Ctx, message string, err error) error {
	return utils.SendErrorDetails(c, fiber.StatusInternalServerError, message, err)
}
