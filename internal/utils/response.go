package utils

import "github.com/gofiber/fiber/v2"

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SendError writes an error envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorBody{Error: message})
}

// SendErrorDetails writes an error envelope that surfaces the underlying
// store or provider message in a details field.
func SendErrorDetails(c *fiber.Ctx, status int, message string, err error) error {
	body := ErrorBody{Error: message}
	if err != nil {
		body.Details = err.Error()
	}

	return c.Status(status).JSON(body)
}

// SendList writes the canonical list envelope: the items under their plural
// key plus a count. Nil slices are sent as empty arrays, never null.
func SendList[T any](c *fiber.Ctx, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		key:     items,
		"count": len(items),
	})
}

// SendEntity writes a single entity payload with HTTP 200.
func SendEntity(c *fiber.Ctx, payload interface{}) error {
	return c.Status(fiber.StatusOK).JSON(payload)
}
