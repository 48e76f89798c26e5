package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	app.Get("/probe", handler)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/probe", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	return resp.StatusCode, body
}

func TestSendListNilBecomesEmptyArray(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		var items []string
		return SendList(c, "items", items)
	})

	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, float64(0), body["count"])

	items, ok := body["items"].([]interface{})
	require.True(t, ok, "items must be an array, not null")
	require.Empty(t, items)
}

func TestSendListCountsItems(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendList(c, "subjects", []string{"maths", "science"})
	})

	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, float64(2), body["count"])
}

func TestSendError(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusNotFound, "Assignment not found")
	})

	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "Assignment not found", body["error"])
	require.NotContains(t, body, "details")
}

func TestSendErrorDetails(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendErrorDetails(c, fiber.StatusInternalServerError, "Failed to generate quiz", io.ErrUnexpectedEOF)
	})

	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "Failed to generate quiz", body["error"])
	require.Equal(t, io.ErrUnexpectedEOF.Error(), body["details"])
}
