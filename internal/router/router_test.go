package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func echoHandler(name string) HandlerFunc {
	return func(c *fiber.Ctx, params []string) error {
		return c.JSON(fiber.Map{"handler": name, "params": params})
	}
}

func newTestApp(rules []Rule) *fiber.App {
	app := fiber.New()
	NewTable(rules, zerolog.Nop()).Register(app)
	return app
}

func request(t *testing.T, app *fiber.App, method, target string) (int, map[string]interface{}) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}

	return resp.StatusCode, body
}

func TestDispatchExactRoutes(t *testing.T) {
	app := newTestApp([]Rule{
		Get("/", echoHandler("index")),
		Get("/assignments", echoHandler("list")),
	})

	status, body := request(t, app, fiber.MethodGet, "/api/")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "index", body["handler"])

	status, body = request(t, app, fiber.MethodGet, "/api/assignments")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "list", body["handler"])
}

func TestDispatchTrailingSlashNormalized(t *testing.T) {
	app := newTestApp([]Rule{Get("/assignments", echoHandler("list"))})

	status, body := request(t, app, fiber.MethodGet, "/api/assignments/")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "list", body["handler"])
}

func TestDispatchPatternCapturesParams(t *testing.T) {
	app := newTestApp([]Rule{
		PostMatch("/assignments/([^/]+)/start", echoHandler("start")),
	})

	status, body := request(t, app, fiber.MethodPost, "/api/assignments/abc-123/start")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "start", body["handler"])
	require.Equal(t, []interface{}{"abc-123"}, body["params"])
}

func TestDispatchFirstMatchWins(t *testing.T) {
	app := newTestApp([]Rule{
		Post("/study-groups/join", echoHandler("join")),
		PostMatch("/study-groups/([^/]+)/chat", echoHandler("chat")),
	})

	status, body := request(t, app, fiber.MethodPost, "/api/study-groups/join")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "join", body["handler"])

	status, body = request(t, app, fiber.MethodPost, "/api/study-groups/xyz/chat")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "chat", body["handler"])
}

func TestDispatchMethodMismatch(t *testing.T) {
	app := newTestApp([]Rule{Get("/doubts", echoHandler("list"))})

	status, body := request(t, app, fiber.MethodPost, "/api/doubts")
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "Route /doubts not found", body["error"])
}

func TestDispatchNotFoundNamesRoute(t *testing.T) {
	app := newTestApp([]Rule{Get("/", echoHandler("index"))})

	status, body := request(t, app, fiber.MethodGet, "/api/nope/deeper")
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "Route /nope/deeper not found", body["error"])
}

func TestDispatchOptionsShortCircuits(t *testing.T) {
	app := newTestApp([]Rule{Get("/assignments", echoHandler("list"))})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodOptions, "/api/anything/at/all", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Empty(t, raw, "preflight responses carry no body")
}

func TestDispatchHandlerErrorBecomes500(t *testing.T) {
	app := newTestApp([]Rule{
		Get("/boom", func(c *fiber.Ctx, _ []string) error {
			return errors.New("database exploded")
		}),
	})

	status, body := request(t, app, fiber.MethodGet, "/api/boom")
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "Internal server error", body["error"])
}
