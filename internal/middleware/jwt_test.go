package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const sessionSecret = "session-test-secret"

func newSessionApp(t *testing.T) (*fiber.App, *uuid.UUID, *string) {
	t.Helper()

	var seenID uuid.UUID
	var seenRole string

	app := fiber.New()
	app.Use(Session(sessionSecret))
	app.Get("/probe", func(c *fiber.Ctx) error {
		if id, ok := c.Locals("user_id").(uuid.UUID); ok {
			seenID = id
		}
		if role, ok := c.Locals("user_role").(string); ok {
			seenRole = role
		}
		return c.SendStatus(fiber.StatusOK)
	})

	return app, &seenID, &seenRole
}

func signSession(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func probe(t *testing.T, app *fiber.App, authorization string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "session middleware never rejects")
}

func TestSessionResolvesIdentity(t *testing.T) {
	app, seenID, seenRole := newSessionApp(t)
	userID := uuid.New()
	token := signSession(t, sessionSecret, jwt.MapClaims{
		"sub":  userID.String(),
		"role": "Teacher",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	probe(t, app, "Bearer "+token)
	require.Equal(t, userID, *seenID)
	require.Equal(t, "teacher", *seenRole, "role claim is lowercased")
}

func TestSessionFallsBackToUserIDClaim(t *testing.T) {
	app, seenID, _ := newSessionApp(t)
	userID := uuid.New()
	token := signSession(t, sessionSecret, jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	probe(t, app, "Bearer "+token)
	require.Equal(t, userID, *seenID)
}

func TestSessionIgnoresBadSignature(t *testing.T) {
	app, seenID, _ := newSessionApp(t)
	token := signSession(t, "some-other-secret", jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	probe(t, app, "Bearer "+token)
	require.Equal(t, uuid.Nil, *seenID)
}

func TestSessionIgnoresExpiredToken(t *testing.T) {
	app, seenID, _ := newSessionApp(t)
	token := signSession(t, sessionSecret, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	probe(t, app, "Bearer "+token)
	require.Equal(t, uuid.Nil, *seenID)
}

func TestSessionIgnoresMalformedHeader(t *testing.T) {
	app, seenID, _ := newSessionApp(t)

	probe(t, app, "")
	probe(t, app, "Basic dXNlcjpwYXNz")
	probe(t, app, "Bearer not.a.token")
	require.Equal(t, uuid.Nil, *seenID)
}

func TestSessionRoleFromListClaim(t *testing.T) {
	app, _, seenRole := newSessionApp(t)
	token := signSession(t, sessionSecret, jwt.MapClaims{
		"sub":   uuid.NewString(),
		"roles": []string{"", "Coordinator"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	probe(t, app, "Bearer "+token)
	require.Equal(t, "coordinator", *seenRole)
}
