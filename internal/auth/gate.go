package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
)

// ErrUnauthenticated indicates no valid session identity could be resolved.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden indicates the resolved identity lacks the required role.
var ErrForbidden = errors.New("access denied")

// Gate resolves the caller identity for handlers that require one. It fails
// closed: any doubt about the session maps to ErrUnauthenticated.
type Gate struct {
	profiles repository.ProfileRepository
}

// NewGate constructs the authentication gate.
func NewGate(profiles repository.ProfileRepository) *Gate {
	return &Gate{profiles: profiles}
}

// Identity returns the authenticated caller id, or ErrUnauthenticated when the
// session middleware resolved nothing.
func (g *Gate) Identity(c *fiber.Ctx) (uuid.UUID, error) {
	value := c.Locals("user_id")
	if value == nil {
		return uuid.Nil, ErrUnauthenticated
	}

	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}

	return id, nil
}

// Profile resolves the caller's stored profile.
func (g *Gate) Profile(ctx context.Context, c *fiber.Ctx) (models.UserProfile, error) {
	id, err := g.Identity(c)
	if err != nil {
		return models.UserProfile{}, err
	}

	profile, err := g.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.UserProfile{}, ErrUnauthenticated
		}
		return models.UserProfile{}, err
	}

	return profile, nil
}

// RequireRole resolves the caller's profile and verifies its stored role
// against the allowed set. The comparison is a plain read-then-compare; the
// token role claim is never trusted on its own.
func (g *Gate) RequireRole(ctx context.Context, c *fiber.Ctx, roles ...string) (models.UserProfile, error) {
	profile, err := g.Profile(ctx, c)
	if err != nil {
		return models.UserProfile{}, err
	}

	for _, role := range roles {
		if profile.Role == role {
			return profile, nil
		}
	}

	return models.UserProfile{}, ErrForbidden
}
