package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/utils"
)

// HandlerFunc handles one matched route. params holds the pattern's capture
// groups in order; exact rules receive none.
type HandlerFunc func(c *fiber.Ctx, params []string) error

// Rule is one entry in the dispatch table. Exact takes precedence over
// Pattern; rules are evaluated strictly in declaration order and the first
// match wins, so narrower routes must precede the patterns that would swallow
// them.
type Rule struct {
	Method  string
	Exact   string
	Pattern *regexp.Regexp
	Handler HandlerFunc
}

// Table is the ordered route table served by Dispatch.
type Table struct {
	rules  []Rule
	logger zerolog.Logger
}

// NewTable builds a dispatch table from an ordered rule list.
func NewTable(rules []Rule, logger zerolog.Logger) *Table {
	return &Table{
		rules:  rules,
		logger: logger.With().Str("component", "router").Logger(),
	}
}

// Get compiles a GET rule for an exact route.
func Get(route string, handler HandlerFunc) Rule {
	return Rule{Method: fiber.MethodGet, Exact: route, Handler: handler}
}

// Post compiles a POST rule for an exact route.
func Post(route string, handler HandlerFunc) Rule {
	return Rule{Method: fiber.MethodPost, Exact: route, Handler: handler}
}

// GetMatch compiles a GET rule from a regexp source anchored to the full route.
func GetMatch(pattern string, handler HandlerFunc) Rule {
	return Rule{Method: fiber.MethodGet, Pattern: compile(pattern), Handler: handler}
}

// PostMatch compiles a POST rule from a regexp source anchored to the full route.
func PostMatch(pattern string, handler HandlerFunc) Rule {
	return Rule{Method: fiber.MethodPost, Pattern: compile(pattern), Handler: handler}
}

// PutMatch compiles a PUT rule from a regexp source anchored to the full route.
func PutMatch(pattern string, handler HandlerFunc) Rule {
	return Rule{Method: fiber.MethodPut, Pattern: compile(pattern), Handler: handler}
}

// DeleteMatch compiles a DELETE rule from a regexp source anchored to the full route.
func DeleteMatch(pattern string, handler HandlerFunc) Rule {
	return Rule{Method: fiber.MethodDelete, Pattern: compile(pattern), Handler: handler}
}

func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile("^" + pattern + "$")
}

// Register mounts the table behind the API catch-all.
func (t *Table) Register(app *fiber.App) {
	app.All("/api/*", t.Dispatch)
}

// Dispatch normalizes the route, short-circuits preflight, walks the table in
// order, and owns the 404 and 500 boundaries.
func (t *Table) Dispatch(c *fiber.Ctx) error {
	route := normalizeRoute(c.Params("*"))

	if c.Method() == fiber.MethodOptions {
		return c.Status(fiber.StatusOK).Send(nil)
	}

	for _, rule := range t.rules {
		if rule.Method != c.Method() {
			continue
		}

		if rule.Exact != "" {
			if route != rule.Exact {
				continue
			}
			return t.invoke(c, rule, route, nil)
		}

		if rule.Pattern == nil {
			continue
		}
		match := rule.Pattern.FindStringSubmatch(route)
		if match == nil {
			continue
		}
		return t.invoke(c, rule, route, match[1:])
	}

	return utils.SendError(c, fiber.StatusNotFound, fmt.Sprintf("Route %s not found", route))
}

func (t *Table) invoke(c *fiber.Ctx, rule Rule, route string, params []string) error {
	if err := rule.Handler(c, params); err != nil {
		t.logger.Error().Err(err).
			Str("method", rule.Method).
			Str("route", route).
			Msg("handler failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return nil
}

func normalizeRoute(wildcard string) string {
	return "/" + strings.Trim(wildcard, "/")
}
