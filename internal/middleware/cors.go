package middleware

import "github.com/gofiber/fiber/v2"

// CORS attaches the cross-origin headers to every response, success or error.
// The surface is consumed by browser clients from arbitrary origins with
// credentialed requests, so the headers are set unconditionally rather than
// negotiated per origin.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Set("Access-Control-Allow-Credentials", "true")

		return c.Next()
	}
}
