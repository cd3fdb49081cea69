package handlers

import (
	"strings"

	"bookcourier/internal/identity"
	applog "bookcourier/internal/log"
	"bookcourier/internal/repos"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth extracts the bearer credential, verifies it, and attaches the
// verified email to the request context. Missing and invalid credentials
// fail the same way; callers learn nothing about why.
func RequireAuth(v identity.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			applog.Security(c, "auth.missing", nil)
			return jsonError(c, fiber.StatusUnauthorized, "Unauthorized Access!")
		}
		email, err := v.Verify(c.Context(), token)
		if err != nil {
			applog.Security(c, "auth.reject", nil)
			return jsonError(c, fiber.StatusUnauthorized, "Unauthorized Access!")
		}
		c.Locals("email", email)
		return c.Next()
	}
}

// RequireRole loads the caller's stored role on every request and compares
// it against the route's requirement. The stored role is the source of
// truth; no claim from the token is trusted for authorization.
func RequireRole(users *repos.UserRepo, role string) fiber.Handler {
	msg := map[string]string{
		"admin":  "Admin only Actions!",
		"seller": "Seller only Actions!",
	}[role]
	return func(c *fiber.Ctx) error {
		email := tokenEmail(c)
		u, err := users.ByEmail(email)
		if err != nil {
			applog.Error(c, "authz.lookup.fail", err, nil)
			return jsonError(c, fiber.StatusInternalServerError, "Something went wrong")
		}
		actual := ""
		if u != nil {
			actual = u.Role
		}
		if actual != role {
			applog.Security(c, "access.denied."+role, map[string]any{"role": actual})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": msg, "role": actual})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
