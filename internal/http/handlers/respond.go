package handlers

import "github.com/gofiber/fiber/v2"

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// tokenEmail returns the verified email RequireAuth attached.
func tokenEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}
