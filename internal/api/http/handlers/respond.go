package handlers

import "github.com/gofiber/fiber/v2"

// respond writes the standard success envelope. Data is omitted when
// nil so message-only responses stay flat.
func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}
