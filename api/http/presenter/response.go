package presenter

import "github.com/gofiber/fiber/v2"

// Response is the envelope every endpoint answers with: a success flag plus
// a human-readable message or a data payload.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Success(c *fiber.Ctx, message string) error {
	return JSON(c, fiber.StatusOK, Response{Success: true, Message: message})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, Response{Success: false, Message: message})
}
