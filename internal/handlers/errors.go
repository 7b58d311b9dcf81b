package handlers

import (
	"context"
	"errors"
	"log"

	"wardaropa-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the catch-all for errors no handler dealt with. Fiber
// errors keep their status; anything else becomes a bare 500 and the
// details stay in the server log.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("Error: %s %s: %v", c.Method(), c.Path(), err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(code).SendString(message)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// serverError logs err and answers with a generic message. A request that
// ran out of time waiting on the database is answered with 503.
func serverError(c *fiber.Ctx, err error, logContext, message string) error {
	utils.LogError(err, logContext)
	if errors.Is(err, context.DeadlineExceeded) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "service busy, try again later"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}
