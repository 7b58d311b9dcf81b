package handlers

import (
	"errors"

	"wardaropa-backend/internal/models"
	"wardaropa-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RegisterHandler creates a user from username, email and password.
func RegisterHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request")
		}
		if req.Username == "" || req.Email == "" || req.Password == "" {
			return badRequest(c, "username, email and password are required")
		}

		id, err := userService.Register(c.UserContext(), req)
		if err != nil {
			if errors.Is(err, services.ErrUserExists) {
				return badRequest(c, "username or email already exists")
			}
			return serverError(c, err, "Register", "failed to register user")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "user registered",
			"userId":  id,
		})
	}
}

// LoginHandler checks credentials. It returns the user's identity only;
// no token is issued.
func LoginHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request")
		}
		if req.Username == "" || req.Password == "" {
			return badRequest(c, "username and password are required")
		}

		user, err := userService.Login(c.UserContext(), req)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
			}
			return serverError(c, err, "Login", "failed to log in")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "login successful",
			"user":    user,
		})
	}
}
