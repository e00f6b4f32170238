package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/register", func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}

		switch err := svc.Register(c.Context(), req); {
		case err == nil:
			return c.SendString("User created successfully")
		case errors.Is(err, ErrUserExists):
			return fiber.NewError(fiber.StatusBadRequest, "User already exists")
		case errors.Is(err, ErrShortPassword):
			return fiber.NewError(fiber.StatusBadRequest, "Password is too short")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}

		resp, err := svc.Login(c.Context(), req)
		switch {
		case err == nil:
			return c.JSON(resp)
		case errors.Is(err, ErrUnknownUser):
			// Unknown user and wrong password stay distinguishable; legacy
			// clients key off the exact messages.
			return fiber.NewError(fiber.StatusBadRequest, "Invalid user")
		case errors.Is(err, ErrWrongPassword):
			return fiber.NewError(fiber.StatusBadRequest, "Invalid password")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
	})
}
