package social

import (
	"errors"

	"backend-chirp/internal/auth"
	"backend-chirp/internal/visibility"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/user/following", authMiddleware, func(c *fiber.Ctx) error {
		names, err := svc.Following(c.Context(), auth.Username(c))
		if err != nil {
			return wireError(err)
		}
		return c.JSON(names)
	})

	r.Get("/user/followers", authMiddleware, func(c *fiber.Ctx) error {
		names, err := svc.Followers(c.Context(), auth.Username(c))
		if err != nil {
			return wireError(err)
		}
		return c.JSON(names)
	})
}

func wireError(err error) error {
	if errors.Is(err, visibility.ErrUnknownUser) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid JWT Token")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
}
