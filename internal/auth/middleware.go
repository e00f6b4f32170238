package auth

import "github.com/gofiber/fiber/v2"

// JWTMiddleware validates the token and stores the username in locals.
// The authorization header carries the raw token with no scheme prefix;
// legacy clients send it exactly that way.
func JWTMiddleware(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid JWT Token")
		}

		claims, err := parseToken(token, secretBytes)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid JWT Token")
		}

		c.Locals("username", claims.Username)
		return c.Next()
	}
}

// Username returns the authenticated identity set by JWTMiddleware.
func Username(c *fiber.Ctx) string {
	if v, ok := c.Locals("username").(string); ok {
		return v
	}
	return ""
}
