package tweet

import (
	"errors"
	"strconv"

	"backend-chirp/internal/auth"
	"backend-chirp/internal/visibility"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/user/tweets/feed", authMiddleware, func(c *fiber.Ctx) error {
		feed, err := svc.Feed(c.Context(), auth.Username(c))
		if err != nil {
			return wireError(err)
		}
		return c.JSON(feed)
	})

	r.Get("/user/tweets", authMiddleware, func(c *fiber.Ctx) error {
		tweets, err := svc.OwnTweets(c.Context(), auth.Username(c))
		if err != nil {
			return wireError(err)
		}
		return c.JSON(tweets)
	})

	r.Post("/user/tweets", authMiddleware, func(c *fiber.Ctx) error {
		var req PublishRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := svc.Publish(c.Context(), auth.Username(c), req.Tweet); err != nil {
			return wireError(err)
		}
		return c.Status(fiber.StatusCreated).SendString("Created a Tweet")
	})

	r.Get("/tweets/:tweetId", authMiddleware, func(c *fiber.Ctx) error {
		tweetID, err := tweetIDParam(c)
		if err != nil {
			return err
		}
		stats, err := svc.Detail(c.Context(), auth.Username(c), tweetID)
		if err != nil {
			return wireError(err)
		}
		return c.JSON(stats)
	})

	r.Get("/tweets/:tweetId/likes", authMiddleware, func(c *fiber.Ctx) error {
		tweetID, err := tweetIDParam(c)
		if err != nil {
			return err
		}
		likers, err := svc.Likers(c.Context(), auth.Username(c), tweetID)
		if err != nil {
			return wireError(err)
		}
		return c.JSON(fiber.Map{"likes": likers})
	})

	r.Get("/tweets/:tweetId/replies", authMiddleware, func(c *fiber.Ctx) error {
		tweetID, err := tweetIDParam(c)
		if err != nil {
			return err
		}
		replies, err := svc.Replies(c.Context(), auth.Username(c), tweetID)
		if err != nil {
			return wireError(err)
		}
		return c.JSON(fiber.Map{"replies": replies})
	})

	r.Delete("/tweets/:tweetId", authMiddleware, func(c *fiber.Ctx) error {
		tweetID, err := tweetIDParam(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.Context(), auth.Username(c), tweetID); err != nil {
			return wireError(err)
		}
		return c.SendString("Tweet Removed")
	})
}

func tweetIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("tweetId"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid Request")
	}
	return id, nil
}

// wireError collapses the error taxonomy onto the legacy status codes:
// visibility and ownership failures share 401 with token failures, and every
// store error becomes a generic 500.
func wireError(err error) error {
	switch {
	case errors.Is(err, visibility.ErrUnknownUser):
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid JWT Token")
	case errors.Is(err, ErrNotVisible), errors.Is(err, ErrNotOwner):
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid Request")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
}
