package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	successfulRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "successful_request",
			Help: "Total number of successful (2xx) HTTP requests",
		},
		[]string{"path"},
	)
	badRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unsuccessful_request",
			Help: "Total number of unsuccessful (4xx/5xx) HTTP requests",
		},
		[]string{"path"},
	)
)

func init() {
	prometheus.MustRegister(successfulRequests, badRequests)
}

func countRequests() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		path := c.Route().Path
		if status < fiber.StatusBadRequest {
			successfulRequests.WithLabelValues(path).Inc()
		} else {
			badRequests.WithLabelValues(path).Inc()
		}
		return err
	}
}
