package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// RateLimiter limits each client IP to max requests per sliding window.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if max == 0 {
		max = 60
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return failure(c, fiber.StatusTooManyRequests, "too many requests", nil)
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

// RequestLogger logs one line per request through zap.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		switch status := c.Response().StatusCode(); {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return nil
	}
}
