// Package middleware contains HTTP middlewares for delivery.
package middleware

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every request with its outcome; server errors are
// logged at error level so they stand out in the stream.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		reqID, _ := c.Locals("requestid").(string)
		if reqID == "" {
			reqID = c.Get(fiber.HeaderXRequestID)
		}

		status := c.Response().StatusCode()
		fields := []any{
			"request_id", reqID,
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", status,
			"elapsed_ms", float64(time.Since(start).Microseconds()) / 1000.0,
		}
		if status >= http.StatusInternalServerError {
			log.Errorw("request failed", fields...)
		} else {
			log.Infow("request handled", fields...)
		}
		return err
	}
}
