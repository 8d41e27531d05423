package web

import (
	"strings"
	"time"

	"tweetsense/pkg/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// RequestIDConfig returns the configuration for Fiber's requestid middleware.
// Uses X-Request-ID header, generates a UUID if not present.
func RequestIDConfig() requestid.Config {
	return requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: "requestid",
	}
}

// CORSConfig allows the configured frontend origin. An empty clientURL
// allows any origin.
func CORSConfig(clientURL string) cors.Config {
	origin := strings.TrimRight(clientURL, "/")
	if origin == "" {
		origin = "*"
	}
	return cors.Config{
		AllowOrigins: origin,
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions}, ","),
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}
}

// RequestIDToContextMiddleware bridges Fiber's requestid to pkg/log context.
// Must be used AFTER requestid.New() middleware. The id is copied since a
// client-supplied header points into fiber's request buffer.
func RequestIDToContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			c.SetUserContext(log.WithRequestID(c.UserContext(), utils.CopyString(id)))
		}
		return c.Next()
	}
}

// RequestLoggerMiddleware logs HTTP requests in structured JSON format.
// Must be used AFTER RequestIDToContextMiddleware. Logged request values are
// copied because entries are written asynchronously.
func RequestLoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		ctx := c.UserContext()
		fields := []any{
			"method", c.Method(),
			"path", utils.CopyString(c.Path()),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.IP(),
			"user_agent", utils.CopyString(c.Get(fiber.HeaderUserAgent)),
		}
		if err != nil {
			fields = append(fields, "error", err.Error())
		}

		switch {
		case status >= 500:
			log.GlobalErrorCtx(ctx, "request completed", fields...)
		case status >= 400:
			log.GlobalWarnCtx(ctx, "request completed", fields...)
		default:
			log.GlobalInfoCtx(ctx, "request completed", fields...)
		}

		return err
	}
}
