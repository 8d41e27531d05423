package web

import (
	"github.com/gofiber/fiber/v2"
)

// AppConfig is the fiber configuration the server runs with.
// Immutable is required: request values end up in log entries that are
// written after the handler returns, when fiber has reused its buffers.
func AppConfig() fiber.Config {
	return fiber.Config{
		AppName:               "tweetsense",
		DisableStartupMessage: true,
		Immutable:             true,
	}
}
