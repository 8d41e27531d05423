package web

import (
	"encoding/json"
	"net/url"

	"tweetsense/internal/domain"
	"tweetsense/internal/usecases"
	"tweetsense/pkg/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Handlers contains the HTTP handlers for the gateway.
type Handlers struct {
	analyzeTweet     *usecases.AnalyzeTweetUseCase
	analyzeSentiment *usecases.AnalyzeSentimentUseCase
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(analyzeTweet *usecases.AnalyzeTweetUseCase, analyzeSentiment *usecases.AnalyzeSentimentUseCase) *Handlers {
	return &Handlers{
		analyzeTweet:     analyzeTweet,
		analyzeSentiment: analyzeSentiment,
	}
}

// sentimentRequest is the body of POST /google/analyze.
type sentimentRequest struct {
	Doc string `json:"doc"`
}

var invalidBody = domain.ErrorBody{
	Error:   "Invalid body.",
	Message: "Body must be a JSON object with a doc field.",
}

// statusFor maps each response kind to its single HTTP status.
func statusFor(kind domain.ResponseKind) int {
	switch kind {
	case domain.ResponseOK:
		return fiber.StatusOK
	case domain.ResponseUnavailable:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}

// respond writes a gateway response. String payloads go out as plain text.
func respond(c *fiber.Ctx, resp domain.GatewayResponse) error {
	c.Status(statusFor(resp.Kind))
	if text, ok := resp.Payload.(string); ok {
		return c.SendString(text)
	}
	return c.JSON(resp.Payload)
}

// AnalyzeTweet resolves the tweet named by the :id path segment.
// Any request body is ignored.
func (h *Handlers) AnalyzeTweet(c *fiber.Ctx) error {
	resp := h.analyzeTweet.Execute(c.UserContext(), tweetIDParam(c))
	return respond(c, resp)
}

// tweetIDParam returns the percent-decoded :id segment as an owned string.
// A malformed escape is passed through as received.
func tweetIDParam(c *fiber.Ctx) string {
	raw := utils.CopyString(c.Params("id"))
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

// AnalyzeSentiment scores the doc field of a JSON body. An empty body is
// treated as an empty document.
func (h *Handlers) AnalyzeSentiment(c *fiber.Ctx) error {
	var req sentimentRequest
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			log.GlobalDebugCtx(c.UserContext(), "invalid sentiment body", "error", err)
			return c.Status(fiber.StatusBadRequest).JSON(invalidBody)
		}
	}

	resp := h.analyzeSentiment.Execute(c.UserContext(), req.Doc)
	return respond(c, resp)
}

// Health reports that the process is serving.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
