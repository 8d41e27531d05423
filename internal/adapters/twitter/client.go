// Package twitter resolves tweet IDs through the upstream v2 lookup API.
package twitter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"

	"tweetsense/internal/config"
	"tweetsense/internal/domain"
	"tweetsense/pkg/log"
)

// lookupPath is the plural lookup endpoint. The single-tweet endpoint
// returns a different envelope and is not used.
const lookupPath = "/2/tweets"

// maxBodyBytes bounds how much of a lookup response is read.
const maxBodyBytes = 1 << 20

// Client calls the tweet lookup API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a lookup client from startup configuration.
// Requests carry the bearer token, each attempt is bounded by cfg.Timeout()
// and failed attempts are retried at most cfg.MaxRetries times.
func NewClient(cfg config.TwitterConfig) *Client {
	tokens := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.BearerToken,
		TokenType:   "Bearer",
	})
	authed := oauth2.NewClient(context.Background(), tokens)
	authed.Timeout = cfg.Timeout()

	rc := retryablehttp.NewClient()
	rc.HTTPClient = authed
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = log.Default().With("component", "twitter")
	rc.ErrorHandler = keepLastResponse

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    rc.StandardClient(),
	}
}

// keepLastResponse hands the final response to the parser even when the
// retry policy flagged its status; the error variant lives in the body.
// Only a missing response is a transport fault.
func keepLastResponse(resp *http.Response, err error, _ int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, err
}

// Resolve looks up a single tweet. The returned error is non-nil only for
// transport faults and wraps domain.ErrUpstreamUnreachable; an upstream
// "not found" is a failure result, not an error.
func (c *Client) Resolve(ctx context.Context, id domain.TweetID) (domain.TweetLookupResult, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.lookupURL(id), nil)
	if err != nil {
		return domain.TweetLookupResult{}, fmt.Errorf("%w: build request: %v", domain.ErrUpstreamUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.TweetLookupResult{}, fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.TweetLookupResult{}, fmt.Errorf("%w: read body: %v", domain.ErrUpstreamUnreachable, err)
	}

	result, err := parseLookup(resp.StatusCode, body)
	log.GlobalDebugCtx(ctx, "tweet lookup completed",
		"tweet_id", id.String(),
		"status", resp.StatusCode,
		"found", err == nil && !result.IsErr(),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return result, err
}

// lookupURL addresses the plural endpoint with a comma-separated id list.
func (c *Client) lookupURL(ids ...domain.TweetID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	q := url.Values{}
	q.Set("ids", strings.Join(parts, ","))
	return c.baseURL + lookupPath + "?" + q.Encode()
}
