// Package language scores document sentiment with Google Cloud Natural Language.
package language

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	langapi "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"tweetsense/internal/config"
	"tweetsense/internal/domain"
	"tweetsense/pkg/log"
)

// sentimentAPI is the part of *langapi.Client the gateway uses.
type sentimentAPI interface {
	AnalyzeSentiment(ctx context.Context, req *languagepb.AnalyzeSentimentRequest, opts ...gax.CallOption) (*languagepb.AnalyzeSentimentResponse, error)
}

var errNoDocumentSentiment = errors.New("response has no document sentiment")

// Client analyzes plain-text documents. It is safe for concurrent use.
type Client struct {
	api     sentimentAPI
	timeout time.Duration
	close   func() error
}

// NewClient decodes the base64 service-account JSON from cfg and dials the API.
func NewClient(ctx context.Context, cfg config.LanguageConfig) (*Client, error) {
	creds, err := base64.StdEncoding.DecodeString(cfg.CredentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("decode language credentials: %w", err)
	}

	lc, err := langapi.NewClient(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("create language client: %w", err)
	}

	return &Client{api: lc, timeout: cfg.Timeout(), close: lc.Close}, nil
}

// newClientWithAPI is used by tests to substitute the API.
func newClientWithAPI(api sentimentAPI, timeout time.Duration) *Client {
	return &Client{api: api, timeout: timeout}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}

// Analyze returns the document-level sentiment of doc. Any failure wraps
// domain.ErrAnalysisUnavailable; the upstream cause is logged, not returned
// to callers of the gateway.
func (c *Client) Analyze(ctx context.Context, doc string) (domain.Sentiment, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := &languagepb.AnalyzeSentimentRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: doc,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := c.api.AnalyzeSentiment(ctx, req)
	if err != nil {
		log.GlobalWarnCtx(ctx, "sentiment analysis failed", "error", err, "doc_length", len(doc))
		return domain.Sentiment{}, fmt.Errorf("%w: %v", domain.ErrAnalysisUnavailable, err)
	}

	ds := resp.GetDocumentSentiment()
	if ds == nil {
		log.GlobalWarnCtx(ctx, "sentiment analysis failed", "error", errNoDocumentSentiment)
		return domain.Sentiment{}, fmt.Errorf("%w: %v", domain.ErrAnalysisUnavailable, errNoDocumentSentiment)
	}

	return domain.Sentiment{
		Score:     ds.GetScore(),
		Magnitude: ds.GetMagnitude(),
	}, nil
}
