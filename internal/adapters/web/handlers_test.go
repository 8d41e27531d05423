package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"tweetsense/internal/adapters/twitter"
	"tweetsense/internal/adapters/web"
	"tweetsense/internal/config"
	"tweetsense/internal/domain"
	"tweetsense/internal/usecases"
	"tweetsense/test/fixtures"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookupStub serves one canned lookup body and counts calls.
type lookupStub struct {
	status int
	body   string
	calls  atomic.Int32
	ids    atomic.Value
}

func (s *lookupStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.calls.Add(1)
	s.ids.Store(r.URL.Query().Get("ids"))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	io.WriteString(w, s.body)
}

// stubAnalyzer is a SentimentAnalyzer with a fixed outcome.
type stubAnalyzer struct {
	sentiment domain.Sentiment
	err       error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, doc string) (domain.Sentiment, error) {
	return s.sentiment, s.err
}

func newGateway(t *testing.T, stub *lookupStub, analyzer usecases.SentimentAnalyzer) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	resolver := twitter.NewClient(config.TwitterConfig{
		BaseURL:        srv.URL,
		BearerToken:    "test-token",
		TimeoutSeconds: 2,
	})
	handlers := web.NewHandlers(
		usecases.NewAnalyzeTweetUseCase(resolver),
		usecases.NewAnalyzeSentimentUseCase(analyzer),
	)

	app := fiber.New(web.AppConfig())
	web.SetupRoutes(app, handlers)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, string, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(data)
}

func TestAnalyzeTweet_Found_Returns200WithTweet(t *testing.T) {
	// Arrange
	stub := &lookupStub{status: http.StatusOK, body: fixtures.LookupFound(fixtures.ExistingTweetID, "hello")}
	app := newGateway(t, stub, &stubAnalyzer{})

	// Act
	status, _, body := doRequest(t, app, "POST", "/analyze/"+fixtures.ExistingTweetID, "")

	// Assert
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"id":"1234567890123456789","text":"hello"}`, body)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestAnalyzeTweet_ShortID_Returns400WithoutUpstreamCall(t *testing.T) {
	// Arrange
	stub := &lookupStub{status: http.StatusOK, body: fixtures.LookupFound(fixtures.ExistingTweetID, "hello")}
	app := newGateway(t, stub, &stubAnalyzer{})

	// Act
	status, _, body := doRequest(t, app, "POST", "/analyze/short", "")

	// Assert
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Invalid ID.","message":"ID must be a 19-character long Tweet ID."}`, body)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestAnalyzeTweet_EmptyID_Returns400WithoutUpstreamCall(t *testing.T) {
	stub := &lookupStub{status: http.StatusOK, body: fixtures.LookupEmpty()}
	app := newGateway(t, stub, &stubAnalyzer{})

	status, _, _ := doRequest(t, app, "POST", "/analyze/", "")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestAnalyzeTweet_EncodedID_IsDecodedBeforeValidation(t *testing.T) {
	testCases := []struct {
		name    string
		path    string
		decoded string
	}{
		{
			name:    "percent-encoded digit",
			path:    "/analyze/123456789012345678%39",
			decoded: fixtures.ExistingTweetID,
		},
		{
			name:    "nineteen non-ASCII characters",
			path:    "/analyze/" + strings.Repeat("%C3%A9", 19),
			decoded: strings.Repeat("é", 19),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			stub := &lookupStub{status: http.StatusOK, body: fixtures.LookupFound(tc.decoded, "hello")}
			app := newGateway(t, stub, &stubAnalyzer{})

			// Act
			status, _, _ := doRequest(t, app, "POST", tc.path, "")

			// Assert
			assert.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, int32(1), stub.calls.Load())
			assert.Equal(t, tc.decoded, stub.ids.Load())
		})
	}
}

func TestAnalyzeTweet_EncodedShortID_Returns400WithoutUpstreamCall(t *testing.T) {
	stub := &lookupStub{status: http.StatusOK, body: fixtures.LookupEmpty()}
	app := newGateway(t, stub, &stubAnalyzer{})

	// 19 bytes on the wire, 17 characters once decoded.
	status, _, _ := doRequest(t, app, "POST", "/analyze/1234567890123456%37", "")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestAnalyzeTweet_NotFound_Returns400WithUpstreamReason(t *testing.T) {
	// Arrange
	stub := &lookupStub{status: http.StatusOK, body: fixtures.LookupNotFound(fixtures.MissingTweetID)}
	app := newGateway(t, stub, &stubAnalyzer{})

	// Act
	status, _, body := doRequest(t, app, "POST", "/analyze/"+fixtures.MissingTweetID, "")

	// Assert
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"Not Found Error","error":"Could not find tweet with ids: [0000000000000000000]."}`, body)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestAnalyzeTweet_UpstreamUnauthorized_Returns400(t *testing.T) {
	stub := &lookupStub{status: http.StatusUnauthorized, body: fixtures.LookupUnauthorized()}
	app := newGateway(t, stub, &stubAnalyzer{})

	status, _, body := doRequest(t, app, "POST", "/analyze/"+fixtures.ExistingTweetID, "")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"Unauthorized","error":"Unauthorized"}`, body)
}

func TestAnalyzeTweet_UpstreamNotJSON_Returns400Unreachable(t *testing.T) {
	stub := &lookupStub{status: http.StatusBadGateway, body: fixtures.LookupNotJSON()}
	app := newGateway(t, stub, &stubAnalyzer{})

	status, _, body := doRequest(t, app, "POST", "/analyze/"+fixtures.ExistingTweetID, "")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Upstream unavailable.","message":"Could not reach the tweet lookup service."}`, body)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestAnalyzeTweet_MalformedRecord_Returns400WithDiagnostic(t *testing.T) {
	stub := &lookupStub{status: http.StatusOK, body: fixtures.LookupMalformedRecord()}
	app := newGateway(t, stub, &stubAnalyzer{})

	status, _, body := doRequest(t, app, "POST", "/analyze/"+fixtures.ExistingTweetID, "")

	assert.Equal(t, fiber.StatusBadRequest, status)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.NotEmpty(t, got["message"])
	assert.NotEmpty(t, got["error"])
}

func TestAnalyzeSentiment_Success_Returns200(t *testing.T) {
	// Arrange
	stub := &lookupStub{status: http.StatusOK}
	app := newGateway(t, stub, &stubAnalyzer{sentiment: domain.Sentiment{Score: 0.8, Magnitude: 0.9}})

	// Act
	status, _, body := doRequest(t, app, "POST", "/google/analyze", fixtures.SentimentRequest("I love this"))

	// Assert
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"score":0.8,"magnitude":0.9}`, body)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestAnalyzeSentiment_Failure_Returns401PlainText(t *testing.T) {
	stub := &lookupStub{status: http.StatusOK}
	app := newGateway(t, stub, &stubAnalyzer{err: errors.New("permission denied")})

	status, contentType, body := doRequest(t, app, "POST", "/google/analyze", fixtures.SentimentRequest("text"))

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Unable to analyze document.", body)
	assert.True(t, strings.HasPrefix(contentType, "text/plain"), "content type %q", contentType)
}

func TestAnalyzeSentiment_InvalidJSON_Returns400(t *testing.T) {
	stub := &lookupStub{status: http.StatusOK}
	app := newGateway(t, stub, &stubAnalyzer{})

	status, _, body := doRequest(t, app, "POST", "/google/analyze", "{not json")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Invalid body.","message":"Body must be a JSON object with a doc field."}`, body)
}

func TestHealth_ReturnsOK(t *testing.T) {
	app := newGateway(t, &lookupStub{status: http.StatusOK}, &stubAnalyzer{})

	status, _, body := doRequest(t, app, "GET", "/healthz", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}
