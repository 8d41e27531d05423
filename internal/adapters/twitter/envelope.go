package twitter

import (
	"encoding/json"
	"errors"
	"fmt"

	"tweetsense/internal/domain"
)

// maxDiagnosticBody caps how much of an unexpected body is echoed back
// in a failure's diagnostic.
const maxDiagnosticBody = 512

// lookupEnvelope covers every shape the plural lookup endpoint returns:
// {"data":[...]}, {"errors":[...]} and, for auth failures, a top-level
// problem object {"title","detail","status"}.
type lookupEnvelope struct {
	Data   []json.RawMessage `json:"data"`
	Errors []json.RawMessage `json:"errors"`
	Title  *string           `json:"title"`
	Detail *string           `json:"detail"`
}

type tweetRecord struct {
	ID   *string `json:"id"`
	Text *string `json:"text"`
}

type errorRecord struct {
	Title  *string `json:"title"`
	Detail *string `json:"detail"`
}

var (
	errNoVariant     = errors.New("lookup response has neither data nor errors")
	errMissingID     = errors.New("tweet record has no id")
	errMissingText   = errors.New("tweet record has no text")
	errMissingTitle  = errors.New("error record has no title")
	errMissingDetail = errors.New("error record has no detail")
)

// parseLookup turns a lookup response body into a result. It only returns
// an error, wrapping domain.ErrUpstreamUnreachable, when body is not JSON.
// Every other problem becomes a failure result.
func parseLookup(status int, body []byte) (domain.TweetLookupResult, error) {
	if !json.Valid(body) {
		return domain.TweetLookupResult{}, fmt.Errorf("%w: undecodable body (status %d)", domain.ErrUpstreamUnreachable, status)
	}

	result, err := extract(body)
	if err != nil {
		return domain.TweetLookupFailed(domain.LookupFailure{
			Message: err.Error(),
			Error:   diagnostic(err, status, body),
		}), nil
	}
	return result, nil
}

func extract(body []byte) (domain.TweetLookupResult, error) {
	var env lookupEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.TweetLookupResult{}, fmt.Errorf("decode lookup envelope: %w", err)
	}

	// Only one id is ever requested, so data[0] is the canonical record.
	if len(env.Data) > 0 {
		var rec tweetRecord
		if err := json.Unmarshal(env.Data[0], &rec); err != nil {
			return domain.TweetLookupResult{}, fmt.Errorf("decode tweet record: %w", err)
		}
		switch {
		case rec.ID == nil:
			return domain.TweetLookupResult{}, errMissingID
		case rec.Text == nil:
			return domain.TweetLookupResult{}, errMissingText
		}
		return domain.TweetFound(domain.Tweet{ID: *rec.ID, Text: *rec.Text}), nil
	}

	if len(env.Errors) > 0 {
		var rec errorRecord
		if err := json.Unmarshal(env.Errors[0], &rec); err != nil {
			return domain.TweetLookupResult{}, fmt.Errorf("decode error record: %w", err)
		}
		return failureFrom(rec)
	}

	if env.Title != nil {
		return failureFrom(errorRecord{Title: env.Title, Detail: env.Detail})
	}

	return domain.TweetLookupResult{}, errNoVariant
}

func failureFrom(rec errorRecord) (domain.TweetLookupResult, error) {
	switch {
	case rec.Title == nil:
		return domain.TweetLookupResult{}, errMissingTitle
	case rec.Detail == nil:
		return domain.TweetLookupResult{}, errMissingDetail
	}
	return domain.TweetLookupFailed(domain.LookupFailure{
		Message: *rec.Title,
		Error:   *rec.Detail,
	}), nil
}

func diagnostic(err error, status int, body []byte) string {
	if len(body) > maxDiagnosticBody {
		body = append(append([]byte{}, body[:maxDiagnosticBody]...), "..."...)
	}
	return fmt.Sprintf("%v (upstream status %d, body %s)", err, status, body)
}
