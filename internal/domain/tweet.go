// Package domain contains the core entities shared by the gateway layers.
package domain

import (
	"encoding/json"
	"unicode/utf8"
)

// TweetIDLength is the only identifier length the gateway accepts.
const TweetIDLength = 19

// TweetID is an identifier that passed ParseTweetID.
type TweetID string

// ParseTweetID checks the shape of a caller-supplied identifier.
// Only the length in characters is checked; the upstream may still reject
// the value.
func ParseTweetID(raw string) (TweetID, error) {
	if utf8.RuneCountInString(raw) != TweetIDLength {
		return "", ErrInvalidIdentifierLength
	}
	return TweetID(raw), nil
}

// String returns the identifier as received.
func (id TweetID) String() string {
	return string(id)
}

// Tweet is the part of an upstream tweet record the gateway exposes.
type Tweet struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// LookupFailure describes why a lookup produced no tweet.
type LookupFailure struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// TweetLookupResult is either a Tweet or a LookupFailure, never both.
// The zero value is a failure with empty fields.
type TweetLookupResult struct {
	tweet   *Tweet
	failure LookupFailure
}

// TweetFound builds a successful lookup result.
func TweetFound(t Tweet) TweetLookupResult {
	return TweetLookupResult{tweet: &t}
}

// TweetLookupFailed builds a failed lookup result.
func TweetLookupFailed(f LookupFailure) TweetLookupResult {
	return TweetLookupResult{failure: f}
}

// IsErr reports whether the result carries a failure.
func (r TweetLookupResult) IsErr() bool {
	return r.tweet == nil
}

// Tweet returns the tweet and true on success.
func (r TweetLookupResult) Tweet() (Tweet, bool) {
	if r.tweet == nil {
		return Tweet{}, false
	}
	return *r.tweet, true
}

// Failure returns the failure and true when the lookup failed.
func (r TweetLookupResult) Failure() (LookupFailure, bool) {
	if r.tweet != nil {
		return LookupFailure{}, false
	}
	return r.failure, true
}

// MarshalJSON writes {"id","text"} on success and {"message","error"} on failure.
func (r TweetLookupResult) MarshalJSON() ([]byte, error) {
	if r.tweet != nil {
		return json.Marshal(r.tweet)
	}
	return json.Marshal(r.failure)
}

// Sentiment is the document-level sentiment summary.
type Sentiment struct {
	Score     float32 `json:"score"`
	Magnitude float32 `json:"magnitude"`
}
