package domain

import "errors"

var (
	// ErrInvalidIdentifierLength is returned when a tweet ID is not exactly
	// TweetIDLength characters long. No upstream call is made.
	ErrInvalidIdentifierLength = errors.New("tweet id must be 19 characters")

	// ErrUpstreamUnreachable is returned when the tweet lookup service could
	// not be reached or its body could not be decoded.
	ErrUpstreamUnreachable = errors.New("tweet lookup service unreachable")

	// ErrAnalysisUnavailable is returned for any failure of the sentiment
	// service: auth, quota, malformed document or transport.
	ErrAnalysisUnavailable = errors.New("sentiment analysis unavailable")
)
