package usecases

import (
	"tweetsense/internal/domain"
)

// Client-visible texts for gateway-generated rejections.
const (
	invalidIDError   = "Invalid ID."
	invalidIDMessage = "ID must be a 19-character long Tweet ID."

	unreachableError   = "Upstream unavailable."
	unreachableMessage = "Could not reach the tweet lookup service."

	// AnalysisUnavailableText is the plain-text body of a failed sentiment request.
	AnalysisUnavailableText = "Unable to analyze document."
)

// Classification is the normalizer's verdict on a lookup result.
// Payload is the result unmodified, so classifying it again gives the same answer.
type Classification struct {
	IsError bool
	Payload domain.TweetLookupResult
}

// Classify decides success or error from the result's tag alone; it never
// looks at which upstream variant produced the result.
func Classify(r domain.TweetLookupResult) Classification {
	return Classification{IsError: r.IsErr(), Payload: r}
}

// NormalizeLookup turns a classified lookup into a gateway response.
// Every upstream failure reason shares the rejected kind.
func NormalizeLookup(c Classification) domain.GatewayResponse {
	if c.IsError {
		return domain.GatewayResponse{Kind: domain.ResponseRejected, Payload: c.Payload}
	}
	return domain.GatewayResponse{Kind: domain.ResponseOK, Payload: c.Payload}
}

// NormalizeValidation is the response for an identifier that failed
// domain.ParseTweetID.
func NormalizeValidation() domain.GatewayResponse {
	return domain.GatewayResponse{
		Kind:    domain.ResponseRejected,
		Payload: domain.ErrorBody{Error: invalidIDError, Message: invalidIDMessage},
	}
}

// NormalizeTransportFault is the response when the lookup service could
// not be reached. The underlying cause is not exposed.
func NormalizeTransportFault() domain.GatewayResponse {
	return domain.GatewayResponse{
		Kind:    domain.ResponseRejected,
		Payload: domain.ErrorBody{Error: unreachableError, Message: unreachableMessage},
	}
}

// NormalizeSentiment collapses every analysis failure into one
// unavailable response with a plain-text body.
func NormalizeSentiment(s domain.Sentiment, err error) domain.GatewayResponse {
	if err != nil {
		return domain.GatewayResponse{Kind: domain.ResponseUnavailable, Payload: AnalysisUnavailableText}
	}
	return domain.GatewayResponse{Kind: domain.ResponseOK, Payload: s}
}
