package usecases

import (
	"context"

	"tweetsense/internal/domain"
	"tweetsense/pkg/log"
)

// TweetResolver resolves one identifier through the upstream lookup API.
// A non-nil error means the upstream was unreachable.
type TweetResolver interface {
	Resolve(ctx context.Context, id domain.TweetID) (domain.TweetLookupResult, error)
}

// AnalyzeTweetUseCase validates an identifier, resolves it and normalizes
// the outcome.
type AnalyzeTweetUseCase struct {
	resolver TweetResolver
}

// NewAnalyzeTweetUseCase creates a new AnalyzeTweetUseCase.
func NewAnalyzeTweetUseCase(resolver TweetResolver) *AnalyzeTweetUseCase {
	return &AnalyzeTweetUseCase{resolver: resolver}
}

// Execute never returns an error: every failure is a rejected response.
// An invalid identifier short-circuits before any upstream call.
func (uc *AnalyzeTweetUseCase) Execute(ctx context.Context, rawID string) domain.GatewayResponse {
	ctx = log.WithFields(ctx, "tweet_id", rawID)

	resp := uc.execute(ctx, rawID)
	if resp.IsError() {
		log.GlobalInfoCtx(ctx, "tweet analysis rejected", "kind", resp.Kind.String())
	}
	return resp
}

func (uc *AnalyzeTweetUseCase) execute(ctx context.Context, rawID string) domain.GatewayResponse {
	id, err := domain.ParseTweetID(rawID)
	if err != nil {
		log.GlobalDebugCtx(ctx, "rejected tweet id", "length", len(rawID))
		return NormalizeValidation()
	}

	result, err := uc.resolver.Resolve(ctx, id)
	if err != nil {
		log.GlobalErrorCtx(ctx, "tweet lookup unreachable", "error", err)
		return NormalizeTransportFault()
	}

	c := Classify(result)
	if failure, failed := result.Failure(); failed {
		log.GlobalDebugCtx(ctx, "tweet lookup failed upstream", "upstream_message", failure.Message)
	}
	return NormalizeLookup(c)
}
