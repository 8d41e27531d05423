package usecases

import (
	"context"

	"tweetsense/internal/domain"
)

// SentimentAnalyzer scores a plain-text document.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, doc string) (domain.Sentiment, error)
}

// AnalyzeSentimentUseCase forwards free text to the sentiment service.
// No identifier validation applies.
type AnalyzeSentimentUseCase struct {
	analyzer SentimentAnalyzer
}

// NewAnalyzeSentimentUseCase creates a new AnalyzeSentimentUseCase.
func NewAnalyzeSentimentUseCase(analyzer SentimentAnalyzer) *AnalyzeSentimentUseCase {
	return &AnalyzeSentimentUseCase{analyzer: analyzer}
}

// Execute returns ResponseOK with the sentiment or ResponseUnavailable.
func (uc *AnalyzeSentimentUseCase) Execute(ctx context.Context, doc string) domain.GatewayResponse {
	s, err := uc.analyzer.Analyze(ctx, doc)
	return NormalizeSentiment(s, err)
}
