package interfaces

import (
	"context"
	"time"

	"stock-sentiment-analyzer/internal/types"
)

// NewsCollector returns normalized articles for a symbol. Collectors are
// fail-soft: an error skips the source, it never aborts the run.
type NewsCollector interface {
	Name() string
	Fetch(ctx context.Context, symbol string, max int) ([]types.NewsItem, error)
}

// SentimentProvider returns opaque insider and analyst records.
type SentimentProvider interface {
	InsiderSentiment(ctx context.Context, symbol string, from, to time.Time) ([]types.SentimentRecord, error)
	InsiderTransactions(ctx context.Context, symbol string, from, to time.Time) ([]types.SentimentRecord, error)
	RecommendationTrends(ctx context.Context, symbol string) ([]types.SentimentRecord, error)
}
