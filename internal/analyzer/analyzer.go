package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/runlog"
	"stock-sentiment-analyzer/internal/store"
	"stock-sentiment-analyzer/internal/types"
)

// ErrEngineNotConfigured is returned before any prompt is composed when no
// completion engine has a usable credential. Callers must check for it
// instead of expecting a Recommendation.
var ErrEngineNotConfigured = errors.New("no AI engine configured")

// Service runs the sequential analysis pipeline: collect, compose, complete,
// extract. Collectors are fail-soft; only a missing engine aborts a run.
type Service struct {
	cfg        *store.Config
	engine     interfaces.Engine
	collectors []interfaces.NewsCollector
	sentiment  interfaces.SentimentProvider
	runLog     *runlog.Logger
}

func NewService(cfg *store.Config, engine interfaces.Engine, collectors []interfaces.NewsCollector, sentiment interfaces.SentimentProvider, runLog *runlog.Logger) *Service {
	return &Service{
		cfg:        cfg,
		engine:     engine,
		collectors: collectors,
		sentiment:  sentiment,
		runLog:     runLog,
	}
}

// Analyze runs one full pipeline for the symbol. Every failure past the
// engine check degrades into the returned Analysis rather than an error.
func (s *Service) Analyze(ctx context.Context, symbol string) (types.Analysis, error) {
	if s.engine == nil || !s.engine.Configured() {
		return types.Analysis{}, ErrEngineNotConfigured
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	ctx, span := logger.StartSpan(ctx, "analyze-symbol")
	defer span.End()

	analysis := types.Analysis{Symbol: symbol}

	for _, c := range s.collectors {
		items, err := c.Fetch(ctx, symbol, s.cfg.News.MaxArticles)
		if err != nil {
			logger.Warn(ctx, "News source skipped", "source", c.Name(), "symbol", symbol, "reason", err.Error())
			analysis.Sources = append(analysis.Sources, types.SourceStatus{
				Source: c.Name(), OK: false, Message: err.Error(),
			})
			continue
		}
		analysis.Articles = append(analysis.Articles, items...)
		analysis.Sources = append(analysis.Sources, types.SourceStatus{
			Source: c.Name(), OK: true, Count: len(items),
		})
	}

	s.collectSentiment(ctx, symbol, &analysis)

	prompt := Compose(symbol, analysis.Articles, analysis.Insider, analysis.Transactions, analysis.Trends)
	logger.Debug(ctx, "Prompt composed", "symbol", symbol, "length", len(prompt))

	reply, err := s.engine.Complete(ctx, prompt, s.cfg.LLM.MaxTokens)
	if err != nil {
		logger.ErrorWithErr(ctx, "Completion call failed", err, "symbol", symbol)
		analysis.Recommendation = ErrorRecommendation(err)
	} else {
		analysis.Recommendation = Extract(reply)
	}

	rec := analysis.Recommendation
	logger.Signal(ctx, symbol, rec.Signal, rec.Confidence, rec.Summary, "articles", len(analysis.Articles))
	s.appendRunLog(ctx, analysis)

	return analysis, nil
}

func (s *Service) collectSentiment(ctx context.Context, symbol string, analysis *types.Analysis) {
	if s.sentiment == nil {
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -s.cfg.Finnhub.LookbackDays)

	insider, err := s.sentiment.InsiderSentiment(ctx, symbol, from, to)
	if err != nil {
		logger.Warn(ctx, "Insider sentiment skipped", "symbol", symbol, "reason", err.Error())
		analysis.Sources = append(analysis.Sources, types.SourceStatus{
			Source: "Finnhub insider sentiment", OK: false, Message: err.Error(),
		})
	} else {
		analysis.Insider = insider
		analysis.Sources = append(analysis.Sources, types.SourceStatus{
			Source: "Finnhub insider sentiment", OK: true, Count: len(insider),
		})
	}

	transactions, err := s.sentiment.InsiderTransactions(ctx, symbol, from, to)
	if err != nil {
		logger.Warn(ctx, "Insider transactions skipped", "symbol", symbol, "reason", err.Error())
		analysis.Sources = append(analysis.Sources, types.SourceStatus{
			Source: "Finnhub insider transactions", OK: false, Message: err.Error(),
		})
	} else {
		analysis.Transactions = transactions
		analysis.Sources = append(analysis.Sources, types.SourceStatus{
			Source: "Finnhub insider transactions", OK: true, Count: len(transactions),
		})
	}

	trends, err := s.sentiment.RecommendationTrends(ctx, symbol)
	if err != nil {
		logger.Warn(ctx, "Recommendation trends skipped", "symbol", symbol, "reason", err.Error())
		analysis.Sources = append(analysis.Sources, types.SourceStatus{
			Source: "Finnhub recommendation trends", OK: false, Message: err.Error(),
		})
	} else {
		analysis.Trends = trends
		analysis.Sources = append(analysis.Sources, types.SourceStatus{
			Source: "Finnhub recommendation trends", OK: true, Count: len(trends),
		})
	}
}

func (s *Service) appendRunLog(ctx context.Context, analysis types.Analysis) {
	if s.runLog == nil {
		return
	}
	sources := make([]string, 0, len(analysis.Sources))
	for _, st := range analysis.Sources {
		if st.OK {
			sources = append(sources, fmt.Sprintf("%s:%d", st.Source, st.Count))
		} else {
			sources = append(sources, st.Source+":failed")
		}
	}
	err := s.runLog.Append(runlog.Entry{
		Symbol:     analysis.Symbol,
		Signal:     analysis.Recommendation.Signal,
		Confidence: analysis.Recommendation.Confidence,
		Summary:    analysis.Recommendation.Summary,
		Articles:   len(analysis.Articles),
		Sources:    sources,
	})
	if err != nil {
		logger.Warn(ctx, "Run log append failed", "reason", err.Error())
	}
}
