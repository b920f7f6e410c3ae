// Package finnhub retrieves insider-sentiment and analyst-recommendation
// records. Responses are passed through as opaque records; the prompt
// composer and the UI decide how to show them.
package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"stock-sentiment-analyzer/internal/keys"
	"stock-sentiment-analyzer/internal/store"
	"stock-sentiment-analyzer/internal/types"
)

type Client struct {
	client *resty.Client
	key    *keys.Key
}

func NewClient(cfg *store.Config, key *keys.Key) *Client {
	client := resty.New()
	client.SetBaseURL("https://finnhub.io/api/v1")
	client.SetTimeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)

	return &Client{client: client, key: key}
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	if c.key == nil || !c.key.Exists() {
		return errors.New("FINNHUB_API_KEY missing")
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("token", c.key.Value).
		Get(path)
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("finnhub http %d: %s", resp.StatusCode(), resp.String())
	}
	return json.Unmarshal(resp.Body(), out)
}

// InsiderSentiment fetches the monthly share purchase ratio records for a
// symbol within a date range.
func (c *Client) InsiderSentiment(ctx context.Context, symbol string, from, to time.Time) ([]types.SentimentRecord, error) {
	var out struct {
		Data []types.SentimentRecord `json:"data"`
	}
	err := c.get(ctx, "/stock/insider-sentiment", map[string]string{
		"symbol": symbol,
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("error fetching insider sentiment: %w", err)
	}
	return out.Data, nil
}

// InsiderTransactions fetches individual insider trade disclosures.
func (c *Client) InsiderTransactions(ctx context.Context, symbol string, from, to time.Time) ([]types.SentimentRecord, error) {
	var out struct {
		Data []types.SentimentRecord `json:"data"`
	}
	err := c.get(ctx, "/stock/insider-transactions", map[string]string{
		"symbol": symbol,
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("error fetching insider transactions: %w", err)
	}
	return out.Data, nil
}

// RecommendationTrends fetches aggregated analyst buy/hold/sell counts.
func (c *Client) RecommendationTrends(ctx context.Context, symbol string) ([]types.SentimentRecord, error) {
	var out []types.SentimentRecord
	err := c.get(ctx, "/stock/recommendation", map[string]string{
		"symbol": symbol,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("error fetching recommendations trends: %w", err)
	}
	return out, nil
}
