package news

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"stock-sentiment-analyzer/internal/keys"
	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/store"
	"stock-sentiment-analyzer/internal/types"
)

// APIClient fetches keyword-matched articles from NewsAPI.
type APIClient struct {
	client   *resty.Client
	key      *keys.Key
	days     int
	language string
}

func NewAPIClient(cfg *store.Config, key *keys.Key) *APIClient {
	client := resty.New()
	client.SetBaseURL("https://newsapi.org/v2")
	client.SetTimeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)

	return &APIClient{
		client:   client,
		key:      key,
		days:     cfg.News.Days,
		language: cfg.News.Language,
	}
}

func (c *APIClient) Name() string { return "NewsAPI" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"articles"`
}

// Fetch queries /v2/everything for recent articles mentioning the symbol.
func (c *APIClient) Fetch(ctx context.Context, symbol string, max int) ([]types.NewsItem, error) {
	if c.key == nil || !c.key.Exists() {
		return nil, errors.New("NEWS_API_KEY missing")
	}

	from := time.Now().AddDate(0, 0, -c.days).Format("2006-01-02")
	query := fmt.Sprintf("%s stock OR %s earnings OR %s company", symbol, symbol, symbol)

	var out newsAPIResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        query,
			"from":     from,
			"sortBy":   "relevancy",
			"language": c.language,
			"pageSize": strconv.Itoa(max),
			"apiKey":   c.key.Value,
		}).
		SetResult(&out).
		SetError(&out).
		Get("/everything")
	if err != nil {
		return nil, fmt.Errorf("error fetching news from NewsAPI: %w", err)
	}
	if resp.StatusCode() != 200 {
		msg := out.Message
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("error fetching news from NewsAPI: %s", msg)
	}

	items := make([]types.NewsItem, 0, max)
	for _, a := range out.Articles {
		if a.Title == "" || a.Description == "" {
			continue
		}
		items = append(items, types.NewsItem{
			Title:   a.Title,
			Content: a.Description,
			URL:     a.URL,
			Source:  "NewsAPI",
		})
		if len(items) >= max {
			break
		}
	}

	logger.Debug(ctx, "NewsAPI fetch completed", "symbol", symbol, "articles", len(items))
	return items, nil
}
