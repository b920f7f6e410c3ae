package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/gocolly/colly/v2"

	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/store"
	"stock-sentiment-analyzer/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Headlines shorter than this are navigation noise, not articles.
const minTitleLen = 10

// YahooScraper extracts headlines from the Yahoo Finance quote news page.
type YahooScraper struct {
	baseURL string
	timeout time.Duration
}

func NewYahooScraper(cfg *store.Config) *YahooScraper {
	return &YahooScraper{
		baseURL: "https://finance.yahoo.com",
		timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
	}
}

func (s *YahooScraper) Name() string { return "Yahoo Finance" }

func (s *YahooScraper) Fetch(ctx context.Context, symbol string, max int) ([]types.NewsItem, error) {
	pageURL := fmt.Sprintf("%s/quote/%s/news?p=%s", s.baseURL, symbol, symbol)

	c := colly.NewCollector(
		colly.AllowedDomains(hostOf(s.baseURL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	items := []types.NewsItem{}
	c.OnHTML(`h3[class*=headline], h3[class*=Headline]`, func(e *colly.HTMLElement) {
		if len(items) >= max {
			return
		}
		title := strings.TrimSpace(e.Text)
		if len(title) <= minTitleLen {
			return
		}
		items = append(items, types.NewsItem{
			Title:   title,
			Content: title,
			URL:     pageURL,
			Source:  "Yahoo Finance",
		})
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("error fetching news from Yahoo Finance: %w", err)
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("error fetching news from Yahoo Finance: %w", err)
	}
	c.Wait()
	if visitErr != nil {
		return nil, visitErr
	}

	logger.Debug(ctx, "Yahoo scrape completed", "symbol", symbol, "articles", len(items))
	return items, nil
}

// FinVizScraper extracts the news table from a FinViz quote page.
type FinVizScraper struct {
	client  *resty.Client
	baseURL string
}

func NewFinVizScraper(cfg *store.Config) *FinVizScraper {
	client := resty.New()
	client.SetTimeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)
	client.SetHeader("User-Agent", userAgent)

	return &FinVizScraper{
		client:  client,
		baseURL: "https://finviz.com",
	}
}

func (s *FinVizScraper) Name() string { return "Finviz" }

func (s *FinVizScraper) Fetch(ctx context.Context, symbol string, max int) ([]types.NewsItem, error) {
	pageURL := fmt.Sprintf("%s/quote.ashx?t=%s", s.baseURL, symbol)

	resp, err := s.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("could not scrape from %s: %w", pageURL, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("error fetching news from Finviz: %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("could not scrape from %s: %w", pageURL, err)
	}

	items := []types.NewsItem{}
	doc.Find("a.tab-link-news").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		if len(title) <= minTitleLen {
			return true
		}
		href, _ := sel.Attr("href")
		items = append(items, types.NewsItem{
			Title:   title,
			Content: title,
			URL:     href,
			Source:  "Finviz",
		})
		return len(items) < max
	})

	logger.Debug(ctx, "FinViz scrape completed", "symbol", symbol, "articles", len(items))
	return items, nil
}

func hostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
