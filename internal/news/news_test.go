package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"stock-sentiment-analyzer/internal/keys"
	"stock-sentiment-analyzer/internal/store"
)

func testConfig() *store.Config {
	cfg := &store.Config{}
	cfg.News.Days = 7
	cfg.News.MaxArticles = 10
	cfg.News.Language = "en"
	cfg.HTTP.TimeoutSeconds = 5
	return cfg
}

func TestNewsAPIFetch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":        r.URL.Query().Get("q"),
			"language": r.URL.Query().Get("language"),
			"pageSize": r.URL.Query().Get("pageSize"),
			"apiKey":   r.URL.Query().Get("apiKey"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","articles":[
			{"title":"AAPL beats earnings","description":"Strong quarter","url":"https://example.com/1"},
			{"title":"No description article","description":"","url":"https://example.com/2"},
			{"title":"Second story","description":"More detail","url":"https://example.com/3"}
		]}`))
	}))
	defer srv.Close()

	c := NewAPIClient(testConfig(), &keys.Key{Name: keys.NewsAPIKeyName, Value: "nk-test"})
	c.client.SetBaseURL(srv.URL)

	items, err := c.Fetch(context.Background(), "AAPL", 10)
	if err != nil {
		t.Fatal(err)
	}
	// The description-less article is dropped.
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "AAPL beats earnings" || items[0].Content != "Strong quarter" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[0].Source != "NewsAPI" {
		t.Errorf("expected NewsAPI source tag, got %s", items[0].Source)
	}
	if gotQuery["q"] != "AAPL stock OR AAPL earnings OR AAPL company" {
		t.Errorf("unexpected query: %s", gotQuery["q"])
	}
	if gotQuery["language"] != "en" || gotQuery["pageSize"] != "10" || gotQuery["apiKey"] != "nk-test" {
		t.Errorf("unexpected params: %+v", gotQuery)
	}
}

func TestNewsAPIFetchWithoutKey(t *testing.T) {
	c := NewAPIClient(testConfig(), &keys.Key{Name: keys.NewsAPIKeyName})
	if _, err := c.Fetch(context.Background(), "AAPL", 10); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNewsAPIFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status":"error","message":"rate limited"}`))
	}))
	defer srv.Close()

	c := NewAPIClient(testConfig(), &keys.Key{Name: keys.NewsAPIKeyName, Value: "nk-test"})
	c.client.SetBaseURL(srv.URL)

	if _, err := c.Fetch(context.Background(), "AAPL", 10); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestFinVizFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><table>
			<tr><td><a class="tab-link-news" href="https://example.com/a">Apple launches a new product line</a></td></tr>
			<tr><td><a class="tab-link-news" href="https://example.com/b">short</a></td></tr>
			<tr><td><a class="tab-link-news" href="https://example.com/c">Analysts raise Apple price targets</a></td></tr>
		</table></body></html>`))
	}))
	defer srv.Close()

	s := NewFinVizScraper(testConfig())
	s.baseURL = srv.URL

	items, err := s.Fetch(context.Background(), "AAPL", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items (short title dropped), got %d", len(items))
	}
	if items[0].URL != "https://example.com/a" {
		t.Errorf("unexpected url: %s", items[0].URL)
	}
	if items[0].Content != items[0].Title {
		t.Error("scraped items must default content to title")
	}
	if items[0].Source != "Finviz" {
		t.Errorf("expected Finviz source tag, got %s", items[0].Source)
	}
}

func TestFinVizFetchRespectsMax(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<a class="tab-link-news" href="/1">First headline long enough here</a>
			<a class="tab-link-news" href="/2">Second headline long enough here</a>
			<a class="tab-link-news" href="/3">Third headline long enough here</a>
		</body></html>`))
	}))
	defer srv.Close()

	s := NewFinVizScraper(testConfig())
	s.baseURL = srv.URL

	items, err := s.Fetch(context.Background(), "AAPL", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected max 2 items, got %d", len(items))
	}
}

func TestYahooFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<h3 class="story-headline">Apple shares climb after upgrade</h3>
			<h3 class="other">ignored block</h3>
			<h3 class="news-headline-item">Supply chain update lifts outlook</h3>
		</body></html>`))
	}))
	defer srv.Close()

	s := NewYahooScraper(testConfig())
	s.baseURL = srv.URL

	items, err := s.Fetch(context.Background(), "AAPL", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Source != "Yahoo Finance" {
		t.Errorf("expected Yahoo Finance source tag, got %s", items[0].Source)
	}
	if items[0].Content != items[0].Title {
		t.Error("headline-only items must use the title as content")
	}
}

func TestFinVizFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewFinVizScraper(testConfig())
	s.baseURL = srv.URL

	if _, err := s.Fetch(context.Background(), "AAPL", 10); err == nil {
		t.Fatal("expected error on 403")
	}
}
