package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stock-sentiment-analyzer/internal/keys"
	"stock-sentiment-analyzer/internal/store"
)

func testConfig(baseURL string) *store.Config {
	cfg := &store.Config{}
	cfg.LLM.BaseURL = baseURL
	cfg.LLM.Model = ModelChat
	cfg.LLM.MaxTokens = 5000
	cfg.LLM.Temperature = 0.3
	cfg.HTTP.TimeoutSeconds = 5
	return cfg
}

func testKey(value string) *keys.Key {
	return &keys.Key{Name: keys.DeepSeekKeyName, Description: "DeepSeek API", Value: value}
}

func TestCompleteParsesReply(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"the reply"}}]}`))
	}))
	defer srv.Close()

	d := NewDeepSeek(testConfig(srv.URL), testKey("sk-test"))
	reply, err := d.Complete(context.Background(), "hello", 5000)
	if err != nil {
		t.Fatal(err)
	}
	if reply != "the reply" {
		t.Errorf("expected 'the reply', got %q", reply)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %f", gotBody.Temperature)
	}
	if gotBody.MaxTokens != 5000 {
		t.Errorf("expected max_tokens 5000, got %d", gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Errorf("expected a single user message, got %+v", gotBody.Messages)
	}
}

func TestCompleteAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	d := NewDeepSeek(testConfig(srv.URL), testKey("sk-bad"))
	if _, err := d.Complete(context.Background(), "hello", 100); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestCompleteWithoutKey(t *testing.T) {
	d := NewDeepSeek(testConfig("https://api.deepseek.com"), testKey(""))
	if d.Configured() {
		t.Fatal("expected engine to be unconfigured")
	}
	if _, err := d.Complete(context.Background(), "hello", 100); err == nil {
		t.Fatal("expected error without key")
	}
}

func TestTestConnectionUsesSmallTokenBudget(t *testing.T) {
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	d := NewDeepSeek(testConfig(srv.URL), testKey("sk-test"))
	if _, err := d.TestConnection(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotBody.MaxTokens != 50 {
		t.Errorf("expected probe max_tokens 50, got %d", gotBody.MaxTokens)
	}
}

func TestNoopEngine(t *testing.T) {
	n := NewNoop()
	if n.Configured() {
		t.Fatal("noop must report unconfigured")
	}
	if _, err := n.Complete(context.Background(), "x", 10); err == nil {
		t.Fatal("expected error from noop Complete")
	}
}
