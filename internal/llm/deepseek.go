package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"stock-sentiment-analyzer/internal/keys"
	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/store"
)

// Models accepted by the DeepSeek chat completions endpoint.
const (
	ModelChat     = "deepseek-chat"
	ModelReasoner = "deepseek-reasoner"
)

// DeepSeek calls the DeepSeek chat completions API (OpenAI-compatible).
type DeepSeek struct {
	client      *resty.Client
	key         *keys.Key
	model       string
	temperature float32
}

func NewDeepSeek(cfg *store.Config, key *keys.Key) *DeepSeek {
	client := resty.New()
	client.SetBaseURL(cfg.LLM.BaseURL)
	client.SetTimeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)
	client.SetHeader("Content-Type", "application/json")

	return &DeepSeek{
		client:      client,
		key:         key,
		model:       cfg.LLM.Model,
		temperature: cfg.LLM.Temperature,
	}
}

func (d *DeepSeek) Configured() bool {
	return d.key != nil && d.key.Exists()
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a single user-role message and returns the reply text.
func (d *DeepSeek) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !d.Configured() {
		return "", errors.New("DEEPSEEK_API_KEY missing")
	}

	ctx, span := logger.StartSpan(ctx, "deepseek-complete")
	defer span.End()

	body := chatRequest{
		Model:       d.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: d.temperature,
		MaxTokens:   maxTokens,
	}

	var out chatResponse
	start := time.Now()
	resp, err := d.client.R().
		SetContext(ctx).
		SetAuthToken(d.key.Value).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	latency := time.Since(start)

	if err != nil {
		logger.ErrorWithErr(ctx, "DeepSeek request failed", err, "latency_ms", latency.Milliseconds())
		return "", err
	}
	if resp.StatusCode() >= 300 {
		msg := out.Error.Message
		if msg == "" {
			msg = resp.String()
		}
		err := fmt.Errorf("deepseek http %d: %s", resp.StatusCode(), msg)
		logger.ErrorWithErr(ctx, "DeepSeek returned error status", err, "status_code", resp.StatusCode())
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("deepseek response has no choices")
	}

	logger.Debug(ctx, "DeepSeek reply received",
		"model", d.model,
		"latency_ms", latency.Milliseconds(),
		"reply_length", len(out.Choices[0].Message.Content),
	)
	return out.Choices[0].Message.Content, nil
}

// TestConnection sends a 50-token probe to verify the key and endpoint.
func (d *DeepSeek) TestConnection(ctx context.Context) (string, error) {
	if !d.Configured() {
		return "", errors.New("DEEPSEEK_API_KEY missing")
	}
	reply, err := d.Complete(ctx, "Test DeepSeek API", 50)
	if err != nil {
		return "", fmt.Errorf("error testing DeepSeek API: %w", err)
	}
	return reply, nil
}
