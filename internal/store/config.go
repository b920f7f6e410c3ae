package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		BaseURL     string  `yaml:"base_url"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"llm"`
	News struct {
		Days        int    `yaml:"days"`
		MaxArticles int    `yaml:"max_articles"`
		Language    string `yaml:"language"`
	} `yaml:"news"`
	Finnhub struct {
		LookbackDays int `yaml:"lookback_days"`
	} `yaml:"finnhub"`
	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"http"`
	Log struct {
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"log"`
}

func (c *Config) Validate() error {
	if c.LLM.Provider != "DEEPSEEK" && c.LLM.Provider != "NOOP" {
		return fmt.Errorf("invalid llm.provider '%s': must be 'DEEPSEEK' or 'NOOP'", c.LLM.Provider)
	}
	if c.LLM.MaxTokens < 50 || c.LLM.MaxTokens > 10000 {
		return fmt.Errorf("llm.max_tokens must be between 50-10000, got %d", c.LLM.MaxTokens)
	}
	if c.News.Days < 1 || c.News.Days > 30 {
		return fmt.Errorf("news.days must be between 1-30, got %d", c.News.Days)
	}
	if c.News.MaxArticles < 1 {
		return fmt.Errorf("news.max_articles must be positive, got %d", c.News.MaxArticles)
	}
	return nil
}

func applyDefaults(c *Config) {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "DEEPSEEK"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "deepseek-chat"
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.deepseek.com"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 5000
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.News.Days == 0 {
		c.News.Days = 7
	}
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 10
	}
	if c.News.Language == "" {
		c.News.Language = "en"
	}
	if c.Finnhub.LookbackDays == 0 {
		c.Finnhub.LookbackDays = 90
	}
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = 10
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
}

// LoadConfig reads the YAML config at path. A missing file is not an error:
// all settings have working defaults and secrets come from the environment.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&c)
			return &c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
