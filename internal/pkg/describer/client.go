// Package describer drafts short course material descriptions through an
// OpenAI-compatible chat completions API.
package describer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 30 * time.Second

	systemPrompt = "You write concise descriptions of university course material for students. " +
		"Answer in the language of the title, in two or three sentences, without markdown headings."
)

// Config configures the client
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Describer produces descriptions for chapters and series
type Describer interface {
	DescribeChapter(ctx context.Context, title, courseName, professor string) (string, error)
	DescribeSeries(ctx context.Context, title, seriesType, courseName string) (string, error)
	Configured() bool
}

type client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient returns a describer. A missing or placeholder API key yields a
// client whose calls fail with apperrors.ErrNotConfigured.
func NewClient(cfg Config, logger zerolog.Logger) Describer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With().Str("component", "describer").Logger(),
	}
}

var placeholderKeys = map[string]bool{
	"your-api-key":   true,
	"your_api_key":   true,
	"changeme":       true,
	"change-me":      true,
	"sk-placeholder": true,
	"xxx":            true,
}

// IsPlaceholderKey reports whether key is empty or obviously not a real credential
func IsPlaceholderKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}
	if strings.HasPrefix(key, "<") && strings.HasSuffix(key, ">") {
		return true
	}
	return placeholderKeys[strings.ToLower(key)]
}

func (c *client) Configured() bool {
	return !IsPlaceholderKey(c.cfg.APIKey)
}

func (c *client) DescribeChapter(ctx context.Context, title, courseName, professor string) (string, error) {
	prompt := fmt.Sprintf("Describe the chapter %q of the course %q", title, courseName)
	if strings.TrimSpace(professor) != "" {
		prompt += fmt.Sprintf(" taught by %s", professor)
	}
	return c.complete(ctx, prompt+".")
}

func (c *client) DescribeSeries(ctx context.Context, title, seriesType, courseName string) (string, error) {
	prompt := fmt.Sprintf("Describe the %s exercise series %q of the course %q.", seriesType, title, courseName)
	return c.complete(ctx, prompt)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *client) complete(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", apperrors.ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.4,
		MaxTokens:   200,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("chat completion request failed")
		return "", fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", apperrors.ErrExternalService, err)
	}

	var parsed chatResponse
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		c.logger.Warn().Int("status", resp.StatusCode).Str("error", msg).Msg("chat completion rejected")
		return "", fmt.Errorf("%w: status %d: %s", apperrors.ErrExternalService, resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: empty completion", apperrors.ErrExternalService)
	}

	c.logger.Debug().Dur("latency", time.Since(start)).Str("model", c.cfg.Model).Msg("chat completion done")
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
