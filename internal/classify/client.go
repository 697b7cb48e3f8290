package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"jobtrack/internal/config"
)

// Result holds the structured fields extracted from one email.
type Result struct {
	Company  string
	Position string
	Location string
	Status   string // raw wording; callers normalize
}

// Minimal chat request/response structs for the /v1/chat/completions
// contract.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxContent int
	retryMax   int
	limiter    *rate.Limiter
	httpc      *http.Client
}

// New builds a classifier client from config. OPENAI_MODEL and
// OPENAI_BASE_URL override the config so a run can point at any
// compatible endpoint without editing files.
func New(cfg config.Config, apiKey string) *Client {
	baseURL := cfg.Classifier.BaseURL
	if v := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); v != "" {
		baseURL = v
	}
	model := cfg.Classifier.Model
	if v := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); v != "" {
		model = v
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		maxContent: cfg.Classifier.MaxContentChars,
		retryMax:   cfg.Classifier.RetryMax,
		limiter:    rate.NewLimiter(rate.Limit(cfg.Classifier.RequestsPerSecond), 1),
		httpc:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Classify sends one email's text through the model and parses the
// structured reply. Transient failures are retried within the budget;
// ErrNotApplication means the model explicitly declined the email.
func (c *Client) Classify(ctx context.Context, content string) (Result, error) {
	if c.maxContent > 0 && len(content) > c.maxContent {
		cut := c.maxContent
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut]
	}

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return Result{}, err
		}

		raw, err := c.complete(ctx, content)
		if err != nil {
			var te *TransientError
			if errors.As(err, &te) {
				lastErr = err
				continue
			}
			return Result{}, err
		}
		return ParseResponse(raw)
	}
	return Result{}, lastErr
}

func (c *Client) complete(ctx context.Context, content string) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   150,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: content},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", &TransientError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", &AuthError{Err: fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.baseURL)}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", &TransientError{Err: fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.baseURL)}
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("classifier HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", &MalformedError{Reason: "decode response: " + err.Error()}
	}
	if len(cr.Choices) == 0 {
		return "", &MalformedError{Reason: "no choices in response"}
	}

	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
