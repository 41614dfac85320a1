package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimitError is returned when the upstream model rejects the request
// with 429, so the handler can answer with a retry hint.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (r RateLimitError) Error() string {
	if r.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", r.RetryAfter)
	}
	return "rate limited"
}

// OpenAICompatAssistant talks to any OpenAI-compatible chat completion
// endpoint. Identical prompts within the cache TTL are answered from memory;
// the schemes chatbot gets many repeated questions.
type OpenAICompatAssistant struct {
	BaseURL   string
	Model     string
	APIKey    string
	MaxTokens int
	System    string
	Client    *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	value string
	exp   time.Time
}

const assistantCacheTTL = 60 * time.Second

func (a *OpenAICompatAssistant) Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error) {
	if strings.TrimSpace(a.BaseURL) == "" || strings.TrimSpace(a.Model) == "" {
		return "", fmt.Errorf("assistant is not configured")
	}

	if v, ok := a.cacheGet(prompt); ok {
		return v, nil
	}

	messages := make([]ChatMessage, 0, len(history)+2)
	if a.System != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: a.System})
	}
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: prompt})

	payload := struct {
		Model     string        `json:"model"`
		MaxTokens int           `json:"max_tokens,omitempty"`
		Messages  []ChatMessage `json:"messages"`
	}{Model: a.Model, MaxTokens: a.MaxTokens, Messages: messages}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(a.BaseURL, "/")+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(a.APIKey) != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}

	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: 45 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("assistant request timed out")
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", fmt.Errorf("assistant request timed out")
		}
		return "", fmt.Errorf("assistant request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retry := time.Duration(0)
		if s := resp.Header.Get("Retry-After"); s != "" {
			if d, err := time.ParseDuration(s + "s"); err == nil {
				retry = d
			}
		}
		return "", RateLimitError{RetryAfter: retry}
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("assistant http error: %s", resp.Status)
	}

	var res struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("empty assistant response")
	}
	answer := res.Choices[0].Message.Content
	a.cacheSet(prompt, answer)
	return answer, nil
}

func (a *OpenAICompatAssistant) cacheGet(key string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if e, ok := a.cache[key]; ok {
		if time.Now().Before(e.exp) {
			return e.value, true
		}
		delete(a.cache, key)
	}
	return "", false
}

func (a *OpenAICompatAssistant) cacheSet(key, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cache == nil {
		a.cache = map[string]cacheEntry{}
	}
	a.cache[key] = cacheEntry{value: value, exp: time.Now().Add(assistantCacheTTL)}
}
