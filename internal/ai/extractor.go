package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const extractionPrompt = `You are an AI assistant that extracts structured information from citizen complaints.
Extract the following fields from the complaint and respond ONLY with valid JSON:

{
    "name": "complainant name (or 'Unknown' if not mentioned)",
    "phone": "phone number if mentioned (or null)",
    "location": "location/address",
    "department": "relevant government department (e.g., 'Road Department', 'Water Department', 'Electricity Department', 'Sanitation Department', 'Health Department', 'General Administration')",
    "description": "brief description of the complaint",
    "urgency": "High/Medium/Low based on severity"
}

Urgency Guidelines:
- High: Health/safety risks, no water/electricity for days, flooding, dangerous roads
- Medium: Inconvenient but not dangerous, like potholes, garbage accumulation
- Low: Minor issues, suggestions, general complaints

Respond ONLY with the JSON object, no additional text.`

// OpenRouterExtractor asks an OpenRouter-hosted model to distill complaint
// fields from a transcript. Callers fall back to KeywordExtract on failure.
type OpenRouterExtractor struct {
	APIKey  string
	BaseURL string
	Model   string
	Client  *http.Client
}

func (e OpenRouterExtractor) Extract(ctx context.Context, transcript string) (ExtractedFields, error) {
	if e.Client == nil {
		e.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if e.BaseURL == "" {
		e.BaseURL = "https://openrouter.ai/api/v1"
	}
	if e.APIKey == "" {
		return ExtractedFields{}, fmt.Errorf("extractor api key not configured")
	}

	payload := struct {
		Model       string        `json:"model"`
		Messages    []ChatMessage `json:"messages"`
		MaxTokens   int           `json:"max_tokens"`
		Temperature float64       `json:"temperature"`
	}{
		Model: e.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: extractionPrompt},
			{Role: "user", Content: "Extract fields from this complaint:\n\n" + transcript},
		},
		MaxTokens:   1024,
		Temperature: 0.3,
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return ExtractedFields{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.Client.Do(req)
	if err != nil {
		return ExtractedFields{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ExtractedFields{}, fmt.Errorf("extractor http error: %s", resp.Status)
	}

	var res struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return ExtractedFields{}, err
	}
	if len(res.Choices) == 0 {
		return ExtractedFields{}, fmt.Errorf("empty extractor response")
	}

	fields, err := parseExtraction(res.Choices[0].Message.Content)
	if err != nil {
		return ExtractedFields{}, err
	}
	if fields.Description == "" {
		fields.Description = transcript
	}
	return fields, nil
}

// parseExtraction tolerates models that wrap their JSON in markdown fences.
func parseExtraction(content string) (ExtractedFields, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.Index(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}
	var fields ExtractedFields
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return ExtractedFields{}, err
	}
	return fields, nil
}

// KeywordExtract is the deterministic fallback used when the model is
// unreachable or returns unparseable output.
func KeywordExtract(transcript string) ExtractedFields {
	text := strings.ToLower(transcript)

	department := "General Administration"
	switch {
	case containsAny(text, "road", "pothole", "street"):
		department = "Road Department"
	case containsAny(text, "water", "tap", "pipe", "leak"):
		department = "Water Department"
	case containsAny(text, "light", "electricity", "power", "pole"):
		department = "Electricity Department"
	case containsAny(text, "garbage", "trash", "waste", "clean"):
		department = "Sanitation Department"
	case containsAny(text, "hospital", "doctor", "health", "medicine"):
		department = "Health Department"
	}

	return ExtractedFields{
		Name:        "Unknown",
		Location:    "Unknown",
		Department:  department,
		Description: transcript,
		Urgency:     "Medium",
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
