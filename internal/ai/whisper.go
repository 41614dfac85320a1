package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// GroqWhisper transcribes audio through Groq's OpenAI-compatible Whisper
// endpoint.
type GroqWhisper struct {
	APIKey  string
	BaseURL string
	Model   string
	Client  *http.Client
}

func (w GroqWhisper) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error) {
	if w.Client == nil {
		w.Client = &http.Client{Timeout: 60 * time.Second}
	}
	if w.BaseURL == "" {
		w.BaseURL = "https://api.groq.com/openai/v1"
	}
	if w.Model == "" {
		w.Model = "whisper-large-v3"
	}
	if w.APIKey == "" {
		return "", fmt.Errorf("transcription api key not configured")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", err
	}
	_ = mw.WriteField("model", w.Model)
	if language != "" {
		_ = mw.WriteField("language", language)
	}
	_ = mw.WriteField("response_format", "json")
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.BaseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+w.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("transcription http error: %s", resp.Status)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Text, nil
}
