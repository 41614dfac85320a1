package ai

import (
	"context"
	"io"
)

// ExtractedFields is the structured complaint a model distills from a raw
// transcript. Zero values mean "not mentioned".
type ExtractedFields struct {
	Name        string  `json:"name"`
	Phone       *string `json:"phone"`
	Location    string  `json:"location"`
	Department  string  `json:"department"`
	Description string  `json:"description"`
	Urgency     string  `json:"urgency"`
}

// Transcriber converts an uploaded audio recording to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error)
}

// FieldExtractor distills structured complaint fields from a transcript.
type FieldExtractor interface {
	Extract(ctx context.Context, transcript string) (ExtractedFields, error)
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Assistant answers free-form questions, used by the schemes chatbot.
type Assistant interface {
	Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error)
}
