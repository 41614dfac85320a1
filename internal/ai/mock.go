package ai

import (
	"context"
	"fmt"
	"io"

	"github.com/jantavoice/backend/internal/utils"
)

// MockTranscriber returns a canned transcript, keyed deterministically on the
// uploaded filename so dev runs are reproducible without API keys.
type MockTranscriber struct{}

var mockTranscripts = []string{
	"There is a big pothole on the main road near the bus stop, very dangerous for two wheelers.",
	"No water supply in our colony since three days, please send a tanker urgently.",
	"The street light pole near the park is sparking at night.",
	"Garbage has not been collected from our lane for a week and it smells terrible.",
}

func (MockTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error) {
	_, _ = io.Copy(io.Discard, audio)
	h := utils.HashStringToUint64(filename)
	return mockTranscripts[int(h%uint64(len(mockTranscripts)))], nil
}

// MockExtractor runs the keyword fallback, which is already deterministic.
type MockExtractor struct{}

func (MockExtractor) Extract(ctx context.Context, transcript string) (ExtractedFields, error) {
	return KeywordExtract(transcript), nil
}

// MockAssistant echoes a fixed reply for dev mode.
type MockAssistant struct{}

func (MockAssistant) Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error) {
	return fmt.Sprintf("This is a development reply. You asked: %s", prompt), nil
}
