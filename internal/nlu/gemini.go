package nlu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiAdapter implements intent analysis using Google's Gemini API.
// It is used as the fallback provider; transcription is not supported.
type GeminiAdapter struct {
	client  *genai.Client
	modelID string
}

// NewGeminiAdapter creates a Gemini-backed Adapter.
func NewGeminiAdapter(ctx context.Context, apiKey, modelID string) (*GeminiAdapter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("nlu: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("nlu: failed to create gemini client: %w", err)
	}

	return &GeminiAdapter{client: client, modelID: modelID}, nil
}

// Transcribe is not supported by the Gemini adapter.
func (a *GeminiAdapter) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return "", ErrUnavailable
}

// AnalyzeIntent asks Gemini for the same strict-JSON intent reading the
// OpenAI adapter uses.
func (a *GeminiAdapter) AnalyzeIntent(ctx context.Context, text string) (Intent, error) {
	model := a.client.GenerativeModel(a.modelID)
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(200)
	model.SystemInstruction = genai.NewUserContent(genai.Text(intentSystemPrompt))

	resp, err := model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return Neutral(), fmt.Errorf("nlu: gemini intent analysis failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Neutral(), errors.New("nlu: gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return parseIntent(sb.String())
}
