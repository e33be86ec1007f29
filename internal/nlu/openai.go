package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/imobiliariaxyz/bot-corretor/pkg/logging"
)

var openaiTracer = otel.Tracer("corretor.internal.nlu.openai")

const intentSystemPrompt = `Analise a mensagem do usuário e identifique a intenção relacionada a imóveis.
Responda APENAS com um JSON no formato:
{
  "intent": "buy|rent|sell|visit|info|other",
  "propertyType": "house|apartment|land|commercial|any",
  "location": "nome do bairro ou cidade se mencionado",
  "priceRange": { "min": 0, "max": 0 },
  "bedrooms": 0,
  "features": ["features mencionadas"],
  "urgency": "high|medium|low",
  "sentiment": "positive|neutral|negative"
}
Use 0 para valores numéricos não mencionados e "" para textos ausentes.`

const transcriptionPrompt = "Transcreva o áudio em português brasileiro. O contexto é sobre imóveis, casas, apartamentos, compra, venda ou aluguel."

// minTranscriptLength guards against Whisper returning noise for
// near-silent notes.
const minTranscriptLength = 3

type openaiClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// OpenAIConfig tunes the OpenAI-backed adapter.
type OpenAIConfig struct {
	ChatModel         string
	AudioModel        string
	ChatTimeout       time.Duration
	TranscribeTimeout time.Duration
}

// OpenAIAdapter implements Adapter on top of the OpenAI API: Whisper
// for transcription and a chat model for intent extraction.
type OpenAIAdapter struct {
	client openaiClient
	cfg    OpenAIConfig
	logger *logging.Logger
}

// NewOpenAIAdapter returns an OpenAI-backed Adapter.
func NewOpenAIAdapter(client openaiClient, cfg OpenAIConfig, logger *logging.Logger) *OpenAIAdapter {
	if client == nil {
		panic("nlu: openai client cannot be nil")
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o-mini"
	}
	if cfg.AudioModel == "" {
		cfg.AudioModel = "whisper-1"
	}
	if cfg.ChatTimeout <= 0 {
		cfg.ChatTimeout = 30 * time.Second
	}
	if cfg.TranscribeTimeout <= 0 {
		cfg.TranscribeTimeout = 60 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OpenAIAdapter{client: client, cfg: cfg, logger: logger}
}

// Transcribe sends the voice note to Whisper with a Portuguese hint.
func (a *OpenAIAdapter) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("nlu: empty audio payload")
	}

	ctx, span := openaiTracer.Start(ctx, "nlu.transcribe")
	defer span.End()
	span.SetAttributes(
		attribute.Int("corretor.audio_bytes", len(audio)),
		attribute.String("corretor.audio_mime", mimeType),
	)

	ctx, cancel := context.WithTimeout(ctx, a.cfg.TranscribeTimeout)
	defer cancel()

	resp, err := a.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    a.cfg.AudioModel,
		Reader:   bytes.NewReader(audio),
		FilePath: "voice-note." + extensionFor(mimeType),
		Language: "pt",
		Prompt:   transcriptionPrompt,
	})
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("nlu: transcription failed: %w", err)
	}

	transcript := strings.TrimSpace(resp.Text)
	if len(transcript) < minTranscriptLength {
		return "", errors.New("nlu: transcript empty or too short")
	}
	return transcript, nil
}

// AnalyzeIntent asks the chat model for a strict-JSON intent reading.
func (a *OpenAIAdapter) AnalyzeIntent(ctx context.Context, text string) (Intent, error) {
	ctx, span := openaiTracer.Start(ctx, "nlu.analyze_intent")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, a.cfg.ChatTimeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.cfg.ChatModel,
		Temperature: 0.3,
		MaxTokens:   200,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: intentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		span.RecordError(err)
		return Neutral(), fmt.Errorf("nlu: intent analysis failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Neutral(), errors.New("nlu: intent analysis returned no choices")
	}

	intent, err := parseIntent(resp.Choices[0].Message.Content)
	if err != nil {
		span.RecordError(err)
		a.logger.Warn("discarding unparseable intent response", "error", err)
		return Neutral(), err
	}
	span.SetAttributes(attribute.String("corretor.intent_action", intent.Action))
	return intent, nil
}

// parseIntent decodes the model's JSON answer, tolerating markdown
// code fences around the object.
func parseIntent(content string) (Intent, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var intent Intent
	if err := json.Unmarshal([]byte(content), &intent); err != nil {
		return Neutral(), fmt.Errorf("nlu: decode intent: %w", err)
	}
	if intent.Action == "" {
		intent.Action = ActionOther
	}
	if intent.PropertyType == "" {
		intent.PropertyType = PropertyAny
	}
	if intent.Sentiment == "" {
		intent.Sentiment = "neutral"
	}
	return intent, nil
}

func extensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "mp4"), strings.Contains(mimeType, "m4a"):
		return "m4a"
	case strings.Contains(mimeType, "mpeg"), strings.Contains(mimeType, "mp3"):
		return "mp3"
	case strings.Contains(mimeType, "wav"):
		return "wav"
	case strings.Contains(mimeType, "webm"):
		return "webm"
	default:
		return "ogg"
	}
}
