package nlu

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOpenAI struct {
	chatResponse  string
	chatErr       error
	audioResponse string
	audioErr      error
	chatCalls     int
	audioCalls    int
	lastAudioReq  openai.AudioRequest
}

func (f *fakeOpenAI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.chatCalls++
	if f.chatErr != nil {
		return openai.ChatCompletionResponse{}, f.chatErr
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.chatResponse}},
		},
	}, nil
}

func (f *fakeOpenAI) CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	f.audioCalls++
	f.lastAudioReq = req
	if f.audioErr != nil {
		return openai.AudioResponse{}, f.audioErr
	}
	return openai.AudioResponse{Text: f.audioResponse}, nil
}

func TestAnalyzeIntentParsesModelJSON(t *testing.T) {
	client := &fakeOpenAI{chatResponse: `{
		"intent": "buy",
		"propertyType": "apartment",
		"location": "Lagoa da Conceição",
		"priceRange": {"min": 0, "max": 500000},
		"bedrooms": 2,
		"sentiment": "positive"
	}`}
	adapter := NewOpenAIAdapter(client, OpenAIConfig{}, nil)

	intent, err := adapter.AnalyzeIntent(context.Background(), "quero comprar apartamento até 500 mil na Lagoa")

	require.NoError(t, err)
	assert.Equal(t, ActionBuy, intent.Action)
	assert.Equal(t, "apartment", intent.PropertyType)
	assert.Equal(t, "Lagoa da Conceição", intent.Location)
	assert.Equal(t, 500000, intent.PriceRange.Max)
	assert.Equal(t, 2, intent.Bedrooms)
}

func TestAnalyzeIntentToleratesCodeFences(t *testing.T) {
	client := &fakeOpenAI{chatResponse: "```json\n{\"intent\":\"rent\",\"propertyType\":\"house\"}\n```"}
	adapter := NewOpenAIAdapter(client, OpenAIConfig{}, nil)

	intent, err := adapter.AnalyzeIntent(context.Background(), "procuro casa para alugar")

	require.NoError(t, err)
	assert.Equal(t, ActionRent, intent.Action)
	assert.Equal(t, "house", intent.PropertyType)
	assert.Equal(t, "neutral", intent.Sentiment)
}

func TestAnalyzeIntentAPIErrorYieldsNeutral(t *testing.T) {
	client := &fakeOpenAI{chatErr: errors.New("rate limited")}
	adapter := NewOpenAIAdapter(client, OpenAIConfig{}, nil)

	intent, err := adapter.AnalyzeIntent(context.Background(), "qualquer coisa")

	require.Error(t, err)
	assert.Equal(t, Neutral(), intent)
}

func TestAnalyzeIntentGarbageYieldsNeutral(t *testing.T) {
	client := &fakeOpenAI{chatResponse: "desculpe, não consigo responder em JSON"}
	adapter := NewOpenAIAdapter(client, OpenAIConfig{}, nil)

	intent, err := adapter.AnalyzeIntent(context.Background(), "oi")

	require.Error(t, err)
	assert.Equal(t, Neutral(), intent)
}

func TestTranscribeSuccess(t *testing.T) {
	client := &fakeOpenAI{audioResponse: " quero alugar um apartamento "}
	adapter := NewOpenAIAdapter(client, OpenAIConfig{}, nil)

	text, err := adapter.Transcribe(context.Background(), []byte("ogg-bytes"), "audio/ogg; codecs=opus")

	require.NoError(t, err)
	assert.Equal(t, "quero alugar um apartamento", text)
	assert.Equal(t, "pt", client.lastAudioReq.Language)
	assert.True(t, strings.HasSuffix(client.lastAudioReq.FilePath, ".ogg"))
}

func TestTranscribeRejectsEmptyPayload(t *testing.T) {
	client := &fakeOpenAI{}
	adapter := NewOpenAIAdapter(client, OpenAIConfig{}, nil)

	_, err := adapter.Transcribe(context.Background(), nil, "audio/ogg")

	require.Error(t, err)
	assert.Zero(t, client.audioCalls)
}

func TestTranscribeRejectsNearEmptyTranscript(t *testing.T) {
	client := &fakeOpenAI{audioResponse: "a"}
	adapter := NewOpenAIAdapter(client, OpenAIConfig{}, nil)

	_, err := adapter.Transcribe(context.Background(), []byte("bytes"), "audio/ogg")

	assert.Error(t, err)
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"audio/ogg; codecs=opus", "ogg"},
		{"audio/mp4", "m4a"},
		{"audio/mpeg", "mp3"},
		{"audio/wav", "wav"},
		{"audio/webm", "webm"},
		{"", "ogg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extensionFor(tt.mime), tt.mime)
	}
}
