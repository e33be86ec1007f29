package nlu

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedAdapter struct {
	intent        Intent
	intentErr     error
	transcript    string
	transcriptErr error
	intentCalls   int
}

func (s *scriptedAdapter) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return s.transcript, s.transcriptErr
}

func (s *scriptedAdapter) AnalyzeIntent(ctx context.Context, text string) (Intent, error) {
	s.intentCalls++
	return s.intent, s.intentErr
}

func TestFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	primary := &scriptedAdapter{intent: Intent{Action: ActionBuy}}
	fallback := &scriptedAdapter{intent: Intent{Action: ActionRent}}
	adapter := NewFallbackAdapter(primary, fallback, nil)

	intent, err := adapter.AnalyzeIntent(context.Background(), "msg")

	require.NoError(t, err)
	assert.Equal(t, ActionBuy, intent.Action)
	assert.Zero(t, fallback.intentCalls)
}

func TestFallbackEngagesOnPrimaryFailure(t *testing.T) {
	primary := &scriptedAdapter{intentErr: errors.New("boom")}
	fallback := &scriptedAdapter{intent: Intent{Action: ActionRent}}
	adapter := NewFallbackAdapter(primary, fallback, nil)

	intent, err := adapter.AnalyzeIntent(context.Background(), "msg")

	require.NoError(t, err)
	assert.Equal(t, ActionRent, intent.Action)
}

func TestFallbackBothFailingYieldsNeutral(t *testing.T) {
	primary := &scriptedAdapter{intentErr: errors.New("boom")}
	fallback := &scriptedAdapter{intentErr: errors.New("also boom")}
	adapter := NewFallbackAdapter(primary, fallback, nil)

	intent, err := adapter.AnalyzeIntent(context.Background(), "msg")

	require.Error(t, err)
	assert.Equal(t, Neutral(), intent)
}

func TestFallbackWithoutSecondaryReturnsPrimaryError(t *testing.T) {
	wantErr := errors.New("boom")
	adapter := NewFallbackAdapter(&scriptedAdapter{intentErr: wantErr}, nil, nil)

	_, err := adapter.AnalyzeIntent(context.Background(), "msg")

	assert.ErrorIs(t, err, wantErr)
}

func TestFallbackTranscribeKeepsPrimaryErrorWhenFallbackUnavailable(t *testing.T) {
	primary := &scriptedAdapter{transcriptErr: errors.New("timeout")}
	fallback := &scriptedAdapter{transcriptErr: ErrUnavailable}
	adapter := NewFallbackAdapter(primary, fallback, nil)

	_, err := adapter.Transcribe(context.Background(), []byte("x"), "audio/ogg")

	assert.EqualError(t, err, "timeout")
}

func TestDisabledAdapter(t *testing.T) {
	var adapter Adapter = Disabled{}

	intent, err := adapter.AnalyzeIntent(context.Background(), "oi")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, Neutral(), intent)

	_, err = adapter.Transcribe(context.Background(), []byte("x"), "audio/ogg")
	assert.ErrorIs(t, err, ErrUnavailable)
}
