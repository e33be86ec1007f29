package nlu

import (
	"context"

	"github.com/imobiliariaxyz/bot-corretor/pkg/logging"
)

// FallbackAdapter wraps a primary Adapter with a fallback provider.
// If the primary fails, it automatically retries with the fallback.
type FallbackAdapter struct {
	primary  Adapter
	fallback Adapter
	logger   *logging.Logger
}

// NewFallbackAdapter creates a fallback-enabled Adapter. If fallback is
// nil, only the primary provider is used.
func NewFallbackAdapter(primary, fallback Adapter, logger *logging.Logger) *FallbackAdapter {
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackAdapter{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Transcribe tries the primary provider, then the fallback.
func (a *FallbackAdapter) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	text, err := a.primary.Transcribe(ctx, audio, mimeType)
	if err == nil {
		return text, nil
	}
	if a.fallback == nil {
		return "", err
	}

	a.logger.Warn("primary transcription failed, attempting fallback", "error", err)
	fallbackText, fallbackErr := a.fallback.Transcribe(ctx, audio, mimeType)
	if fallbackErr != nil {
		return "", err
	}
	return fallbackText, nil
}

// AnalyzeIntent tries the primary provider, then the fallback.
func (a *FallbackAdapter) AnalyzeIntent(ctx context.Context, text string) (Intent, error) {
	intent, err := a.primary.AnalyzeIntent(ctx, text)
	if err == nil {
		return intent, nil
	}

	a.logger.Warn("primary intent analysis failed, attempting fallback",
		"error", err.Error(),
		"fallback_available", a.fallback != nil,
	)

	if a.fallback == nil {
		return Neutral(), err
	}

	fallbackIntent, fallbackErr := a.fallback.AnalyzeIntent(ctx, text)
	if fallbackErr != nil {
		a.logger.Error("fallback intent analysis also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return Neutral(), fallbackErr
	}

	a.logger.Info("fallback intent analysis succeeded after primary failure")
	return fallbackIntent, nil
}
