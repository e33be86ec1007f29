// Package nlu provides best-effort natural-language understanding for
// the dialogue engine: voice-note transcription and intent analysis.
// Every implementation is optional; callers fall back to deterministic
// menu logic when an adapter is absent or fails.
package nlu

import (
	"context"
	"errors"
)

// ErrUnavailable signals that no NLU capability is configured for the
// requested operation.
var ErrUnavailable = errors.New("nlu: adapter unavailable")

// Intent actions.
const (
	ActionBuy   = "buy"
	ActionRent  = "rent"
	ActionSell  = "sell"
	ActionVisit = "visit"
	ActionInfo  = "info"
	ActionOther = "other"
)

// PropertyAny is the neutral property type.
const PropertyAny = "any"

// PriceRange bounds a budget mentioned in free text. Zero means unset.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Intent is the structured reading of one user message.
type Intent struct {
	Action       string     `json:"intent"`
	PropertyType string     `json:"propertyType"`
	Location     string     `json:"location"`
	PriceRange   PriceRange `json:"priceRange"`
	Bedrooms     int        `json:"bedrooms"`
	Features     []string   `json:"features"`
	Urgency      string     `json:"urgency"`
	Sentiment    string     `json:"sentiment"`
}

// Neutral returns the documented default intent used whenever analysis
// is unavailable or fails.
func Neutral() Intent {
	return Intent{
		Action:       ActionOther,
		PropertyType: PropertyAny,
		Sentiment:    "neutral",
	}
}

// Adapter is the capability interface for language understanding.
type Adapter interface {
	// Transcribe converts a voice note to text.
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	// AnalyzeIntent extracts a structured intent from free text.
	AnalyzeIntent(ctx context.Context, text string) (Intent, error)
}

// Disabled is the null-object Adapter used when no provider is
// configured. The engine behaves identically whether the adapter is
// Disabled or a real adapter that errors.
type Disabled struct{}

// Transcribe always reports the adapter as unavailable.
func (Disabled) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return "", ErrUnavailable
}

// AnalyzeIntent returns the neutral intent.
func (Disabled) AnalyzeIntent(ctx context.Context, text string) (Intent, error) {
	return Neutral(), ErrUnavailable
}
