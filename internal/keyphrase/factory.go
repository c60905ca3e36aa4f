package keyphrase

import (
	"context"
	"fmt"
	"log/slog"
)

// NewExtractor creates the extractor chain: Gemini primary, Groq fallback
// when its key is configured. At least one provider key is required.
func NewExtractor(ctx context.Context, geminiAPIKey, groqAPIKey string) (Extractor, error) {
	var primary, fallback Extractor

	if geminiAPIKey != "" {
		g, err := newGeminiExtractor(ctx, geminiAPIKey, "")
		if err != nil {
			return nil, fmt.Errorf("create gemini extractor: %w", err)
		}
		primary = g
	}

	if groqAPIKey != "" {
		g, err := newGroqExtractor(groqAPIKey, "")
		if err != nil {
			return nil, fmt.Errorf("create groq extractor: %w", err)
		}
		if primary == nil {
			primary = g
		} else {
			fallback = g
		}
	}

	if primary == nil {
		return nil, fmt.Errorf("no keyphrase provider configured")
	}

	if fallback == nil {
		slog.InfoContext(ctx, "keyphrase extraction configured without fallback provider",
			"provider", primary.Provider())
	}

	return newFallbackExtractor(primary, fallback), nil
}
