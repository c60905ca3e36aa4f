package keyphrase

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// fallbackExtractor wraps a primary and a fallback Extractor. The fallback
// is tried once the primary fails for any reason; when both fail, the
// primary's error wins since that is the configured provider.
type fallbackExtractor struct {
	primary  Extractor
	fallback Extractor
}

// newFallbackExtractor creates a fallback-enabled extractor.
// fallback may be nil, which degrades to the primary alone.
func newFallbackExtractor(primary, fallback Extractor) *fallbackExtractor {
	return &fallbackExtractor{
		primary:  primary,
		fallback: fallback,
	}
}

// Extract tries the primary extractor first, then the fallback.
func (f *fallbackExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	start := time.Now()

	phrases, primaryErr := f.primary.Extract(ctx, text)
	if primaryErr == nil {
		return phrases, nil
	}

	if f.fallback == nil || ctx.Err() != nil {
		return nil, primaryErr
	}

	slog.WarnContext(ctx, "falling back to secondary keyphrase provider",
		"from", f.primary.Provider(),
		"to", f.fallback.Provider(),
		"error", primaryErr)

	phrases, fallbackErr := f.fallback.Extract(ctx, text)
	if fallbackErr == nil {
		return phrases, nil
	}

	slog.ErrorContext(ctx, "all keyphrase providers failed",
		"primary", f.primary.Provider(),
		"fallback", f.fallback.Provider(),
		"duration", time.Since(start),
		"error", fallbackErr)

	return nil, fmt.Errorf("all providers failed: %w", primaryErr)
}

// Provider returns the primary provider type.
func (f *fallbackExtractor) Provider() Provider {
	return f.primary.Provider()
}
