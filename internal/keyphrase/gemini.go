package keyphrase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/lukawang/emoscope-go/internal/config"
)

// geminiExtractor extracts key phrases using the Gemini API.
// It implements the Extractor interface.
type geminiExtractor struct {
	client *genai.Client
	model  string
}

// newGeminiExtractor creates a Gemini-based extractor.
// Returns nil if apiKey is empty (provider disabled).
func newGeminiExtractor(ctx context.Context, apiKey, model string) (*geminiExtractor, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiExtractor{
		client: client,
		model:  model,
	}, nil
}

// Extract returns ranked key phrases for text.
func (e *geminiExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	if e == nil || e.client == nil {
		return nil, fmt.Errorf("gemini extractor not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, config.KeyphraseRequest)
	defer cancel()

	prompt := extractionPrompt(text)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.1), // Low temperature for consistent extraction
		MaxOutputTokens: 100,
	}

	start := time.Now()
	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "keyphrase extraction API call failed",
			"provider", ProviderGemini,
			"model", e.model,
			"text_length", len(text),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var output strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			output.WriteString(part.Text)
		}
	}

	phrases := parsePhrases(output.String(), MaxKeyphrases)
	if len(phrases) == 0 {
		return nil, fmt.Errorf("no phrases in gemini response")
	}

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "keyphrase extraction completed",
			"provider", ProviderGemini,
			"model", e.model,
			"total_tokens", resp.UsageMetadata.TotalTokenCount,
			"duration_ms", duration.Milliseconds(),
			"phrase_count", len(phrases))
	}

	return phrases, nil
}

// Provider returns the provider type for this extractor.
func (e *geminiExtractor) Provider() Provider {
	return ProviderGemini
}
