package keyphrase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/lukawang/emoscope-go/internal/config"
)

// groqExtractor extracts key phrases using Groq's OpenAI-compatible API.
// It implements the Extractor interface.
type groqExtractor struct {
	client openai.Client
	model  string
}

// newGroqExtractor creates a Groq-based extractor.
// Returns nil if apiKey is empty (provider disabled).
func newGroqExtractor(apiKey, model string) (*groqExtractor, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	if model == "" {
		model = DefaultGroqModel
	}

	client := openai.NewClient(
		option.WithBaseURL(groqBaseURL),
		option.WithAPIKey(apiKey),
	)

	return &groqExtractor{
		client: client,
		model:  model,
	}, nil
}

// Extract returns ranked key phrases for text.
func (e *groqExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	if e == nil {
		return nil, fmt.Errorf("groq extractor not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, config.KeyphraseRequest)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(extractionPrompt(text)),
		},
		Temperature: openai.Float(0.1), // Low temperature for consistent extraction
		MaxTokens:   openai.Int(100),
	}

	start := time.Now()
	resp, err := e.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "keyphrase extraction API call failed",
			"provider", ProviderGroq,
			"model", e.model,
			"text_length", len(text),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty response from groq")
	}

	phrases := parsePhrases(resp.Choices[0].Message.Content, MaxKeyphrases)
	if len(phrases) == 0 {
		return nil, fmt.Errorf("no phrases in groq response")
	}

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "keyphrase extraction completed",
			"provider", ProviderGroq,
			"model", e.model,
			"total_tokens", resp.Usage.TotalTokens,
			"duration_ms", duration.Milliseconds(),
			"phrase_count", len(phrases))
	}

	return phrases, nil
}

// Provider returns the provider type for this extractor.
func (e *groqExtractor) Provider() Provider {
	return ProviderGroq
}
