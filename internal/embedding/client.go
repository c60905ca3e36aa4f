// Package embedding provides text embedding generation via the Gemini
// embedding API, used to score candidate synonyms against their source term.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lukawang/emoscope-go/internal/config"
	"github.com/lukawang/emoscope-go/internal/ratelimit"
)

const (
	// GeminiEmbeddingModel is the model used for generating embeddings
	GeminiEmbeddingModel = "gemini-embedding-001"

	// GeminiEmbeddingDimensions is the output dimension (768 default, supports MRL truncation)
	GeminiEmbeddingDimensions = 768

	// geminiAPIBaseURL is the base URL for the Gemini API
	geminiAPIBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	// Retry configuration for transient errors
	defaultMaxRetries    = 3
	defaultInitialDelay  = 1 * time.Second
	defaultBackoffFactor = 2.0
	defaultJitterFactor  = 0.25
)

// Client generates embedding vectors using the Gemini batch embedding API.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	rateLimiter *ratelimit.Limiter
}

// NewClient creates a new Gemini embedding client.
// requestsPerMinute bounds the outgoing request rate.
func NewClient(apiKey string, requestsPerMinute float64) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: geminiAPIBaseURL,
		httpClient: &http.Client{
			Timeout: config.EmbeddingRequest,
		},
		rateLimiter: ratelimit.NewPerMinute(requestsPerMinute),
	}
}

// batchEmbedRequest represents the request body for the batchEmbedContents endpoint
type batchEmbedRequest struct {
	Requests []embedRequest `json:"requests"`
}

type embedRequest struct {
	Model   string       `json:"model"`
	Content embedContent `json:"content"`
}

type embedContent struct {
	Parts []embedPart `json:"parts"`
}

type embedPart struct {
	Text string `json:"text"`
}

// batchEmbedResponse represents the response from the batchEmbedContents endpoint
type batchEmbedResponse struct {
	Embeddings []struct {
		Values []float32 `json:"values"`
	} `json:"embeddings"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Embed generates an embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embedding vectors for the given texts in a single
// request. The returned slice is index-aligned with the input.
// Uses exponential backoff with jitter for transient errors (429, 500+).
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to embed")
	}
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("empty text cannot be embedded")
		}
	}

	var lastErr error
	delay := defaultInitialDelay

	for attempt := 0; attempt <= defaultMaxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		result, retryable, err := c.embedOnce(ctx, texts)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !retryable {
			return nil, err
		}

		if attempt == defaultMaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.applyJitter(delay)):
		}

		delay = time.Duration(float64(delay) * defaultBackoffFactor)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// embedOnce performs a single batch embedding request.
// Returns (result, retryable, error) - error is last per Go convention
func (c *Client) embedOnce(ctx context.Context, texts []string) ([][]float32, bool, error) {
	url := fmt.Sprintf("%s/%s:batchEmbedContents?key=%s", c.baseURL, GeminiEmbeddingModel, c.apiKey)

	reqBody := batchEmbedRequest{
		Requests: make([]embedRequest, 0, len(texts)),
	}
	for _, text := range texts {
		reqBody.Requests = append(reqBody.Requests, embedRequest{
			Model: fmt.Sprintf("models/%s", GeminiEmbeddingModel),
			Content: embedContent{
				Parts: []embedPart{{Text: text}},
			},
		})
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, false, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network errors are retryable
		return nil, true, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("HTTP %d: server error or rate limited", resp.StatusCode)
	}

	var embedResp batchEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}

	if embedResp.Error != nil {
		retryable := embedResp.Error.Code == http.StatusTooManyRequests ||
			embedResp.Error.Status == "RESOURCE_EXHAUSTED" ||
			embedResp.Error.Code >= 500

		return nil, retryable, fmt.Errorf("API error %d: %s - %s",
			embedResp.Error.Code,
			embedResp.Error.Status,
			embedResp.Error.Message)
	}

	if len(embedResp.Embeddings) != len(texts) {
		return nil, false, fmt.Errorf("embedding count mismatch: got %d, want %d",
			len(embedResp.Embeddings), len(texts))
	}

	vectors := make([][]float32, 0, len(embedResp.Embeddings))
	for i, emb := range embedResp.Embeddings {
		if len(emb.Values) == 0 {
			return nil, false, fmt.Errorf("empty embedding at index %d", i)
		}
		vectors = append(vectors, emb.Values)
	}

	return vectors, false, nil
}

// applyJitter adds random jitter to delay (±25%)
func (c *Client) applyJitter(delay time.Duration) time.Duration {
	jitter := float64(time.Now().UnixNano()%1000) / 1000.0 // 0.0 to 0.999
	jitter = (jitter - 0.5) * 2 * defaultJitterFactor      // -0.25 to +0.25
	return time.Duration(float64(delay) * (1 + jitter))
}

// IsConfigured returns true if the API key is set
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}
