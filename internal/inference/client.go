// Package inference calls hosted text classification models over the
// Hugging Face Inference API: one multi-label emotion classifier and one
// binary sentiment classifier.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lukawang/emoscope-go/internal/config"
	"github.com/lukawang/emoscope-go/internal/emotion"
	apperrors "github.com/lukawang/emoscope-go/internal/errors"
	"github.com/lukawang/emoscope-go/internal/logger"
	"github.com/lukawang/emoscope-go/internal/metrics"
	"github.com/lukawang/emoscope-go/internal/ratelimit"
)

const (
	// EmotionModel is the multi-label emotion classifier.
	EmotionModel = "j-hartmann/emotion-english-distilroberta-base"

	// SentimentModel is the binary sentiment classifier.
	SentimentModel = "distilbert/distilbert-base-uncased-finetuned-sst-2-english"

	// hfAPIBaseURL is the base URL for the Hugging Face Inference API.
	hfAPIBaseURL = "https://api-inference.huggingface.co/models"

	// Retry configuration. 503 means the model is still loading server-side,
	// which resolves within a few seconds for these small models.
	maxRetries   = 3
	initialDelay = 2 * time.Second
)

// Client calls text classification models hosted on the Inference API.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	rateLimiter *ratelimit.Limiter
	log         *logger.Logger
	metrics     *metrics.Metrics
}

// New creates an inference client. requestsPerMinute bounds the combined
// outgoing rate across both models.
func New(apiKey, baseURL string, requestsPerMinute float64, log *logger.Logger, m *metrics.Metrics) *Client {
	if baseURL == "" {
		baseURL = hfAPIBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: config.InferenceRequest,
		},
		rateLimiter: ratelimit.NewPerMinute(requestsPerMinute),
		log:         log.WithComponent("inference"),
		metrics:     m,
	}
}

// classifyRequest is the Inference API request body.
type classifyRequest struct {
	Inputs  string `json:"inputs"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// apiError is the Inference API error body.
type apiError struct {
	Error string `json:"error"`
}

// EmotionScores classifies text into per-label emotion scores. The returned
// slice carries every label the model emits, in model order.
func (c *Client) EmotionScores(ctx context.Context, text string) ([]emotion.Score, error) {
	scores, err := c.classify(ctx, EmotionModel, text)
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// Sentiment classifies text into a single polarity label with confidence.
func (c *Client) Sentiment(ctx context.Context, text string) (emotion.Score, error) {
	scores, err := c.classify(ctx, SentimentModel, text)
	if err != nil {
		return emotion.Score{}, err
	}

	// The sentiment model returns all labels; the polarity is the top one.
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, nil
}

func (c *Client) classify(ctx context.Context, model, text string) ([]emotion.Score, error) {
	start := time.Now()
	scores, err := c.classifyWithRetry(ctx, model, text)
	duration := time.Since(start).Seconds()

	if err != nil {
		c.metrics.RecordClassifierRequest(model, "error", duration)
		c.log.WithError(err).WithField("model", model).Error("Classification failed")
		return nil, err
	}

	c.metrics.RecordClassifierRequest(model, "success", duration)
	return scores, nil
}

func (c *Client) classifyWithRetry(ctx context.Context, model, text string) ([]emotion.Score, error) {
	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		scores, retryable, err := c.classifyOnce(ctx, model, text)
		if err == nil {
			return scores, nil
		}

		lastErr = err

		if !retryable || attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, lastErr
}

// classifyOnce performs a single classification request.
// Returns (scores, retryable, error) - error is last per Go convention
func (c *Client) classifyOnce(ctx context.Context, model, text string) ([]emotion.Score, bool, error) {
	reqBody := classifyRequest{Inputs: text}
	reqBody.Options.WaitForModel = true

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, false, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, apperrors.NewInferenceError(model, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, apperrors.NewInferenceError(model, resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		_ = json.Unmarshal(body, &apiErr)
		err := apperrors.NewInferenceError(model, resp.StatusCode,
			fmt.Errorf("%s: %w", apiErr.Error, apperrors.ErrClassifierUnavailable))

		// 503 is a loading model, 429 is rate limiting.
		retryable := resp.StatusCode == http.StatusServiceUnavailable ||
			resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode >= 500
		return nil, retryable, err
	}

	scores, err := parseScores(body)
	if err != nil {
		return nil, false, apperrors.NewInferenceError(model, resp.StatusCode, err)
	}
	return scores, false, nil
}

// parseScores handles the classification response shape: a list of
// per-input results, each a list of {label, score}. Single-input requests
// yield exactly one inner list.
func parseScores(body []byte) ([]emotion.Score, error) {
	var nested [][]emotion.Score
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, fmt.Errorf("empty classification result")
		}
		return nested[0], nil
	}

	// Some models return a flat list for single inputs.
	var flat []emotion.Score
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("empty classification result")
	}
	return flat, nil
}
