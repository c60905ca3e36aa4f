package inference

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "github.com/lukawang/emoscope-go/internal/errors"
	"github.com/lukawang/emoscope-go/internal/logger"
	"github.com/lukawang/emoscope-go/internal/metrics"
)

func newTestClient(baseURL string) *Client {
	log := logger.NewWithWriter("error", io.Discard)
	m := metrics.New(prometheus.NewRegistry())
	return New("test-key", baseURL, 300, log, m)
}

func TestEmotionScores(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "j-hartmann/emotion-english-distilroberta-base") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}

		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Inputs != "I am thrilled" {
			t.Errorf("Inputs = %q", req.Inputs)
		}
		if !req.Options.WaitForModel {
			t.Error("wait_for_model should be set")
		}

		_, _ = w.Write([]byte(`[[{"label":"joy","score":0.92},{"label":"surprise","score":0.05}]]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	scores, err := client.EmotionScores(context.Background(), "I am thrilled")
	if err != nil {
		t.Fatalf("EmotionScores failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if scores[0].Label != "joy" || scores[0].Score != 0.92 {
		t.Errorf("scores[0] = %+v", scores[0])
	}
}

func TestSentiment_PicksTopLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[{"label":"NEGATIVE","score":0.1},{"label":"POSITIVE","score":0.9}]]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	sentiment, err := client.Sentiment(context.Background(), "great day")
	if err != nil {
		t.Fatalf("Sentiment failed: %v", err)
	}
	if sentiment.Label != "POSITIVE" || sentiment.Score != 0.9 {
		t.Errorf("Sentiment = %+v, want POSITIVE/0.9", sentiment)
	}
}

func TestClassify_FlatResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"POSITIVE","score":0.99}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	sentiment, err := client.Sentiment(context.Background(), "fine")
	if err != nil {
		t.Fatalf("Sentiment failed: %v", err)
	}
	if sentiment.Label != "POSITIVE" {
		t.Errorf("Sentiment = %+v", sentiment)
	}
}

func TestClassify_RetriesOnModelLoading(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
			return
		}
		_, _ = w.Write([]byte(`[[{"label":"anger","score":0.8}]]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	scores, err := client.EmotionScores(context.Background(), "furious")
	if err != nil {
		t.Fatalf("EmotionScores failed after retry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
	if scores[0].Label != "anger" {
		t.Errorf("scores[0] = %+v", scores[0])
	}
}

func TestClassify_AuthErrorNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.EmotionScores(context.Background(), "text")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("401 should not be retried, got %d attempts", attempts)
	}

	var infErr *apperrors.InferenceError
	if !apperrors.As(err, &infErr) {
		t.Fatalf("Expected InferenceError, got %T", err)
	}
	if infErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", infErr.StatusCode)
	}
	if !apperrors.Is(err, apperrors.ErrClassifierUnavailable) {
		t.Error("Expected error chain to include ErrClassifierUnavailable")
	}
}

func TestClassify_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[]]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.EmotionScores(context.Background(), "text"); err == nil {
		t.Error("Expected error for empty result, got nil")
	}
}

func TestClassify_ContextCanceled(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.EmotionScores(ctx, "text"); err == nil {
		t.Error("Expected error for canceled context, got nil")
	}
}

func TestParseScores_Invalid(t *testing.T) {
	if _, err := parseScores([]byte(`{"error":"nope"}`)); err == nil {
		t.Error("Expected error for object response, got nil")
	}
	if _, err := parseScores([]byte(`[]`)); err == nil {
		t.Error("Expected error for empty list, got nil")
	}
}
