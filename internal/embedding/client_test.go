package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", 1000)
	if client == nil {
		t.Fatal("NewClient returned nil")
	}
	if client.apiKey != "test-api-key" {
		t.Errorf("apiKey = %q, want %q", client.apiKey, "test-api-key")
	}
	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
	if client.rateLimiter == nil {
		t.Error("rateLimiter is nil")
	}
}

func TestClient_IsConfigured(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{name: "configured", apiKey: "valid-key", want: true},
		{name: "empty key", apiKey: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.apiKey, 1000)
			if got := client.IsConfigured(); got != tt.want {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_EmbedBatch_EmptyKey(t *testing.T) {
	client := NewClient("", 1000)

	_, err := client.EmbedBatch(context.Background(), []string{"test text"})
	if err == nil {
		t.Error("Expected error for empty API key, got nil")
	}
}

func TestClient_EmbedBatch_EmptyInput(t *testing.T) {
	client := NewClient("test-key", 1000)

	if _, err := client.EmbedBatch(context.Background(), nil); err == nil {
		t.Error("Expected error for empty input, got nil")
	}
	if _, err := client.EmbedBatch(context.Background(), []string{"ok", "   "}); err == nil {
		t.Error("Expected error for whitespace-only text, got nil")
	}
}

func TestClient_EmbedBatch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req batchEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Requests) != 2 {
			t.Errorf("Expected 2 requests in batch, got %d", len(req.Requests))
		}

		resp := batchEmbedResponse{}
		resp.Embeddings = []struct {
			Values []float32 `json:"values"`
		}{
			{Values: []float32{1, 0}},
			{Values: []float32{0, 1}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", 1000)
	client.baseURL = server.URL

	vectors, err := client.EmbedBatch(context.Background(), []string{"joy", "grief"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("Expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != 1 || vectors[1][1] != 1 {
		t.Errorf("Vectors not index-aligned with input: %v", vectors)
	}
}

func TestClient_EmbedBatch_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := batchEmbedResponse{}
		resp.Embeddings = []struct {
			Values []float32 `json:"values"`
		}{
			{Values: []float32{1, 0}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", 1000)
	client.baseURL = server.URL

	if _, err := client.EmbedBatch(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("Expected error for embedding count mismatch, got nil")
	}
}

func TestClient_EmbedBatch_RetryOn503(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		resp := batchEmbedResponse{}
		resp.Embeddings = []struct {
			Values []float32 `json:"values"`
		}{
			{Values: []float32{0.5}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", 1000)
	client.baseURL = server.URL

	vectors, err := client.EmbedBatch(context.Background(), []string{"anger"})
	if err != nil {
		t.Fatalf("EmbedBatch failed after retry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
	if len(vectors) != 1 {
		t.Errorf("Expected 1 vector, got %d", len(vectors))
	}
}

func TestClient_EmbedBatch_NonRetryableAPIError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		resp := batchEmbedResponse{}
		resp.Error = &struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		}{Code: 400, Message: "bad request", Status: "INVALID_ARGUMENT"}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", 1000)
	client.baseURL = server.URL

	if _, err := client.EmbedBatch(context.Background(), []string{"anger"}); err == nil {
		t.Error("Expected error for API error response, got nil")
	}
	if attempts != 1 {
		t.Errorf("Non-retryable error should not be retried, got %d attempts", attempts)
	}
}

func TestClient_Embed_ContextCanceled(t *testing.T) {
	client := NewClient("test-key", 1000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Embed(ctx, "test text"); err == nil {
		t.Error("Expected error for canceled context, got nil")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "length mismatch", a: []float32{1, 0}, b: []float32{1}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarity_KnownAngle(t *testing.T) {
	// 45 degree angle between unit vectors
	a := []float32{1, 0}
	b := []float32{float32(math.Sqrt2 / 2), float32(math.Sqrt2 / 2)}

	got := CosineSimilarity(a, b)
	want := math.Sqrt2 / 2
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("CosineSimilarity() = %v, want %v", got, want)
	}
}
