// Package lexicon looks up dictionary synonyms for single terms via the
// Datamuse word-finding API.
package lexicon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lukawang/emoscope-go/internal/config"
	"github.com/lukawang/emoscope-go/internal/sliceutil"
)

const (
	// datamuseBaseURL is the public Datamuse API endpoint.
	datamuseBaseURL = "https://api.datamuse.com"

	// maxCandidates caps how many synonym candidates one lookup returns.
	maxCandidates = 25
)

// Client fetches synonym candidates from Datamuse.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Datamuse client. baseURL falls back to the public API
// when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = datamuseBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: config.LexiconRequest,
		},
	}
}

// word is one entry in a Datamuse response.
type word struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Synonyms returns normalized synonym candidates for term, in API relevance
// order. Multi-word entries keep their spaces; underscores become spaces.
func (c *Client) Synonyms(ctx context.Context, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("empty term")
	}

	query := url.Values{}
	query.Set("rel_syn", term)
	query.Set("max", fmt.Sprintf("%d", maxCandidates))

	reqURL := fmt.Sprintf("%s/words?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from datamuse", resp.StatusCode)
	}

	var words []word
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candidates := make([]string, 0, len(words))
	for _, w := range words {
		normalized := normalize(w.Word)
		if normalized == "" {
			continue
		}
		candidates = append(candidates, normalized)
	}

	return sliceutil.Deduplicate(candidates, func(s string) string { return s }), nil
}

func normalize(w string) string {
	w = strings.ToLower(strings.TrimSpace(w))
	return strings.ReplaceAll(w, "_", " ")
}
