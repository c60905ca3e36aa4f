package analyze

import (
	"github.com/lukawang/emoscope-go/internal/emotion"
	"github.com/lukawang/emoscope-go/internal/scholar"
)

// Report is the full analysis response. Slice fields are always non-nil so
// the serialized form is stable: absent data is an empty list, never null.
type Report struct {
	Sentiment       Sentiment          `json:"sentiment"`
	PrimaryEmotion  PrimaryEmotion     `json:"primary_emotion"`
	Secondary       []emotion.Score    `json:"secondary_emotions"`
	Complexity      Complexity         `json:"emotional_complexity"`
	KeywordInsights KeywordInsights    `json:"keyword_insights"`
	AcademicSources []scholar.Paper    `json:"academic_sources"`
	FullBreakdown   map[string]float64 `json:"full_breakdown"`
}

// Sentiment is the polarity classification.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// PrimaryEmotion is the top-ranked emotion with its intensity bucket.
type PrimaryEmotion struct {
	Label     string  `json:"label"`
	Score     float64 `json:"score"`
	Intensity string  `json:"intensity"`
}

// Complexity annotates how concentrated or mixed the emotional signal is.
type Complexity struct {
	IsMixed        bool    `json:"is_mixed"`
	DiversityScore float64 `json:"diversity_score"`
}

// KeywordInsights ties extracted phrases to the detected emotions.
type KeywordInsights struct {
	KeyPhrases        []string `json:"key_phrases"`
	EmotionalTriggers []string `json:"emotional_triggers"`
}
