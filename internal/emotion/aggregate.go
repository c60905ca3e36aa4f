package emotion

import (
	"sort"
	"strings"

	apperrors "github.com/lukawang/emoscope-go/internal/errors"
)

const (
	// MixedGapThreshold is the maximum gap between the top two scores
	// for the result to count as emotionally mixed.
	MixedGapThreshold = 0.2

	// DiversityFloor is the minimum score for an emotion to count as an
	// active signal in the diversity ratio.
	DiversityFloor = 0.1

	// TopEmotionsForTriggers bounds how many ranked emotions are matched
	// against keywords when detecting triggers.
	TopEmotionsForTriggers = 5
)

// Aggregation is the ranked, annotated view of a raw classifier output.
type Aggregation struct {
	Primary        Score
	Secondary      []Score
	IsMixed        bool
	DiversityScore float64
}

// Aggregate ranks raw classifier scores and derives the profile annotations.
// Ranking is stable so equal scores keep the classifier's original order.
func Aggregate(scores []Score) (Aggregation, error) {
	if len(scores) == 0 {
		return Aggregation{}, apperrors.ErrClassifierUnavailable
	}

	ranked := make([]Score, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	agg := Aggregation{
		Primary:   ranked[0],
		Secondary: make([]Score, 0, len(ranked)-1),
	}
	agg.Secondary = append(agg.Secondary, ranked[1:]...)

	if len(ranked) > 1 && ranked[0].Score-ranked[1].Score < MixedGapThreshold {
		agg.IsMixed = true
	}

	active := 0
	for _, s := range ranked {
		if s.Score > DiversityFloor {
			active++
		}
	}
	agg.DiversityScore = Round3(float64(active) / float64(len(ranked)))

	return agg, nil
}

// Ranked returns the primary followed by the secondary emotions.
func (a Aggregation) Ranked() []Score {
	ranked := make([]Score, 0, len(a.Secondary)+1)
	ranked = append(ranked, a.Primary)
	ranked = append(ranked, a.Secondary...)
	return ranked
}

// Intensity buckets a score into a coarse qualitative label.
func Intensity(score float64) string {
	switch {
	case score >= 0.9:
		return "very high"
	case score >= 0.7:
		return "high"
	case score >= 0.5:
		return "moderate"
	default:
		return "low"
	}
}

// Triggers returns the keywords whose lowercase text contains the label of
// any of the top ranked emotions as a substring. This is a lexical
// heuristic: it links wording to detected affect, not cause to effect.
func Triggers(keywords []string, ranked []Score) []string {
	top := ranked
	if len(top) > TopEmotionsForTriggers {
		top = top[:TopEmotionsForTriggers]
	}

	triggers := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		for _, s := range top {
			if strings.Contains(lower, s.Label) {
				triggers = append(triggers, kw)
				break
			}
		}
	}
	return triggers
}
