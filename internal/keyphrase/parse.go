package keyphrase

import (
	"strings"

	"github.com/lukawang/emoscope-go/internal/sliceutil"
)

// parsePhrases turns raw LLM output into a clean phrase list. It tolerates
// the common deviations from the prompt contract: comma-separated output,
// numbered or bulleted lines, stray quoting, mixed case.
func parsePhrases(raw string, max int) []string {
	separators := func(r rune) bool {
		return r == '\n' || r == ','
	}

	phrases := make([]string, 0, max)
	for _, part := range strings.FieldsFunc(raw, separators) {
		phrase := cleanPhrase(part)
		if phrase == "" {
			continue
		}
		// One or two words only, longer fragments are usually commentary
		if len(strings.Fields(phrase)) > 2 {
			continue
		}
		phrases = append(phrases, phrase)
	}

	phrases = sliceutil.Deduplicate(phrases, func(s string) string { return s })
	if len(phrases) > max {
		phrases = phrases[:max]
	}
	return phrases
}

// cleanPhrase strips list markers and quoting from one candidate line.
func cleanPhrase(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-*•0123456789.) ")
	s = strings.Trim(s, "\"'`")
	return strings.ToLower(strings.TrimSpace(s))
}
