package keyphrase

import "fmt"

// extractionPrompt builds the instruction for one extraction call. The
// output contract (one phrase per line, no numbering) is what parsePhrases
// expects; keep the two in sync.
func extractionPrompt(text string) string {
	return fmt.Sprintf(`Extract the %d most important key phrases from the text below.

Rules:
- Each phrase is one or two words.
- Lowercase everything.
- Skip stop words and filler (articles, pronouns, conjunctions).
- Order by importance, most important first.
- Output ONLY the phrases, one per line. No numbering, no commentary.

Text:
%s`, MaxKeyphrases, text)
}
