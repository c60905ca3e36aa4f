package keyphrase

import (
	"reflect"
	"strings"
	"testing"
)

func TestParsePhrases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "one per line",
			raw:  "grief\nlost friend\nhealing",
			want: []string{"grief", "lost friend", "healing"},
		},
		{
			name: "comma separated",
			raw:  "grief, lost friend, healing",
			want: []string{"grief", "lost friend", "healing"},
		},
		{
			name: "numbered list",
			raw:  "1. grief\n2. lost friend\n3) healing",
			want: []string{"grief", "lost friend", "healing"},
		},
		{
			name: "bulleted and quoted",
			raw:  "- \"grief\"\n* 'healing'",
			want: []string{"grief", "healing"},
		},
		{
			name: "mixed case folds",
			raw:  "Grief\nLOST FRIEND",
			want: []string{"grief", "lost friend"},
		},
		{
			name: "long fragments dropped",
			raw:  "grief\nhere are the key phrases you asked for\nhealing",
			want: []string{"grief", "healing"},
		},
		{
			name: "duplicates collapse",
			raw:  "grief\nGrief\nhealing",
			want: []string{"grief", "healing"},
		},
		{
			name: "blank lines ignored",
			raw:  "\n\ngrief\n\n",
			want: []string{"grief"},
		},
		{
			name: "empty input",
			raw:  "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePhrases(tt.raw, MaxKeyphrases)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parsePhrases(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParsePhrases_CapsAtMax(t *testing.T) {
	raw := "one\ntwo\nthree\nfour\nfive\nsix\nseven"
	got := parsePhrases(raw, MaxKeyphrases)
	if len(got) != MaxKeyphrases {
		t.Errorf("Expected %d phrases, got %d: %v", MaxKeyphrases, len(got), got)
	}
}

func TestExtractionPrompt(t *testing.T) {
	prompt := extractionPrompt("I miss my friend")

	if !strings.Contains(prompt, "I miss my friend") {
		t.Error("Prompt does not include the input text")
	}
	if !strings.Contains(prompt, "5") {
		t.Error("Prompt does not state the phrase limit")
	}
	if !strings.Contains(prompt, "one per line") {
		t.Error("Prompt does not state the output contract")
	}
}
