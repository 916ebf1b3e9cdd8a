package textutil

import (
	"math"
	"strings"
	"testing"
)

func TestLexicalScoreBasicMatch(t *testing.T) {
	query := "Project updates"
	text := "The project timeline lists recent updates for the project. These updates cover scope."
	score := LexicalScore(query, text, "Planning")

	if score <= 0 {
		t.Fatalf("expected score to be positive, got %f", score)
	}
	if score > maxLexicalScore {
		t.Fatalf("score should be clamped to maxLexicalScore, got %f", score)
	}
}

func TestLexicalScoreTitleBonus(t *testing.T) {
	query := "database"
	text := "General context without the keyword."
	score := LexicalScore(query, text, "Database Layer")

	if math.Abs(score-titleMatchBonus) > 0.0001 {
		t.Fatalf("expected title bonus only (%f), got %f", titleMatchBonus, score)
	}
}

func TestLexicalScoreStopwordsRemoved(t *testing.T) {
	score := LexicalScore("the and of", "the and of", "")
	if score != 0 {
		t.Fatalf("expected score 0 when query tokens are only stopwords, got %f", score)
	}
}

func TestLexicalScoreNormalization(t *testing.T) {
	text := "project " + strings.Repeat(" filler", 200)
	score := LexicalScore("project", text, "")

	if score <= 0 {
		t.Fatalf("expected normalized score to stay positive, got %f", score)
	}
	if score > maxLexicalScore {
		t.Fatalf("expected score to be clamped to %f, got %f", maxLexicalScore, score)
	}
}

func TestQueryTermsDeduplicates(t *testing.T) {
	got := QueryTerms("Invoices, invoices and the INVOICES last week")
	want := []string{"invoices", "last", "week"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("QueryTerms() = %v, want %v", got, want)
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcdefgh", 2},
		{strings.Repeat("x", 400), 100},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%d runes) = %d, want %d", len(tt.text), got, tt.want)
		}
	}
}

func TestCosine(t *testing.T) {
	if got := Cosine([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Errorf("identical vectors cosine = %f, want 1", got)
	}
	if got := Cosine([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
		t.Errorf("orthogonal vectors cosine = %f, want 0", got)
	}
	if got := Cosine(nil, []float32{1}); got != 0 {
		t.Errorf("empty vector cosine = %f, want 0", got)
	}
	if got := Cosine([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("zero vector cosine = %f, want 0", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("Truncate() = %q, want hello...", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate() = %q, want short", got)
	}
}
