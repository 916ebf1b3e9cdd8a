package textutil

import (
	"math"
	"unicode/utf8"
)

// RunesPerToken is the approximation used for token counting (about 4 characters per token).
const RunesPerToken = 4.0

// EstimateTokens returns an approximate token count for text.
// Non-empty text always counts as at least one token.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	count := int(math.Round(float64(utf8.RuneCountInString(text)) / RunesPerToken))
	if count < 1 {
		return 1
	}
	return count
}

// Truncate shortens text to at most maxRunes runes, appending "..." when cut.
func Truncate(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "..."
}

// Cosine returns the cosine similarity of two vectors, or 0 when either is empty or zero.
// Vectors of different length are compared over their common prefix.
func Cosine(a, b []float32) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
