package textutil

import (
	"strings"
	"unicode"
)

const (
	lexicalLengthScale = 10.0
	maxLexicalScore    = 1.0
	titleMatchBonus    = 0.15
)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "was": {}, "were": {}, "with": {}, "me": {}, "my": {}, "i": {},
	"what": {}, "about": {}, "that": {}, "this": {},
}

// LexicalScore computes a lightweight lexical relevance score for a text relative to a query.
// The score is normalized to [0, 1] so it can be blended with vector scores.
func LexicalScore(query, text, title string) float64 {
	queryTokens := QueryTerms(query)
	if len(queryTokens) == 0 {
		return 0
	}

	textTokens := Tokenize(text)
	if len(textTokens) == 0 {
		return 0
	}

	freq := make(map[string]int, len(textTokens))
	for _, token := range textTokens {
		freq[token]++
	}

	var rawMatches, distinct int
	for _, token := range queryTokens {
		if n := freq[token]; n > 0 {
			rawMatches += n
			distinct++
		}
	}

	// Density rewards repeated hits, coverage rewards matching more of the query.
	density := (float64(rawMatches) / (1 + float64(len(textTokens)))) * lexicalLengthScale
	coverage := float64(distinct) / float64(len(queryTokens))
	score := 0.5*min(density, 1) + 0.5*coverage

	if title != "" {
		titleSet := make(map[string]struct{})
		for _, token := range Tokenize(title) {
			titleSet[token] = struct{}{}
		}
		for _, token := range queryTokens {
			if _, ok := titleSet[token]; ok {
				score += titleMatchBonus
			}
		}
	}

	if score > maxLexicalScore {
		return maxLexicalScore
	}
	if score < 0 {
		return 0
	}
	return score
}

// QueryTerms tokenizes a query and drops stopwords and duplicates, preserving order.
func QueryTerms(query string) []string {
	tokens := FilterStopwords(Tokenize(query))
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// Tokenize lowercases text and splits it on anything that is not a letter or digit.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// FilterStopwords removes common English stopwords.
func FilterStopwords(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := stopwords[token]; isStop {
			continue
		}
		result = append(result, token)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
