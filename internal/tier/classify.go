package tier

import (
	"fmt"
	"strings"

	"recall-ai/internal/textutil"
)

// FastMaxWords is the longest query (in words) still eligible for the FAST tier.
const FastMaxWords = 10

var interrogatives = map[string]struct{}{
	"what": {}, "why": {}, "how": {}, "when": {}, "where": {}, "who": {}, "which": {},
	"is": {}, "are": {}, "does": {}, "do": {}, "did": {}, "can": {}, "could": {},
	"should": {}, "would": {},
}

// Words that ask for reasoning rather than recall.
var reasoningCues = map[string]struct{}{
	"explain": {}, "compare": {}, "why": {}, "how": {}, "analyze": {}, "analyse": {},
	"evaluate": {}, "contrast": {},
}

var deepCues = map[string]struct{}{
	"compare": {}, "comparing": {}, "comparison": {}, "versus": {}, "vs": {},
	"tradeoff": {}, "tradeoffs": {}, "trade": {}, "explain": {}, "why": {},
	"because": {}, "contrast": {}, "pros": {}, "cons": {}, "implications": {},
}

var deepPhrases = []string{
	"difference between",
	"differences between",
	"trade off",
	"what caused",
	"how does",
	"relationship between",
}

var timeQualifiers = []string{
	"today", "yesterday", "last week", "last month", "last year", "this week",
	"this month", "recently", "ago", "earlier",
}

// Follow-up openers that depend on the previous turn.
var followUpOpeners = []string{"and ", "also ", "what about", "how about", "same for"}

// Classification is the result of classifying a query.
type Classification struct {
	Tier          Tier
	TimeQualified bool
	Reason        string
}

// Classify assigns a tier to query text. It is deterministic, makes no external calls,
// and returns STANDARD if anything goes wrong internally.
func Classify(text string, history []string) (result Classification) {
	defer func() {
		if r := recover(); r != nil {
			result = Classification{Tier: Standard, Reason: fmt.Sprintf("recovered: %v", r)}
		}
	}()
	return classify(text, history)
}

func classify(text string, history []string) Classification {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Classification{Tier: Standard, Reason: "empty query"}
	}

	words := strings.Fields(normalized)
	tokens := textutil.Tokenize(normalized)
	// Phrase matching runs on whole tokens so "ago" does not match "chicago".
	padded := " " + strings.Join(tokens, " ") + " "
	timeQualified := containsAny(padded, timeQualifiers)

	questionMarks := strings.Count(normalized, "?")
	hasQuestion := questionMarks > 0
	if len(tokens) > 0 {
		if _, ok := interrogatives[tokens[0]]; ok {
			hasQuestion = true
		}
	}
	for _, token := range tokens {
		if _, ok := reasoningCues[token]; ok {
			hasQuestion = true
			break
		}
	}

	followUp := len(history) > 0 && hasPrefixAny(normalized, followUpOpeners)

	if len(words) <= FastMaxWords && !hasQuestion && !followUp {
		return Classification{Tier: Fast, TimeQualified: timeQualified, Reason: "short query without question indicators"}
	}

	if questionMarks > 1 {
		return Classification{Tier: Deep, TimeQualified: timeQualified, Reason: "multiple questions"}
	}
	for _, token := range tokens {
		if _, ok := deepCues[token]; ok {
			return Classification{Tier: Deep, TimeQualified: timeQualified, Reason: "comparative or causal cue: " + token}
		}
	}
	if phrase := firstContained(padded, deepPhrases); phrase != "" {
		return Classification{Tier: Deep, TimeQualified: timeQualified, Reason: "comparative or causal phrase: " + phrase}
	}

	return Classification{Tier: Standard, TimeQualified: timeQualified, Reason: "default"}
}

func containsAny(s string, needles []string) bool {
	return firstContained(s, needles) != ""
}

func firstContained(s string, needles []string) string {
	for _, needle := range needles {
		if strings.Contains(s, " "+needle+" ") {
			return needle
		}
	}
	return ""
}

func hasPrefixAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
