package topics

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/llm"
	"recall-ai/internal/storage"
	"recall-ai/internal/textutil"
)

const (
	// DefaultMaxKeys is how many topic keys the model may choose.
	DefaultMaxKeys = 3
	// summaryRunes bounds each topic summary in the prompt.
	summaryRunes = 160
	// modelReplyTokens bounds the model's reply.
	modelReplyTokens = 200
)

const selectionSystemPrompt = `You pick which topic summaries are relevant to a user's question.
Reply with JSON only, in the form {"topics": ["<key>", ...]}, most relevant first.
Use only keys from the list. Choose at most %d keys. Choose none if nothing is relevant.`

var (
	codeFence  = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	keyPattern = regexp.MustCompile(`[A-Za-z0-9](?:[A-Za-z0-9_\-.:]*[A-Za-z0-9])?`)
)

// ModelMethod asks a chat model to choose topic keys from compressed summaries.
// Topic IDs are the keys.
type ModelMethod struct {
	client  ModelClient
	maxKeys int
}

// NewModelMethod creates a model-guided method choosing up to maxKeys topics.
func NewModelMethod(client ModelClient, maxKeys int) *ModelMethod {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	return &ModelMethod{client: client, maxKeys: maxKeys}
}

func (m *ModelMethod) Name() string { return MethodModel }

// Rank scores chosen topics by their position in the reply; the first choice scores 1.
// A reply with no known key returns ErrParseFailure.
func (m *ModelMethod) Rank(ctx context.Context, query string, topics []storage.Topic) (Ranking, error) {
	ranking := Ranking{Method: MethodModel, Scores: make(map[string]float64)}
	if len(topics) == 0 {
		return ranking, nil
	}

	messages := []llm.Message{
		{Role: "system", Content: fmt.Sprintf(selectionSystemPrompt, m.maxKeys)},
		{Role: "user", Content: buildSelectionPrompt(query, topics)},
	}
	reply, err := m.client.ChatWithMessages(ctx, messages, llm.ChatParams{MaxTokens: modelReplyTokens})
	if err != nil {
		return ranking, fmt.Errorf("model selection: %w", err)
	}

	known := make(map[string]string, len(topics))
	for _, topic := range topics {
		known[strings.ToLower(topic.ID)] = topic.ID
	}

	keys, err := ParseKeys(ctx, reply, known, m.maxKeys)
	if err != nil {
		return ranking, err
	}

	for i, key := range keys {
		ranking.Scores[key] = 1 - float64(i)/float64(len(keys)+1)
	}
	ranking.Confidence = 1
	return ranking, nil
}

func buildSelectionPrompt(query string, topics []storage.Topic) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(query)
	b.WriteString("\n\nTopics:\n")
	for _, topic := range topics {
		summary := strings.Join(strings.Fields(topic.Summary), " ")
		fmt.Fprintf(&b, "- %s: %s. %s\n", topic.ID, topic.Title, textutil.Truncate(summary, summaryRunes))
	}
	return b.String()
}

// ParseKeys extracts up to maxKeys known topic keys from a model reply.
//
// The reply is parsed strictly first, as {"topics": [...]} or a bare JSON array.
// If that fails, key-shaped tokens are pulled out of the free text. Keys are matched
// case-insensitively against known (lowercased key to canonical key) and unknown keys
// are dropped. ErrParseFailure is returned when nothing usable remains.
func ParseKeys(ctx context.Context, reply string, known map[string]string, maxKeys int) ([]string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	raw, strict := parseStrict(reply)
	if !strict {
		raw = keyPattern.FindAllString(reply, -1)
		logger.WarnContext(ctx, "model reply is not structured, extracting keys from text",
			"reply", textutil.Truncate(reply, 200),
			"tokens", len(raw),
		)
	}

	seen := make(map[string]struct{})
	var keys []string
	dropped := 0
	for _, candidate := range raw {
		key, ok := known[strings.ToLower(strings.TrimSpace(candidate))]
		if !ok {
			dropped++
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
		if maxKeys > 0 && len(keys) == maxKeys {
			break
		}
	}

	if strict && dropped > 0 {
		logger.DebugContext(ctx, "dropped unknown topic keys", "count", dropped)
	}
	if len(keys) == 0 {
		logger.WarnContext(ctx, "no usable topic keys in model reply", "strict", strict)
		return nil, ErrParseFailure
	}
	return keys, nil
}

func parseStrict(reply string) ([]string, bool) {
	text := strings.TrimSpace(reply)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var wrapped struct {
		Topics []string `json:"topics"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil && wrapped.Topics != nil {
		return wrapped.Topics, true
	}

	var bare []string
	if err := json.Unmarshal([]byte(text), &bare); err == nil {
		return bare, true
	}
	return nil, false
}
