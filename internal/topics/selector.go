package topics

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/packer"
	"recall-ai/internal/storage"
	"recall-ai/internal/textutil"
)

// DefaultMinConfidence is the confidence at which the cascade stops.
const DefaultMinConfidence = 0.6

// TopicScore is a selected topic with the scores each method gave it.
type TopicScore struct {
	TopicID        string  `json:"topic_id"`
	Title          string  `json:"title"`
	Score          float64 `json:"score"`
	KeywordScore   float64 `json:"keyword_score"`
	EmbeddingScore float64 `json:"embedding_score"`
	ModelScore     float64 `json:"model_score"`
	Method         string  `json:"method"`
	Tokens         int     `json:"tokens"`
}

// Selector runs a cascade of methods, cheapest first, and packs the winning
// ranking into a token budget.
type Selector struct {
	methods       []Method
	minConfidence float64
	scanWindow    int
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithMinConfidence sets the confidence at which the cascade stops.
func WithMinConfidence(c float64) SelectorOption {
	return func(s *Selector) { s.minConfidence = c }
}

// WithScanWindow sets how many oversized topics packing may skip.
func WithScanWindow(n int) SelectorOption {
	return func(s *Selector) { s.scanWindow = n }
}

// NewSelector creates a selector trying methods in the given order.
func NewSelector(methods []Method, opts ...SelectorOption) *Selector {
	s := &Selector{
		methods:       methods,
		minConfidence: DefaultMinConfidence,
		scanWindow:    packer.DefaultScanWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDefaultSelector builds the keyword, embedding, model-guided cascade.
func NewDefaultSelector(embedder Embedder, model ModelClient, maxKeys int, opts ...SelectorOption) *Selector {
	methods := []Method{KeywordMethod{}, NewEmbeddingMethod(embedder)}
	if model != nil {
		methods = append(methods, NewModelMethod(model, maxKeys))
	}
	return NewSelector(methods, opts...)
}

// SelectTopics picks the topic summaries of owner most relevant to query,
// highest score first, without exceeding budget tokens.
//
// Methods run in order until one reaches the minimum confidence; otherwise the
// last successful ranking wins. A model reply that cannot be parsed falls back to
// the embedding ranking. An error is returned only when no method produced a ranking.
func (s *Selector) SelectTopics(ctx context.Context, query, owner string, summaries []storage.Topic, budget int) ([]TopicScore, error) {
	logger := contextutil.LoggerFromContext(ctx).With("owner", owner)

	topics := make([]storage.Topic, 0, len(summaries))
	for _, t := range summaries {
		if t.Owner != "" && t.Owner != owner {
			continue
		}
		topics = append(topics, t)
	}
	if len(topics) == 0 || budget <= 0 {
		return []TopicScore{}, nil
	}

	rankings := make(map[string]Ranking, len(s.methods))
	var chosen *Ranking
	var lastErr error

	for _, method := range s.methods {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		ranking, err := method.Rank(ctx, query, topics)
		if errors.Is(err, ErrParseFailure) {
			if fallback, ok := rankings[MethodEmbedding]; ok {
				logger.WarnContext(ctx, "model selection unusable, using embedding ranking")
				chosen = &fallback
			}
			lastErr = err
			continue
		}
		if err != nil {
			logger.WarnContext(ctx, "topic method failed", "method", method.Name(), "error", err)
			lastErr = err
			continue
		}

		rankings[ranking.Method] = ranking
		chosen = &ranking
		logger.DebugContext(ctx, "topic method ranked",
			"method", ranking.Method,
			"confidence", ranking.Confidence,
			"scored", len(ranking.Scores),
		)
		if ranking.Confidence >= s.minConfidence {
			break
		}
	}

	if chosen == nil {
		return nil, fmt.Errorf("select topics: %w", lastErr)
	}

	scores := make([]TopicScore, 0, len(chosen.Scores))
	for _, t := range topics {
		score, ok := chosen.Scores[t.ID]
		if !ok || score <= 0 {
			continue
		}
		tokens := t.TokenCount
		if tokens <= 0 {
			tokens = textutil.EstimateTokens(t.Title + "\n" + t.Summary)
		}
		scores = append(scores, TopicScore{
			TopicID:        t.ID,
			Title:          t.Title,
			Score:          score,
			KeywordScore:   rankings[MethodKeyword].Scores[t.ID],
			EmbeddingScore: rankings[MethodEmbedding].Scores[t.ID],
			ModelScore:     rankings[MethodModel].Scores[t.ID],
			Method:         chosen.Method,
			Tokens:         tokens,
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].TopicID < scores[j].TopicID
	})

	packed := packer.Pack(scores, func(ts TopicScore) int { return ts.Tokens }, budget, s.scanWindow)
	selected := make([]TopicScore, 0, len(packed.Slots))
	for _, slot := range packed.Slots {
		selected = append(selected, slot.Item)
	}

	logger.InfoContext(ctx, "topics selected",
		"method", chosen.Method,
		"selected", len(selected),
		"tokens_used", packed.TokensUsed,
		"skipped", packed.Skipped,
	)
	return selected, nil
}
