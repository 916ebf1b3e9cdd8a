package topics

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_clients.go -package=mocks recall-ai/internal/topics ModelClient,Embedder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recall-ai/internal/llm"
	"recall-ai/internal/storage"
	"recall-ai/internal/textutil"
)

// Method names reported in Ranking.Method and TopicScore.Method.
const (
	MethodKeyword   = "keyword"
	MethodEmbedding = "embedding"
	MethodModel     = "model"
)

// ErrParseFailure is returned by the model-guided method when the reply yields no known topic key.
var ErrParseFailure = errors.New("topics: no usable topic keys in model reply")

// Ranking is one method's view of how relevant each topic is to a query.
type Ranking struct {
	Method string
	// Scores maps topic ID to a score in [0,1]. Topics without a score are not relevant.
	Scores map[string]float64
	// Confidence is how much the method trusts its own ranking, in [0,1].
	Confidence float64
}

// Method scores a set of topics against a query.
type Method interface {
	Name() string
	Rank(ctx context.Context, query string, topics []storage.Topic) (Ranking, error)
}

// ModelClient is the chat model used for model-guided selection.
type ModelClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Embedder embeds query text into the same space as topic embeddings.
type Embedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// KeywordMethod scores topics by the share of their keywords that appear in the query.
type KeywordMethod struct{}

func (KeywordMethod) Name() string { return MethodKeyword }

func (KeywordMethod) Rank(_ context.Context, query string, topics []storage.Topic) (Ranking, error) {
	ranking := Ranking{Method: MethodKeyword, Scores: make(map[string]float64)}

	terms := make(map[string]struct{})
	for _, term := range textutil.QueryTerms(query) {
		terms[stem(term)] = struct{}{}
	}
	if len(terms) == 0 {
		return ranking, nil
	}

	for _, topic := range topics {
		keywords := keywordSet(topic.Keywords)
		if len(keywords) == 0 {
			continue
		}
		hits := 0
		for kw := range keywords {
			if _, ok := terms[kw]; ok {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		score := float64(hits) / float64(len(keywords))
		ranking.Scores[topic.ID] = score
		ranking.Confidence = max(ranking.Confidence, score)
	}
	return ranking, nil
}

// keywordSet lowercases, stems and deduplicates keywords. Multi-word keywords contribute each word.
func keywordSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		for _, tok := range textutil.Tokenize(kw) {
			set[stem(tok)] = struct{}{}
		}
	}
	return set
}

// stem folds a trailing plural "s" so "invoices" matches "invoice".
func stem(word string) string {
	if len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return word[:len(word)-1]
	}
	return word
}

// EmbeddingMethod scores topics by cosine similarity between the query embedding
// and each topic's precomputed embedding.
type EmbeddingMethod struct {
	embedder Embedder
}

// NewEmbeddingMethod creates an embedding method.
func NewEmbeddingMethod(embedder Embedder) *EmbeddingMethod {
	return &EmbeddingMethod{embedder: embedder}
}

func (m *EmbeddingMethod) Name() string { return MethodEmbedding }

func (m *EmbeddingMethod) Rank(ctx context.Context, query string, topics []storage.Topic) (Ranking, error) {
	ranking := Ranking{Method: MethodEmbedding, Scores: make(map[string]float64)}

	vec, err := m.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return ranking, fmt.Errorf("embed query: %w", err)
	}

	for _, topic := range topics {
		if len(topic.Embedding) == 0 {
			continue
		}
		score := textutil.Cosine(vec, topic.Embedding)
		if score <= 0 {
			continue
		}
		score = min(score, 1)
		ranking.Scores[topic.ID] = score
		ranking.Confidence = max(ranking.Confidence, score)
	}
	return ranking, nil
}
