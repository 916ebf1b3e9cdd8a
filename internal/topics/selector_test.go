package topics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"recall-ai/internal/storage"
	topics_mocks "recall-ai/internal/topics/mocks"
)

func sampleTopics() []storage.Topic {
	return []storage.Topic{
		{ID: "t-finance", Owner: "alice", Title: "Finance", Summary: "Invoices and taxes", Keywords: []string{"invoice", "tax"}, Embedding: []float32{0.8, 0.6}, TokenCount: 50},
		{ID: "t-travel", Owner: "alice", Title: "Travel", Summary: "Trips and hotels", Keywords: []string{"travel", "hotel"}, Embedding: []float32{0.6, 0.8}, TokenCount: 40},
		{ID: "t-garden", Owner: "alice", Title: "Garden", Summary: "Plants", Keywords: []string{"garden"}, Embedding: []float32{0, 1}, TokenCount: 30},
	}
}

func TestKeywordMethodNormalizesBySetSize(t *testing.T) {
	ranking, err := KeywordMethod{}.Rank(context.Background(), "what about my invoices", sampleTopics())
	require.NoError(t, err)

	assert.Equal(t, MethodKeyword, ranking.Method)
	assert.InDelta(t, 0.5, ranking.Scores["t-finance"], 1e-9)
	assert.NotContains(t, ranking.Scores, "t-travel")
	assert.InDelta(t, 0.5, ranking.Confidence, 1e-9)
}

func TestSelectTopicsStopsAtConfidentKeywordRanking(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := topics_mocks.NewMockEmbedder(ctrl)
	model := topics_mocks.NewMockModelClient(ctrl)

	selector := NewDefaultSelector(embedder, model, 3)
	got, err := selector.SelectTopics(context.Background(), "garden plans", "alice", sampleTopics(), 1000)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "t-garden", got[0].TopicID)
	assert.Equal(t, MethodKeyword, got[0].Method)
	assert.InDelta(t, 1.0, got[0].KeywordScore, 1e-9)
}

func TestSelectTopicsFallsThroughToEmbedding(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := topics_mocks.NewMockEmbedder(ctrl)
	model := topics_mocks.NewMockModelClient(ctrl)

	embedder.EXPECT().EmbedQuery(gomock.Any(), "money matters").Return([]float32{1, 0}, nil)

	selector := NewDefaultSelector(embedder, model, 3)
	got, err := selector.SelectTopics(context.Background(), "money matters", "alice", sampleTopics(), 1000)
	require.NoError(t, err)

	require.Len(t, got, 2, "zero-similarity topics are not selected")
	assert.Equal(t, "t-finance", got[0].TopicID)
	assert.Equal(t, "t-travel", got[1].TopicID)
	assert.Equal(t, MethodEmbedding, got[0].Method)
	assert.InDelta(t, 0.8, got[0].Score, 1e-6)
}

func TestSelectTopicsModelGuided(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := topics_mocks.NewMockEmbedder(ctrl)
	model := topics_mocks.NewMockModelClient(ctrl)

	embedder.EXPECT().EmbedQuery(gomock.Any(), gomock.Any()).Return([]float32{1, 0}, nil)
	model.EXPECT().ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`{"topics": ["t-travel", "unknown", "t-finance"]}`, nil)

	selector := NewDefaultSelector(embedder, model, 3, WithMinConfidence(0.95))
	got, err := selector.SelectTopics(context.Background(), "money matters", "alice", sampleTopics(), 1000)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "t-travel", got[0].TopicID, "model order wins")
	assert.Equal(t, MethodModel, got[0].Method)
	assert.Greater(t, got[0].ModelScore, got[1].ModelScore)
	assert.InDelta(t, 0.6, got[0].EmbeddingScore, 1e-6, "scores of earlier methods are reported")
}

func TestSelectTopicsParseFailureEqualsEmbeddingRanking(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := topics_mocks.NewMockEmbedder(ctrl)
	model := topics_mocks.NewMockModelClient(ctrl)

	embedder.EXPECT().EmbedQuery(gomock.Any(), gomock.Any()).Return([]float32{1, 0}, nil).Times(2)
	model.EXPECT().ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("Honestly none of these look related.", nil)

	cascade := NewDefaultSelector(embedder, model, 3, WithMinConfidence(0.95))
	got, err := cascade.SelectTopics(context.Background(), "money matters", "alice", sampleTopics(), 1000)
	require.NoError(t, err)

	embeddingOnly := NewSelector([]Method{KeywordMethod{}, NewEmbeddingMethod(embedder)}, WithMinConfidence(0.95))
	want, err := embeddingOnly.SelectTopics(context.Background(), "money matters", "alice", sampleTopics(), 1000)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestSelectTopicsPacksBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := topics_mocks.NewMockModelClient(ctrl)

	summaries := []storage.Topic{
		{ID: "a", Owner: "alice", Title: "A", TokenCount: 50},
		{ID: "b", Owner: "alice", Title: "B", TokenCount: 5000},
		{ID: "c", Owner: "alice", Title: "C", TokenCount: 40},
	}
	model.EXPECT().ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(`["a", "b", "c"]`, nil)

	selector := NewSelector([]Method{NewModelMethod(model, 3)})
	got, err := selector.SelectTopics(context.Background(), "anything", "alice", summaries, 100)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].TopicID)
	assert.Equal(t, "c", got[1].TopicID, "oversized topic is skipped, scanning continues")
	total := 0
	for _, ts := range got {
		total += ts.Tokens
	}
	assert.LessOrEqual(t, total, 100)
}

func TestSelectTopicsIgnoresOtherOwners(t *testing.T) {
	summaries := append(sampleTopics(), storage.Topic{ID: "t-bob", Owner: "bob", Keywords: []string{"garden"}})

	got, err := NewSelector([]Method{KeywordMethod{}}).SelectTopics(context.Background(), "garden", "alice", summaries, 1000)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t-garden", got[0].TopicID)
}

func TestSelectTopicsAllMethodsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := topics_mocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().EmbedQuery(gomock.Any(), gomock.Any()).Return(nil, errors.New("embeddings down"))

	_, err := NewSelector([]Method{NewEmbeddingMethod(embedder)}).SelectTopics(context.Background(), "q", "alice", sampleTopics(), 1000)
	assert.Error(t, err)
}

func TestSelectTopicsEmptyInput(t *testing.T) {
	got, err := NewSelector(nil).SelectTopics(context.Background(), "q", "alice", nil, 1000)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseKeys(t *testing.T) {
	known := map[string]string{"t-finance": "t-finance", "t-travel": "t-travel", "t-garden": "t-garden"}

	tests := []struct {
		name    string
		reply   string
		max     int
		want    []string
		wantErr bool
	}{
		{name: "object", reply: `{"topics": ["t-finance", "t-travel"]}`, max: 3, want: []string{"t-finance", "t-travel"}},
		{name: "bare array", reply: `["t-garden"]`, max: 3, want: []string{"t-garden"}},
		{name: "code fence", reply: "```json\n{\"topics\": [\"t-travel\"]}\n```", max: 3, want: []string{"t-travel"}},
		{name: "unknown keys dropped", reply: `{"topics": ["nope", "T-Finance"]}`, max: 3, want: []string{"t-finance"}},
		{name: "max keys", reply: `["t-finance", "t-travel", "t-garden"]`, max: 2, want: []string{"t-finance", "t-travel"}},
		{name: "duplicates", reply: `["t-garden", "t-garden"]`, max: 3, want: []string{"t-garden"}},
		{name: "free text", reply: "I would pick t-travel and maybe T-GARDEN.", max: 3, want: []string{"t-travel", "t-garden"}},
		{name: "nothing usable", reply: "no idea", max: 3, wantErr: true},
		{name: "strict but unknown", reply: `{"topics": ["x", "y"]}`, max: 3, wantErr: true},
		{name: "empty list", reply: `{"topics": []}`, max: 3, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeys(context.Background(), tt.reply, known, tt.max)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrParseFailure)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
