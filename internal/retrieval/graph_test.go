package retrieval

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"recall-ai/internal/links"
	"recall-ai/internal/navcache"
	retrieval_mocks "recall-ai/internal/retrieval/mocks"
	"recall-ai/internal/storage"
	"recall-ai/internal/tier"
	"recall-ai/internal/vectorstore"
)

func graphOf(edges map[string][]string) *navcache.Snapshot {
	entries := map[string]navcache.Entry{}
	for id, to := range edges {
		neighbors := make([]navcache.Neighbor, 0, len(to))
		for _, n := range to {
			neighbors = append(neighbors, navcache.Neighbor{ID: n, Weight: 1})
		}
		entries[id] = navcache.Entry{ContentID: id, Neighbors: neighbors, Version: 1}
	}
	return navcache.NewSnapshot("alice", 1, testNow, entries)
}

func TestGraphExpandStopsOnCycles(t *testing.T) {
	f := newFixture(t)
	f.navigation.EXPECT().Snapshot(gomock.Any(), "alice").Return(graphOf(map[string][]string{
		"n1": {"n4"},
		"n4": {"n1", "n5"},
		"n5": {"n4", "n1"},
	}), nil)
	c := f.coordinator(t)

	profile := f.profiles[tier.Deep]
	require.Equal(t, 3, profile.MaxHops)

	done := make(chan strategyOutput, 1)
	go func() {
		out, err := c.graphExpand(context.Background(), Query{Text: "x", Owner: "alice"}, profile, []string{"n1"})
		assert.NoError(t, err)
		done <- out
	}()

	var out strategyOutput
	select {
	case out = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("graph expansion did not terminate on a cyclic graph")
	}

	hops := map[string]int{}
	for _, cand := range out.candidates {
		_, dup := hops[cand.SourceID]
		assert.False(t, dup, "%s emitted twice", cand.SourceID)
		hops[cand.SourceID] = cand.Hops
	}
	assert.Equal(t, map[string]int{"n4": 1, "n5": 2}, hops, "shortest hop kept and the seed is not re-emitted")
}

func TestRetrieveContextGraphFromChunkSeed(t *testing.T) {
	ctx := context.Background()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.Migrate(db))

	contents := storage.NewContentRepo(db)
	linkRepo := storage.NewLinkRepo(db)
	for _, c := range []storage.Content{
		{ID: "noteA", Owner: "alice", SourceType: storage.SourceNote, Title: "Alpha", Text: "# Alpha\n\nPlanting schedule, see [[Beta]].", UpdatedAt: testNow},
		{ID: "noteB", Owner: "alice", SourceType: storage.SourceNote, Title: "Beta", Text: "# Beta\n\nSeed suppliers.", UpdatedAt: testNow},
		{ID: "chunkA0", Owner: "alice", SourceType: storage.SourceChunk, ParentID: "noteA", Title: "Alpha", Text: "Planting schedule, see Beta.", UpdatedAt: testNow},
	} {
		require.NoError(t, contents.Upsert(ctx, &c))
	}

	stored, err := links.NewIndexer(contents, linkRepo).RefreshOwner(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 1, stored)

	nav, err := navcache.New(linkRepo, contents, nil, navcache.WithInlineRebuild(), navcache.WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(nav.Close)

	ctrl := gomock.NewController(t)
	embedder := retrieval_mocks.NewMockEmbedder(ctrl)
	vectors := retrieval_mocks.NewMockVectorSearcher(ctrl)
	embedder.EXPECT().EmbedQuery(gomock.Any(), gomock.Any()).Return([]float32{1, 0}, nil)
	vectors.EXPECT().Search(gomock.Any(), "content", gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]vectorstore.SearchResult{{PointID: "chunkA0", Score: 0.9}}, nil)

	profiles := tier.DefaultProfiles()
	standardProfile := profiles[tier.Standard]
	standardProfile.StrategyTimeout = 2 * time.Second
	standardProfile.Deadline = 4 * time.Second
	profiles[tier.Standard] = standardProfile

	c, err := NewCoordinator(Deps{
		Embedder:   embedder,
		Vectors:    vectors,
		Collection: "content",
		Lexical:    contents,
		Contents:   contents,
		Navigation: nav,
		Profiles:   profiles,
		Now:        func() time.Time { return testNow },
	})
	require.NoError(t, err)

	standard := tier.Standard
	resp, err := c.RetrieveContext(ctx, Query{Text: "zzzunmatched", Owner: "alice", Tier: &standard})
	require.NoError(t, err)
	assert.Empty(t, resp.DegradedSources)

	b, ok := resultFor(resp, "noteB")
	require.True(t, ok, "the note linked from the chunk's parent is reached")
	assert.Equal(t, 1, b.Hops)
	assert.Contains(t, b.Strategies, tier.Graph)

	chunk, ok := resultFor(resp, "chunkA0")
	require.True(t, ok)
	assert.Equal(t, []tier.Strategy{tier.Vector}, chunk.Strategies)
}
