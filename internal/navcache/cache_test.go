package navcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	navcache_mocks "recall-ai/internal/navcache/mocks"
	"recall-ai/internal/storage"
)

func noopStale(context.Context, string) {}

func TestRebuildBuildsWeightedAdjacency(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := navcache_mocks.NewMockLinkStore(ctrl)
	contents := navcache_mocks.NewMockContentLister(ctrl)
	access := navcache_mocks.NewMockAccessStore(ctrl)

	contents.EXPECT().ListIDsByOwner(gomock.Any(), "alice").Return([]string{"a", "b", "c"}, nil)
	links.EXPECT().Neighbors(gomock.Any(), "alice", "a").Return([]string{"b", "gone"}, []string{"c"}, nil)
	links.EXPECT().Neighbors(gomock.Any(), "alice", "b").Return(nil, []string{"a"}, nil)
	links.EXPECT().Neighbors(gomock.Any(), "alice", "c").Return([]string{"a"}, nil, nil)
	access.EXPECT().ListPairs(gomock.Any(), "alice").Return([]storage.AccessPattern{
		{A: "b", B: "c", Count: 3},
	}, nil)

	cache, err := New(links, contents, access, WithStaleHandler(noopStale), WithPoolSize(2))
	require.NoError(t, err)
	defer cache.Close()

	result, err := cache.Rebuild(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, result.EntriesRebuilt)
	assert.False(t, result.Coalesced)

	snap, err := cache.Snapshot(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, result.Version, snap.Version)

	a := snap.Neighbors("a")
	require.Len(t, a, 2, "links to unknown content are dropped")
	assert.Equal(t, Neighbor{ID: "b", Weight: linkWeight}, a[0])
	assert.Equal(t, Neighbor{ID: "c", Weight: backlinkWeight}, a[1])

	b := snap.Neighbors("b")
	require.Len(t, b, 2)
	assert.Equal(t, "b", snap.Neighbors("c")[1].ID)
	assert.InDelta(t, coRetrievalWeight, b[1].Weight, 1e-9, "the busiest pair gets the full co-retrieval weight")
}

func TestRebuildSingleFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := navcache_mocks.NewMockLinkStore(ctrl)
	contents := navcache_mocks.NewMockContentLister(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})

	contents.EXPECT().ListIDsByOwner(gomock.Any(), "alice").DoAndReturn(func(context.Context, string) ([]string, error) {
		close(started)
		<-release
		return []string{"a", "b", "c"}, nil
	}).Times(1)
	links.EXPECT().Neighbors(gomock.Any(), "alice", gomock.Any()).Return([]string{"a", "b", "c"}, nil, nil).Times(3)

	cache, err := New(links, contents, nil, WithStaleHandler(noopStale))
	require.NoError(t, err)
	defer cache.Close()

	var wg sync.WaitGroup
	results := make([]RebuildResult, 2)
	errs := make([]error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = cache.Rebuild(context.Background(), "alice")
	}()
	<-started

	// While the first rebuild is in flight, readers see the previous (empty) version.
	snap, err := cache.Snapshot(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrCacheStale)
	assert.Equal(t, 0, snap.Len())

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], errs[1] = cache.Rebuild(context.Background(), "alice")
	}()
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.False(t, results[0].Coalesced)
	assert.True(t, results[1].Coalesced)
	assert.Equal(t, 3, results[0].EntriesRebuilt)
	assert.Equal(t, results[0].Version, results[1].Version)

	snap, err = cache.Snapshot(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Len())
	for _, id := range []string{"a", "b", "c"} {
		assert.Len(t, snap.Neighbors(id), 2, "entry %s must be complete", id)
	}
}

func TestReadersNeverSeePartialSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := navcache_mocks.NewMockLinkStore(ctrl)
	contents := navcache_mocks.NewMockContentLister(ctrl)

	ids := []string{"a", "b", "c", "d"}
	contents.EXPECT().ListIDsByOwner(gomock.Any(), "alice").Return(ids, nil).AnyTimes()
	links.EXPECT().Neighbors(gomock.Any(), "alice", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, id string) ([]string, []string, error) {
			time.Sleep(time.Millisecond)
			var out []string
			for _, other := range ids {
				if other != id {
					out = append(out, other)
				}
			}
			return out, nil, nil
		}).AnyTimes()

	cache, err := New(links, contents, nil, WithStaleHandler(noopStale), WithPoolSize(4))
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.Rebuild(context.Background(), "alice")
	require.NoError(t, err)

	stop := make(chan struct{})
	var partial atomic.Int32
	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap, _ := cache.Snapshot(context.Background(), "alice")
				if snap.Len() != len(ids) {
					partial.Add(1)
				}
				for _, id := range ids {
					e, ok := snap.Entry(id)
					if !ok || len(e.Neighbors) != len(ids)-1 || e.Version != snap.Version {
						partial.Add(1)
					}
				}
			}
		}()
	}

	for i := 0; i < 5; i++ {
		cache.Invalidate("alice")
		_, err := cache.Rebuild(context.Background(), "alice")
		require.NoError(t, err)
	}
	close(stop)
	readers.Wait()

	assert.Zero(t, partial.Load())
}

func TestRebuildFailureKeepsPreviousSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := navcache_mocks.NewMockLinkStore(ctrl)
	contents := navcache_mocks.NewMockContentLister(ctrl)

	gomock.InOrder(
		contents.EXPECT().ListIDsByOwner(gomock.Any(), "alice").Return([]string{"a"}, nil),
		contents.EXPECT().ListIDsByOwner(gomock.Any(), "alice").Return([]string{"a", "b"}, nil),
	)
	gomock.InOrder(
		links.EXPECT().Neighbors(gomock.Any(), "alice", "a").Return(nil, nil, nil),
		links.EXPECT().Neighbors(gomock.Any(), "alice", gomock.Any()).Return(nil, nil, errors.New("db down")).MinTimes(1).MaxTimes(2),
	)

	cache, err := New(links, contents, nil, WithStaleHandler(noopStale), WithPoolSize(1))
	require.NoError(t, err)
	defer cache.Close()

	first, err := cache.Rebuild(context.Background(), "alice")
	require.NoError(t, err)

	_, err = cache.Rebuild(context.Background(), "alice")
	require.Error(t, err)

	snap, err := cache.Snapshot(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, first.Version, snap.Version)
	assert.Equal(t, 1, snap.Len())
}

func TestSnapshotStaleTriggersHandlerOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := navcache_mocks.NewMockLinkStore(ctrl)
	contents := navcache_mocks.NewMockContentLister(ctrl)

	var triggered atomic.Int32
	cache, err := New(links, contents, nil, WithStaleHandler(func(_ context.Context, owner string) {
		assert.Equal(t, "alice", owner)
		triggered.Add(1)
	}))
	require.NoError(t, err)
	defer cache.Close()

	for i := 0; i < 3; i++ {
		snap, err := cache.Snapshot(context.Background(), "alice")
		assert.ErrorIs(t, err, ErrCacheStale)
		require.NotNil(t, snap)
	}
	assert.Equal(t, int32(1), triggered.Load(), "repeated stale reads must not stampede rebuilds")
}

func TestSnapshotInlineRebuildReturnsFreshSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := navcache_mocks.NewMockLinkStore(ctrl)
	contents := navcache_mocks.NewMockContentLister(ctrl)

	contents.EXPECT().ListIDsByOwner(gomock.Any(), "alice").Return([]string{"a", "b"}, nil).Times(1)
	links.EXPECT().Neighbors(gomock.Any(), "alice", "a").Return([]string{"b"}, nil, nil)
	links.EXPECT().Neighbors(gomock.Any(), "alice", "b").Return(nil, []string{"a"}, nil)

	cache, err := New(links, contents, nil, WithInlineRebuild(), WithPoolSize(1))
	require.NoError(t, err)

	snap, err := cache.Snapshot(context.Background(), "alice")
	require.NoError(t, err, "the first read already sees the rebuilt snapshot")
	assert.Equal(t, 2, snap.Len())
	require.Len(t, snap.Neighbors("a"), 1)
	assert.Equal(t, "b", snap.Neighbors("a")[0].ID)

	// Nothing keeps running after the read, so closing right away is safe.
	cache.Close()
}

func TestRecordAccessCapsWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := navcache_mocks.NewMockLinkStore(ctrl)
	contents := navcache_mocks.NewMockContentLister(ctrl)
	access := navcache_mocks.NewMockAccessStore(ctrl)

	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	access.EXPECT().Increment(gomock.Any(), "alice", gomock.Any(), at).DoAndReturn(
		func(_ context.Context, _ string, pairs [][2]string, _ time.Time) error {
			assert.Len(t, pairs, 3, "window of 3 ids yields 3 pairs")
			for _, p := range pairs {
				assert.Less(t, p[0], p[1])
			}
			return nil
		})

	cache, err := New(links, contents, access, WithAccessWindow(3), WithClock(func() time.Time { return at }))
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.RecordAccess(context.Background(), "alice", []string{"c", "a", "c", "b", "d", "e"}))
}

func TestRecordAccessInvalidatesSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := navcache_mocks.NewMockLinkStore(ctrl)
	contents := navcache_mocks.NewMockContentLister(ctrl)
	access := navcache_mocks.NewMockAccessStore(ctrl)

	contents.EXPECT().ListIDsByOwner(gomock.Any(), "alice").Return([]string{"a"}, nil)
	links.EXPECT().Neighbors(gomock.Any(), "alice", "a").Return(nil, nil, nil)
	access.EXPECT().ListPairs(gomock.Any(), "alice").Return(nil, nil)
	access.EXPECT().Increment(gomock.Any(), "alice", gomock.Any(), gomock.Any()).Return(nil)

	var triggered atomic.Int32
	cache, err := New(links, contents, access, WithStaleHandler(func(context.Context, string) {
		triggered.Add(1)
	}))
	require.NoError(t, err)
	defer cache.Close()

	built, err := cache.Rebuild(context.Background(), "alice")
	require.NoError(t, err)
	_, err = cache.Snapshot(context.Background(), "alice")
	require.NoError(t, err)

	require.NoError(t, cache.RecordAccess(context.Background(), "alice", []string{"a", "b"}))

	snap, err := cache.Snapshot(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrCacheStale)
	assert.Equal(t, built.Version, snap.Version, "the previous snapshot stays readable")
	assert.Equal(t, int32(1), triggered.Load())
}

func TestPairs(t *testing.T) {
	tests := []struct {
		name   string
		ids    []string
		window int
		want   [][2]string
	}{
		{name: "empty", ids: nil, window: 8, want: [][2]string{}},
		{name: "single", ids: []string{"a"}, window: 8, want: [][2]string{}},
		{name: "ordered pairs", ids: []string{"b", "a", "c"}, window: 8, want: [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}}},
		{name: "window caps distinct ids", ids: []string{"a", "a", "b", "c"}, window: 2, want: [][2]string{{"a", "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pairs(tt.ids, tt.window))
		})
	}

	n := len(Pairs([]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}, DefaultAccessWindow))
	assert.Equal(t, DefaultAccessWindow*(DefaultAccessWindow-1)/2, n)
}

func TestNewValidatesOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := navcache_mocks.NewMockLinkStore(ctrl)
	contents := navcache_mocks.NewMockContentLister(ctrl)

	_, err := New(nil, contents, nil)
	assert.Error(t, err)
	_, err = New(links, contents, nil, WithAccessWindow(1))
	assert.Error(t, err)
	_, err = New(links, contents, nil, WithPoolSize(0))
	assert.Error(t, err)
}
