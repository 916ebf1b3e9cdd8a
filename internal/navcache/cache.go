package navcache

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_stores.go -package=mocks recall-ai/internal/navcache LinkStore,ContentLister,AccessStore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/singleflight"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/storage"
)

// ErrCacheStale is returned with a usable snapshot when the owner's adjacency has not
// been built yet or was invalidated. A rebuild has been triggered.
var ErrCacheStale = errors.New("navigation cache stale")

const (
	// DefaultAccessWindow caps how many ids of one result set are paired.
	DefaultAccessWindow = 8

	linkWeight        = 1.0
	backlinkWeight    = 0.7
	coRetrievalWeight = 0.5

	retriggerInterval = 30 * time.Second
)

// LinkStore reads structural links.
type LinkStore interface {
	Neighbors(ctx context.Context, owner, id string) (outgoing, incoming []string, err error)
}

// ContentLister lists the content ids of an owner.
type ContentLister interface {
	ListIDsByOwner(ctx context.Context, owner string) ([]string, error)
}

// AccessStore persists co-retrieval counters.
type AccessStore interface {
	Increment(ctx context.Context, owner string, pairs [][2]string, at time.Time) error
	ListPairs(ctx context.Context, owner string) ([]storage.AccessPattern, error)
}

// StaleHandler is called when a reader finds a stale snapshot, typically to enqueue a rebuild.
type StaleHandler func(ctx context.Context, owner string)

// RebuildResult reports one rebuild call.
type RebuildResult struct {
	EntriesRebuilt int   `json:"entries_rebuilt"`
	DurationMs     int64 `json:"duration_ms"`
	// Coalesced is true when this call joined a rebuild already running for the owner.
	Coalesced bool   `json:"coalesced"`
	Version   uint64 `json:"version"`
}

type ownerState struct {
	snapshot    atomic.Pointer[Snapshot]
	stale       atomic.Bool
	lastTrigger atomic.Int64
}

// Cache holds one immutable adjacency snapshot per owner.
// Reads are lock-free; rebuilds are single-flight per owner and publish by pointer swap.
type Cache struct {
	links    LinkStore
	contents ContentLister
	access   AccessStore

	pool         *ants.Pool
	group        singleflight.Group
	owners       sync.Map // owner -> *ownerState
	version      atomic.Uint64
	accessWindow int
	onStale      StaleHandler
	inline       bool
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache) error

// WithAccessWindow sets how many leading ids of a result set are paired when recording access.
func WithAccessWindow(n int) Option {
	return func(c *Cache) error {
		if n < 2 {
			return fmt.Errorf("access window must be at least 2, got %d", n)
		}
		c.accessWindow = n
		return nil
	}
}

// WithStaleHandler sets the hook called when a stale snapshot is read.
// Without one, the cache rebuilds in a background goroutine.
func WithStaleHandler(h StaleHandler) Option {
	return func(c *Cache) error {
		c.onStale = h
		return nil
	}
}

// WithInlineRebuild makes a stale read rebuild before it returns, so the reader gets
// the fresh snapshot. For short-lived processes with no job queue.
func WithInlineRebuild() Option {
	return func(c *Cache) error {
		c.inline = true
		return nil
	}
}

// WithPoolSize sets the number of workers used to fetch neighbors during a rebuild.
func WithPoolSize(size int) Option {
	return func(c *Cache) error {
		if size <= 0 {
			return fmt.Errorf("pool size must be positive, got %d", size)
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if c.pool != nil {
			c.pool.Release()
		}
		c.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger for background work.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) error {
		c.now = now
		return nil
	}
}

// New creates a Cache. access may be nil, in which case co-retrieval is not tracked.
func New(links LinkStore, contents ContentLister, access AccessStore, opts ...Option) (*Cache, error) {
	if links == nil {
		return nil, errors.New("link store is required")
	}
	if contents == nil {
		return nil, errors.New("content lister is required")
	}

	c := &Cache{
		links:        links,
		contents:     contents,
		access:       access,
		accessWindow: DefaultAccessWindow,
		now:          time.Now,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			c.Close()
			return nil, err
		}
	}

	if c.pool == nil {
		pool, err := ants.NewPool(runtime.NumCPU())
		if err != nil {
			return nil, err
		}
		c.pool = pool
	}

	return c, nil
}

// Close releases the worker pool.
func (c *Cache) Close() {
	if c.pool != nil {
		c.pool.Release()
	}
}

func (c *Cache) state(owner string) *ownerState {
	if st, ok := c.owners.Load(owner); ok {
		return st.(*ownerState)
	}
	st, _ := c.owners.LoadOrStore(owner, &ownerState{})
	return st.(*ownerState)
}

// Snapshot returns the owner's current snapshot. It blocks on a rebuild only when the
// stale handler runs one inline. When the snapshot is missing or invalidated, the last good snapshot (possibly empty)
// is returned together with ErrCacheStale and a rebuild is triggered.
func (c *Cache) Snapshot(ctx context.Context, owner string) (*Snapshot, error) {
	st := c.state(owner)
	snap := st.snapshot.Load()
	if snap != nil && !st.stale.Load() {
		return snap, nil
	}

	c.trigger(ctx, owner, st)
	// A stale handler that rebuilds inline has already swapped in a fresh snapshot.
	if fresh := st.snapshot.Load(); fresh != nil && fresh != snap && !st.stale.Load() {
		return fresh, nil
	}
	if snap == nil {
		snap = NewSnapshot(owner, 0, time.Time{}, map[string]Entry{})
	}
	return snap, ErrCacheStale
}

// Invalidate marks the owner's snapshot stale. Readers keep using it until a rebuild lands.
func (c *Cache) Invalidate(owner string) {
	c.state(owner).stale.Store(true)
}

func (c *Cache) trigger(ctx context.Context, owner string, st *ownerState) {
	now := c.now().UnixNano()
	last := st.lastTrigger.Load()
	if last != 0 && now-last < int64(retriggerInterval) {
		return
	}
	if !st.lastTrigger.CompareAndSwap(last, now) {
		return
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "navigation cache stale, triggering rebuild", "owner", owner)
	if c.onStale != nil {
		c.onStale(ctx, owner)
		return
	}
	if c.inline {
		if _, err := c.Rebuild(ctx, owner); err != nil {
			c.logger.WarnContext(ctx, "inline navigation rebuild failed", "owner", owner, "error", err)
		}
		return
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		if _, err := c.Rebuild(bg, owner); err != nil {
			c.logger.WarnContext(bg, "background navigation rebuild failed", "owner", owner, "error", err)
		}
	}()
}

// Rebuild recomputes the owner's full adjacency and swaps it in atomically.
// Concurrent calls for the same owner share a single execution; the joining
// calls report Coalesced. A failed rebuild leaves the previous snapshot in place.
func (c *Cache) Rebuild(ctx context.Context, owner string) (RebuildResult, error) {
	start := c.now()
	executed := false

	v, err, _ := c.group.Do(owner, func() (any, error) {
		executed = true
		// The rebuild outlives the first caller so joiners are not cancelled with it.
		return c.rebuild(context.WithoutCancel(ctx), owner)
	})
	if err != nil {
		return RebuildResult{}, err
	}

	snap := v.(*Snapshot)
	return RebuildResult{
		EntriesRebuilt: snap.Len(),
		DurationMs:     c.now().Sub(start).Milliseconds(),
		Coalesced:      !executed,
		Version:        snap.Version,
	}, nil
}

func (c *Cache) rebuild(ctx context.Context, owner string) (*Snapshot, error) {
	logger := contextutil.LoggerFromContext(ctx)
	start := c.now()

	ids, err := c.contents.ListIDsByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list content for rebuild: %w", err)
	}
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	weights := make(map[string]map[string]float64, len(ids))
	for _, id := range ids {
		weights[id] = make(map[string]float64)
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	for _, id := range ids {
		wg.Add(1)
		submitErr := c.pool.Submit(func() {
			defer wg.Done()
			outgoing, incoming, err := c.links.Neighbors(ctx, owner, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to read links of %s: %w", id, err)
				}
				return
			}
			for _, to := range outgoing {
				addEdge(weights, known, id, to, linkWeight)
			}
			for _, from := range incoming {
				addEdge(weights, known, id, from, backlinkWeight)
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to schedule link fetch: %w", submitErr)
			}
			mu.Unlock()
		}
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	if c.access != nil {
		patterns, err := c.access.ListPairs(ctx, owner)
		if err != nil {
			logger.WarnContext(ctx, "co-retrieval counters unavailable, rebuilding from links only", "owner", owner, "error", err)
		} else {
			foldCoRetrieval(weights, known, patterns)
		}
	}

	version := c.version.Add(1)
	entries := make(map[string]Entry, len(weights))
	for id, neighbors := range weights {
		entries[id] = Entry{ContentID: id, Neighbors: sortedNeighbors(neighbors), Version: version}
	}
	snap := NewSnapshot(owner, version, c.now(), entries)

	st := c.state(owner)
	st.snapshot.Store(snap)
	st.stale.Store(false)
	st.lastTrigger.Store(0)

	logger.InfoContext(ctx, "navigation cache rebuilt",
		"owner", owner,
		"entries", len(entries),
		"version", version,
		"duration_ms", c.now().Sub(start).Milliseconds(),
	)
	return snap, nil
}

// addEdge records from -> to. Links to content the owner no longer has are dropped.
func addEdge(weights map[string]map[string]float64, known map[string]struct{}, from, to string, w float64) {
	if from == to {
		return
	}
	if _, ok := known[to]; !ok {
		return
	}
	// Keep the strongest structural relation when a pair links both ways.
	if w > weights[from][to] {
		weights[from][to] = w
	}
}

// foldCoRetrieval adds a symmetric boost scaled by log1p(count) relative to the busiest pair.
func foldCoRetrieval(weights map[string]map[string]float64, known map[string]struct{}, patterns []storage.AccessPattern) {
	var maxCount uint64
	for _, p := range patterns {
		maxCount = max(maxCount, p.Count)
	}
	if maxCount == 0 {
		return
	}
	norm := math.Log1p(float64(maxCount))
	for _, p := range patterns {
		_, okA := known[p.A]
		_, okB := known[p.B]
		if !okA || !okB || p.A == p.B {
			continue
		}
		boost := coRetrievalWeight * math.Log1p(float64(p.Count)) / norm
		weights[p.A][p.B] += boost
		weights[p.B][p.A] += boost
	}
}

func sortedNeighbors(m map[string]float64) []Neighbor {
	out := make([]Neighbor, 0, len(m))
	for id, w := range m {
		out = append(out, Neighbor{ID: id, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RecordAccess counts a co-retrieval event for every unordered pair among the first
// window ids. Duplicate ids are ignored. The owner's snapshot is invalidated so the
// new counts are folded in by the next rebuild.
func (c *Cache) RecordAccess(ctx context.Context, owner string, ids []string) error {
	if c.access == nil {
		return nil
	}
	pairs := Pairs(ids, c.accessWindow)
	if len(pairs) == 0 {
		return nil
	}
	if err := c.access.Increment(ctx, owner, pairs, c.now()); err != nil {
		return fmt.Errorf("failed to record access: %w", err)
	}
	c.Invalidate(owner)
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "recorded co-retrieval", "owner", owner, "pairs", len(pairs))
	return nil
}

// Pairs returns every unordered pair (a < b) among the first window distinct ids.
func Pairs(ids []string, window int) [][2]string {
	seen := make(map[string]struct{}, window)
	capped := make([]string, 0, window)
	for _, id := range ids {
		if len(capped) == window {
			break
		}
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		capped = append(capped, id)
	}

	pairs := make([][2]string, 0, len(capped)*(len(capped)-1)/2)
	for i := 0; i < len(capped); i++ {
		for j := i + 1; j < len(capped); j++ {
			a, b := capped[i], capped[j]
			if b < a {
				a, b = b, a
			}
			pairs = append(pairs, [2]string{a, b})
		}
	}
	return pairs
}
