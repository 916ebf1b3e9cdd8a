package retrieval

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deps.go -package=mocks recall-ai/internal/retrieval Embedder,VectorSearcher,LexicalSearcher,ContentStore,NavigationReader,TopicStore,TopicSelector,ClusterStore,AccessRecorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recall-ai/internal/navcache"
	"recall-ai/internal/packer"
	"recall-ai/internal/ranking"
	"recall-ai/internal/storage"
	"recall-ai/internal/tier"
	"recall-ai/internal/topics"
	"recall-ai/internal/vectorstore"
)

// DefaultExcerptRunes bounds how much of an item's text becomes its excerpt.
const DefaultExcerptRunes = 4000

// Embedder embeds query text.
type Embedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// VectorSearcher runs similarity search over the vector index.
type VectorSearcher interface {
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]vectorstore.SearchResult, error)
}

// LexicalSearcher runs ranked term search over stored content.
type LexicalSearcher interface {
	SearchLexical(ctx context.Context, owner, query string, limit int) ([]storage.LexicalHit, error)
}

// ContentStore loads content items by ID.
type ContentStore interface {
	GetByIDs(ctx context.Context, owner string, ids []string) ([]storage.Content, error)
}

// NavigationReader serves navigation cache snapshots.
type NavigationReader interface {
	Snapshot(ctx context.Context, owner string) (*navcache.Snapshot, error)
}

// TopicStore lists an owner's topic summaries.
type TopicStore interface {
	ListByOwner(ctx context.Context, owner string) ([]storage.Topic, error)
}

// TopicSelector chooses topic summaries for a query.
type TopicSelector interface {
	SelectTopics(ctx context.Context, query, owner string, summaries []storage.Topic, budget int) ([]topics.TopicScore, error)
}

// ClusterStore maps content items to their community cluster.
type ClusterStore interface {
	ClustersOf(ctx context.Context, owner string, ids []string) (map[string]string, error)
}

// AccessRecorder records which items were retrieved together.
type AccessRecorder interface {
	EnqueueAccess(ctx context.Context, owner string, ids []string) error
}

// Deps holds every collaborator of a Coordinator. Optional fields may be nil;
// a strategy whose collaborators are missing reports itself unavailable.
type Deps struct {
	Embedder   Embedder
	Vectors    VectorSearcher
	Collection string
	Lexical    LexicalSearcher
	Contents   ContentStore
	Navigation NavigationReader
	Topics     TopicStore
	Selector   TopicSelector
	// Clusters is optional. Without it the cluster boost is skipped.
	Clusters ClusterStore
	// Access is optional. Without it co-retrieval is not recorded.
	Access AccessRecorder

	Profiles tier.Profiles
	Fusion   ranking.Options
	// ScanWindow bounds how many oversized results packing may skip.
	ScanWindow   int
	ExcerptRunes int
	// TopicBudgetShare is the share of the token budget spent on topic selection.
	TopicBudgetShare float64
	// ClusterBoost scales the topical contribution given to items in a selected topic's cluster.
	ClusterBoost float64
	Now          func() time.Time
}

func (d *Deps) withDefaults() {
	if d.Profiles == nil {
		d.Profiles = tier.DefaultProfiles()
	}
	if d.Fusion == (ranking.Options{}) {
		d.Fusion = ranking.DefaultOptions()
	}
	if d.ScanWindow <= 0 {
		d.ScanWindow = packer.DefaultScanWindow
	}
	if d.ExcerptRunes <= 0 {
		d.ExcerptRunes = DefaultExcerptRunes
	}
	if d.TopicBudgetShare <= 0 || d.TopicBudgetShare > 1 {
		d.TopicBudgetShare = 0.25
	}
	if d.ClusterBoost <= 0 {
		d.ClusterBoost = 0.5
	}
	if d.Now == nil {
		d.Now = time.Now
	}
}

func (d *Deps) validate() error {
	if d.Contents == nil {
		return errors.New("retrieval: content store is required")
	}
	for t, p := range d.Profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("retrieval: profile %s: %w", t, err)
		}
	}
	return nil
}
