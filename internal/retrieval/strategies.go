package retrieval

import (
	"context"
	"errors"
	"fmt"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/navcache"
	"recall-ai/internal/storage"
	"recall-ai/internal/textutil"
	"recall-ai/internal/tier"
	"recall-ai/internal/vectorstore"
)

// graphFanout caps graph candidates at this multiple of the profile's TopK.
const graphFanout = 4

// strategyOutput is what one strategy contributes to a call.
type strategyOutput struct {
	candidates []Candidate
	// seeds are content IDs in rank order, used to start graph expansion.
	seeds []string
	// clusterScores maps a selected topic's cluster to the topic's score.
	clusterScores map[string]float64
}

func (c *Coordinator) candidate(content storage.Content, s tier.Strategy, raw float64) Candidate {
	excerpt := textutil.Truncate(content.Text, c.deps.ExcerptRunes)
	return Candidate{
		SourceType: content.SourceType,
		SourceID:   content.ID,
		ParentID:   content.ParentID,
		Title:      content.Title,
		Excerpt:    excerpt,
		Scores:     map[tier.Strategy]float64{s: raw},
		UpdatedAt:  content.UpdatedAt,
		Hops:       -1,
		Tokens:     textutil.EstimateTokens(excerpt),
	}
}

// appendSeeds adds content as a graph seed. Links are stored between notes, so a
// chunk also seeds its parent note.
func appendSeeds(seeds []string, content storage.Content) []string {
	seeds = append(seeds, content.ID)
	if content.SourceType == storage.SourceChunk && content.ParentID != "" {
		seeds = append(seeds, content.ParentID)
	}
	return seeds
}

func (c *Coordinator) vectorSearch(ctx context.Context, q Query, p tier.Profile) (strategyOutput, error) {
	var out strategyOutput
	if c.deps.Embedder == nil || c.deps.Vectors == nil {
		return out, errors.New("vector search is not configured")
	}

	vec, err := c.deps.Embedder.EmbedQuery(ctx, q.Text)
	if err != nil {
		return out, fmt.Errorf("embed query: %w", err)
	}

	hits, err := c.deps.Vectors.Search(ctx, c.deps.Collection, vec, p.TopK, map[string]any{
		vectorstore.PayloadOwner: q.Owner,
	})
	if err != nil {
		return out, fmt.Errorf("vector search: %w", err)
	}
	if len(hits) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.PointID)
	}
	byID, err := c.load(ctx, q.Owner, ids)
	if err != nil {
		return out, err
	}

	for _, hit := range hits {
		content, ok := byID[hit.PointID]
		if !ok {
			// Indexed but no longer stored.
			continue
		}
		out.candidates = append(out.candidates, c.candidate(content, tier.Vector, float64(hit.Score)))
		out.seeds = appendSeeds(out.seeds, content)
	}
	return out, nil
}

func (c *Coordinator) lexicalSearch(ctx context.Context, q Query, p tier.Profile) (strategyOutput, error) {
	var out strategyOutput
	if c.deps.Lexical == nil {
		return out, errors.New("lexical search is not configured")
	}

	hits, err := c.deps.Lexical.SearchLexical(ctx, q.Owner, q.Text, p.TopK)
	if err != nil {
		return out, fmt.Errorf("lexical search: %w", err)
	}
	for _, hit := range hits {
		out.candidates = append(out.candidates, c.candidate(hit.Content, tier.Lexical, float64(hit.Rank)))
		out.seeds = appendSeeds(out.seeds, hit.Content)
	}
	return out, nil
}

type reach struct {
	hops   int
	weight float64
}

// graphExpand walks the navigation snapshot breadth-first from seeds up to MaxHops.
// Each reached item keeps its shortest hop distance and the heaviest path weight
// at that distance. Seeds themselves are not returned.
func (c *Coordinator) graphExpand(ctx context.Context, q Query, p tier.Profile, seeds []string) (strategyOutput, error) {
	var out strategyOutput
	if c.deps.Navigation == nil {
		return out, errors.New("navigation cache is not configured")
	}
	if len(seeds) == 0 || p.MaxHops == 0 {
		return out, nil
	}

	snap, err := c.deps.Navigation.Snapshot(ctx, q.Owner)
	if errors.Is(err, navcache.ErrCacheStale) {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "using stale navigation snapshot",
			"owner", q.Owner,
			"entries", snap.Len(),
		)
	} else if err != nil {
		return out, fmt.Errorf("navigation snapshot: %w", err)
	}

	limit := graphFanout * p.TopK
	visited := make(map[string]struct{}, len(seeds))
	pathWeight := make(map[string]float64, len(seeds))
	var frontier []string
	for _, id := range seeds {
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		pathWeight[id] = 1
		frontier = append(frontier, id)
	}

	found := make(map[string]reach)
	var order []string
	for hop := 1; hop <= p.MaxHops && len(frontier) > 0 && len(order) < limit; hop++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		var next []string
		for _, id := range frontier {
			for _, n := range snap.Neighbors(id) {
				w := pathWeight[id] * min(n.Weight, 1)
				if _, seen := visited[n.ID]; seen {
					if r, ok := found[n.ID]; ok && r.hops == hop && w > r.weight {
						found[n.ID] = reach{hops: hop, weight: w}
						pathWeight[n.ID] = w
					}
					continue
				}
				if len(order) >= limit {
					continue
				}
				visited[n.ID] = struct{}{}
				found[n.ID] = reach{hops: hop, weight: w}
				pathWeight[n.ID] = w
				order = append(order, n.ID)
				next = append(next, n.ID)
			}
		}
		frontier = next
	}
	if len(order) == 0 {
		return out, nil
	}

	byID, err := c.load(ctx, q.Owner, order)
	if err != nil {
		return out, err
	}
	for _, id := range order {
		content, ok := byID[id]
		if !ok {
			continue
		}
		r := found[id]
		cand := c.candidate(content, tier.Graph, r.weight)
		cand.Hops = r.hops
		out.candidates = append(out.candidates, cand)
	}
	return out, nil
}

func (c *Coordinator) topicalSearch(ctx context.Context, q Query, p tier.Profile) (strategyOutput, error) {
	var out strategyOutput
	if c.deps.Topics == nil || c.deps.Selector == nil {
		return out, errors.New("topic selection is not configured")
	}

	summaries, err := c.deps.Topics.ListByOwner(ctx, q.Owner)
	if err != nil {
		return out, fmt.Errorf("list topics: %w", err)
	}
	if len(summaries) == 0 {
		return out, nil
	}

	budget := int(float64(p.TokenBudget) * c.deps.TopicBudgetShare)
	selected, err := c.deps.Selector.SelectTopics(ctx, q.Text, q.Owner, summaries, budget)
	if err != nil {
		return out, fmt.Errorf("select topics: %w", err)
	}

	byID := make(map[string]storage.Topic, len(summaries))
	for _, t := range summaries {
		byID[t.ID] = t
	}
	out.clusterScores = make(map[string]float64)
	for _, sel := range selected {
		t, ok := byID[sel.TopicID]
		if !ok {
			continue
		}
		out.candidates = append(out.candidates, Candidate{
			SourceType: storage.SourceTopic,
			SourceID:   t.ID,
			Title:      t.Title,
			Excerpt:    t.Summary,
			Scores:     map[tier.Strategy]float64{tier.Topical: sel.Score},
			UpdatedAt:  t.UpdatedAt,
			Hops:       -1,
			Tokens:     sel.Tokens,
		})
		if t.ClusterID != "" {
			out.clusterScores[t.ClusterID] = max(out.clusterScores[t.ClusterID], sel.Score)
		}
	}
	return out, nil
}

// clusterBoost gives items that belong to a selected topic's cluster a topical contribution.
// The returned candidates carry only the topical score and merge with the originals during fusion.
func (c *Coordinator) clusterBoost(ctx context.Context, owner string, candidates []Candidate, clusterScores map[string]float64) []Candidate {
	if c.deps.Clusters == nil || len(clusterScores) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, cand := range candidates {
		if cand.SourceType == storage.SourceTopic {
			continue
		}
		if _, ok := seen[cand.SourceID]; ok {
			continue
		}
		seen[cand.SourceID] = struct{}{}
		ids = append(ids, cand.SourceID)
	}
	if len(ids) == 0 {
		return nil
	}

	clusters, err := c.deps.Clusters.ClustersOf(ctx, owner, ids)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "cluster lookup failed, skipping cluster boost", "error", err)
		return nil
	}

	var boosts []Candidate
	boosted := make(map[string]struct{})
	for _, cand := range candidates {
		if cand.SourceType == storage.SourceTopic {
			continue
		}
		score, ok := clusterScores[clusters[cand.SourceID]]
		if !ok {
			continue
		}
		if _, done := boosted[cand.Key()]; done {
			continue
		}
		boosted[cand.Key()] = struct{}{}
		boost := cand
		boost.Scores = map[tier.Strategy]float64{tier.Topical: score * c.deps.ClusterBoost}
		boost.Hops = -1
		boosts = append(boosts, boost)
	}
	return boosts
}

func (c *Coordinator) load(ctx context.Context, owner string, ids []string) (map[string]storage.Content, error) {
	contents, err := c.deps.Contents.GetByIDs(ctx, owner, ids)
	if err != nil {
		return nil, fmt.Errorf("load contents: %w", err)
	}
	byID := make(map[string]storage.Content, len(contents))
	for _, content := range contents {
		byID[content.ID] = content
	}
	return byID, nil
}
