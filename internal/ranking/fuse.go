package ranking

import (
	"math"
	"sort"
	"time"

	"recall-ai/internal/storage"
	"recall-ai/internal/tier"
)

// Candidate is one retrievable item with strategy-attributed raw scores.
//
// Raw score meaning per strategy:
//   - vector: cosine similarity
//   - lexical: 1-based rank in the lexical result list
//   - graph: edge weight of the path from the seed, in (0, 1]
//   - topical: topic relevance in [0, 1]
type Candidate struct {
	SourceType string
	SourceID   string
	// ParentID groups chunks of the same note for the diversity penalty.
	ParentID  string
	Title     string
	Excerpt   string
	Scores    map[tier.Strategy]float64
	UpdatedAt time.Time
	// Hops is the graph distance from the nearest seed, or -1 when not reached by graph expansion.
	Hops   int
	Tokens int
}

// Key returns the dedup key of the candidate.
func (c Candidate) Key() string {
	return c.SourceType + ":" + c.SourceID
}

// source groups a note with its chunks for the diversity penalty.
func (c Candidate) source() string {
	if c.ParentID != "" {
		return c.ParentID
	}
	if c.SourceType == storage.SourceNote {
		return c.SourceID
	}
	return c.Key()
}

// Result is a fused, ranked candidate.
type Result struct {
	Candidate
	// Score is the fused score in [0, 1].
	Score float64
	// Rank is the 1-based position in the ranked list.
	Rank       int
	Recency    float64
	Strategies []tier.Strategy
}

// Options tune fusion outside of the per-tier weights.
type Options struct {
	HalfLife         time.Duration
	GraphDecay       float64
	DiversityPenalty float64
	DiversityBand    float64
}

// DefaultOptions returns the standard fusion options.
func DefaultOptions() Options {
	return Options{
		HalfLife:         30 * 24 * time.Hour,
		GraphDecay:       0.6,
		DiversityPenalty: 0.85,
		DiversityBand:    0.1,
	}
}

var strategyOrder = []tier.Strategy{tier.Vector, tier.Lexical, tier.Graph, tier.Topical}

// Fuse merges candidates by key, scores them with the given weights and returns them
// ranked. When several strategies return the same item their contributions are summed.
// Ties are broken by recency and then by key so the order never depends on which
// strategy finished first.
func Fuse(candidates []Candidate, weights tier.Weights, opts Options, now time.Time) []Result {
	if len(candidates) == 0 {
		return nil
	}
	if opts.HalfLife <= 0 {
		opts.HalfLife = DefaultOptions().HalfLife
	}

	merged := merge(candidates)

	weightSum := weights.Sum()
	results := make([]Result, 0, len(merged))
	for _, c := range merged {
		recency := recencyBoost(c.UpdatedAt, now, opts.HalfLife)
		var score float64
		if weightSum > 0 {
			score = (weights.Semantic*semantic(c) +
				weights.Lexical*lexical(c) +
				weights.Graph*graph(c, opts.GraphDecay) +
				weights.Topical*clamp01(c.Scores[tier.Topical]) +
				weights.Recency*recency) / weightSum
		}
		results = append(results, Result{
			Candidate:  c,
			Score:      clamp01(score),
			Recency:    recency,
			Strategies: strategiesOf(c),
		})
	}

	sortResults(results)
	applyDiversity(results, opts)
	sortResults(results)

	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

func merge(candidates []Candidate) []Candidate {
	index := make(map[string]int, len(candidates))
	merged := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		i, seen := index[c.Key()]
		if !seen {
			cp := c
			cp.Scores = make(map[tier.Strategy]float64, len(c.Scores))
			for s, v := range c.Scores {
				cp.Scores[s] = v
			}
			if _, ok := c.Scores[tier.Graph]; !ok {
				cp.Hops = -1
			}
			index[c.Key()] = len(merged)
			merged = append(merged, cp)
			continue
		}

		existing := &merged[i]
		for s, v := range c.Scores {
			prev, ok := existing.Scores[s]
			switch {
			case !ok:
				existing.Scores[s] = v
			case s == tier.Lexical && v < prev:
				existing.Scores[s] = v
			case s != tier.Lexical && v > prev:
				existing.Scores[s] = v
			}
		}
		if _, ok := c.Scores[tier.Graph]; ok && (existing.Hops < 0 || c.Hops < existing.Hops) {
			existing.Hops = c.Hops
		}
		if c.UpdatedAt.After(existing.UpdatedAt) {
			existing.UpdatedAt = c.UpdatedAt
		}
		if existing.Excerpt == "" {
			existing.Excerpt = c.Excerpt
			existing.Tokens = c.Tokens
		}
		if existing.Title == "" {
			existing.Title = c.Title
		}
		if existing.ParentID == "" {
			existing.ParentID = c.ParentID
		}
	}
	return merged
}

func semantic(c Candidate) float64 {
	return clamp01(c.Scores[tier.Vector])
}

func lexical(c Candidate) float64 {
	rank, ok := c.Scores[tier.Lexical]
	if !ok || rank < 1 {
		return 0
	}
	return 1 / rank
}

func graph(c Candidate, decay float64) float64 {
	weight, ok := c.Scores[tier.Graph]
	if !ok || c.Hops < 0 {
		return 0
	}
	return math.Pow(decay, float64(c.Hops)) * clamp01(weight)
}

func recencyBoost(updated, now time.Time, halfLife time.Duration) float64 {
	if updated.IsZero() {
		return 0
	}
	age := now.Sub(updated)
	if age < 0 {
		age = 0
	}
	return math.Exp(-math.Ln2 * float64(age) / float64(halfLife))
}

// applyDiversity expects results sorted by score. The third and later results from one
// source that sit within the band of that source's best score are penalized.
func applyDiversity(results []Result, opts Options) {
	if opts.DiversityPenalty <= 0 || opts.DiversityPenalty >= 1 {
		return
	}
	seen := make(map[string]int)
	best := make(map[string]float64)
	for i := range results {
		src := results[i].source()
		seen[src]++
		if seen[src] == 1 {
			best[src] = results[i].Score
			continue
		}
		if seen[src] > 2 && best[src]-results[i].Score <= opts.DiversityBand {
			results[i].Score *= opts.DiversityPenalty
		}
	}
}

func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Recency != b.Recency {
			return a.Recency > b.Recency
		}
		return a.Key() < b.Key()
	})
}

func strategiesOf(c Candidate) []tier.Strategy {
	out := make([]tier.Strategy, 0, len(c.Scores))
	for _, s := range strategyOrder {
		if _, ok := c.Scores[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
