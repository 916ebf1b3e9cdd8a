package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/packer"
	"recall-ai/internal/ranking"
	"recall-ai/internal/storage"
	"recall-ai/internal/tier"
)

// errNotEnabled resolves the futures of strategies the tier does not run.
var errNotEnabled = errors.New("strategy not enabled for tier")

// strategyOrder fixes the order strategies are reported in.
var strategyOrder = []tier.Strategy{tier.Vector, tier.Lexical, tier.Graph, tier.Topical}

// Coordinator runs the retrieval strategies of a tier concurrently and turns their
// candidates into a ranked, budget-packed context.
type Coordinator struct {
	deps Deps
}

// NewCoordinator creates a coordinator from its collaborators.
func NewCoordinator(deps Deps) (*Coordinator, error) {
	deps.withDefaults()
	if err := deps.validate(); err != nil {
		return nil, err
	}
	return &Coordinator{deps: deps}, nil
}

// future holds the outcome of one strategy task.
type future struct {
	done chan struct{}
	out  strategyOutput
	err  error
}

func newFuture() *future {
	return &future{done: make(chan struct{})}
}

func (f *future) resolve(out strategyOutput, err error) {
	f.out, f.err = out, err
	close(f.done)
}

// wait blocks until the task terminates or ctx is done. It reports whether the
// task had terminated; only then may out and err be read.
func (f *future) wait(ctx context.Context) bool {
	select {
	case <-f.done:
		return true
	case <-ctx.Done():
		select {
		case <-f.done:
			return true
		default:
			return false
		}
	}
}

// RetrieveContext answers a query with ranked results and a packed, cited context.
//
// Strategy failures and timeouts never fail the call; they are listed in
// DegradedSources. When the call deadline fires, results from strategies that
// already finished are used and Partial is set. Only invalid queries return an error.
func (c *Coordinator) RetrieveContext(ctx context.Context, q Query) (*Response, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, &ValidationError{Field: "text", Message: "cannot be empty"}
	}
	if strings.TrimSpace(q.Owner) == "" {
		return nil, &ValidationError{Field: "owner", Message: "cannot be empty"}
	}

	logger := contextutil.LoggerFromContext(ctx).With("owner", q.Owner)
	start := time.Now()

	t := c.resolveTier(ctx, q)
	profile := c.deps.Profiles.Get(t)

	callCtx, cancel := context.WithTimeout(ctx, profile.Deadline)
	defer cancel()

	futures := make(map[tier.Strategy]*future, len(strategyOrder))
	for _, s := range strategyOrder {
		futures[s] = newFuture()
		if !profile.Enabled(s) {
			futures[s].resolve(strategyOutput{}, errNotEnabled)
		}
	}

	if profile.Enabled(tier.Vector) {
		go c.run(callCtx, tier.Vector, profile.StrategyTimeout, futures[tier.Vector], func(sctx context.Context) (strategyOutput, error) {
			return c.vectorSearch(sctx, q, profile)
		})
	}
	if profile.Enabled(tier.Lexical) {
		go c.run(callCtx, tier.Lexical, profile.StrategyTimeout, futures[tier.Lexical], func(sctx context.Context) (strategyOutput, error) {
			return c.lexicalSearch(sctx, q, profile)
		})
	}
	if profile.Enabled(tier.Graph) {
		go func() {
			// The graph timeout starts once seeds are known, so a slow vector
			// search does not also time out graph expansion.
			seeds, ok, err := awaitSeeds(callCtx, futures[tier.Vector], futures[tier.Lexical])
			if !ok {
				futures[tier.Graph].resolve(strategyOutput{}, &StrategyError{Strategy: tier.Graph, Kind: ErrDeadlineExceeded, Err: callCtx.Err()})
				return
			}
			if err != nil {
				futures[tier.Graph].resolve(strategyOutput{}, &StrategyError{Strategy: tier.Graph, Kind: ErrStrategyUnavailable, Err: err})
				return
			}
			c.run(callCtx, tier.Graph, profile.StrategyTimeout, futures[tier.Graph], func(sctx context.Context) (strategyOutput, error) {
				return c.graphExpand(sctx, q, profile, seeds)
			})
		}()
	}
	if profile.Enabled(tier.Topical) {
		go c.run(callCtx, tier.Topical, profile.StrategyTimeout, futures[tier.Topical], func(sctx context.Context) (strategyOutput, error) {
			return c.topicalSearch(sctx, q, profile)
		})
	}

	resp := &Response{
		Results:         []ranking.Result{},
		Context:         []ContextItem{},
		Citations:       []Citation{},
		DegradedSources: []tier.Strategy{},
		Tier:            t,
	}

	var candidates []Candidate
	clusterScores := make(map[string]float64)
	for _, s := range strategyOrder {
		if !profile.Enabled(s) {
			continue
		}
		f := futures[s]
		var out strategyOutput
		var err error
		if f.wait(callCtx) {
			out, err = f.out, f.err
		} else {
			err = &StrategyError{Strategy: s, Kind: ErrDeadlineExceeded, Err: callCtx.Err()}
		}
		if err != nil {
			if errors.Is(err, ErrDeadlineExceeded) {
				resp.Partial = true
			}
			resp.DegradedSources = append(resp.DegradedSources, s)
			logger.WarnContext(ctx, "retrieval strategy degraded", "strategy", s, "error", err)
			continue
		}
		candidates = append(candidates, out.candidates...)
		for cluster, score := range out.clusterScores {
			clusterScores[cluster] = max(clusterScores[cluster], score)
		}
	}

	if len(clusterScores) > 0 && callCtx.Err() == nil {
		candidates = append(candidates, c.clusterBoost(callCtx, q.Owner, candidates, clusterScores)...)
	}

	results := ranking.Fuse(candidates, profile.Weights, c.deps.Fusion, c.deps.Now())
	if results != nil {
		resp.Results = results
	}

	packed := packer.Pack(resp.Results, func(r ranking.Result) int { return r.Tokens }, profile.TokenBudget, c.deps.ScanWindow)
	accessed := make([]string, 0, len(packed.Slots))
	for _, slot := range packed.Slots {
		r := slot.Item
		resp.Context = append(resp.Context, ContextItem{
			Slot:       slot.Slot,
			Rank:       slot.Rank,
			SourceType: r.SourceType,
			SourceID:   r.SourceID,
			Title:      r.Title,
			Text:       r.Excerpt,
			Score:      r.Score,
			Tokens:     slot.Tokens,
		})
		resp.Citations = append(resp.Citations, Citation{
			Slot:       slot.Slot,
			Rank:       slot.Rank,
			SourceType: r.SourceType,
			SourceID:   r.SourceID,
		})
		if r.SourceType != storage.SourceTopic {
			accessed = append(accessed, r.SourceID)
		}
	}
	resp.TokensUsed = packed.TokensUsed

	c.recordAccess(ctx, q.Owner, accessed)

	logger.InfoContext(ctx, "retrieval complete",
		"tier", t,
		"candidates", len(candidates),
		"results", len(resp.Results),
		"packed", len(resp.Context),
		"tokens_used", resp.TokensUsed,
		"token_budget", profile.TokenBudget,
		"degraded", resp.DegradedSources,
		"partial", resp.Partial,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func (c *Coordinator) resolveTier(ctx context.Context, q Query) tier.Tier {
	if q.Tier != nil {
		if _, ok := c.deps.Profiles[*q.Tier]; ok {
			return *q.Tier
		}
	}
	cls := tier.Classify(q.Text, q.History)
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "query classified",
		"tier", cls.Tier,
		"reason", cls.Reason,
		"time_qualified", cls.TimeQualified,
	)
	return cls.Tier
}

// run executes one strategy under its own timeout and resolves f with the outcome.
func (c *Coordinator) run(callCtx context.Context, s tier.Strategy, timeout time.Duration, f *future, fn func(context.Context) (strategyOutput, error)) {
	sctx, cancel := context.WithTimeout(callCtx, timeout)
	defer cancel()

	out, err := safeCall(sctx, fn)
	if err == nil {
		f.resolve(out, nil)
		return
	}

	kind := ErrStrategyUnavailable
	switch {
	case callCtx.Err() != nil:
		kind = ErrDeadlineExceeded
	case errors.Is(sctx.Err(), context.DeadlineExceeded):
		kind = ErrStrategyTimeout
	}
	f.resolve(strategyOutput{}, &StrategyError{Strategy: s, Kind: kind, Err: err})
}

func safeCall(ctx context.Context, fn func(context.Context) (strategyOutput, error)) (out strategyOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}

// awaitSeeds returns vector seeds, or lexical seeds when vector search produced none.
// ok is false when the call deadline fired first. err is set when every enabled
// seed source failed.
func awaitSeeds(ctx context.Context, vector, lexical *future) (seeds []string, ok bool, err error) {
	var enabled int
	var failures []error
	for _, f := range []*future{vector, lexical} {
		if !f.wait(ctx) {
			return nil, false, nil
		}
		if f.err == errNotEnabled {
			continue
		}
		enabled++
		if f.err != nil {
			failures = append(failures, f.err)
			continue
		}
		if len(f.out.seeds) > 0 {
			return f.out.seeds, true, nil
		}
	}
	if enabled > 0 && len(failures) == enabled {
		return nil, true, fmt.Errorf("no graph seeds: %w", errors.Join(failures...))
	}
	return nil, true, nil
}

func (c *Coordinator) recordAccess(ctx context.Context, owner string, ids []string) {
	if c.deps.Access == nil || len(ids) < 2 {
		return
	}
	if err := c.deps.Access.EnqueueAccess(context.WithoutCancel(ctx), owner, ids); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to enqueue access pattern", "owner", owner, "error", err)
	}
}
