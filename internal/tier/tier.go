package tier

import (
	"fmt"
	"strings"
	"time"
)

// Tier is a named retrieval profile.
type Tier string

const (
	Fast     Tier = "FAST"
	Standard Tier = "STANDARD"
	Deep     Tier = "DEEP"
)

// Parse converts a case-insensitive tier name into a Tier.
func Parse(s string) (Tier, error) {
	switch Tier(strings.ToUpper(strings.TrimSpace(s))) {
	case Fast:
		return Fast, nil
	case Standard:
		return Standard, nil
	case Deep:
		return Deep, nil
	default:
		return "", fmt.Errorf("unknown tier %q", s)
	}
}

// Strategy names one retrieval source.
type Strategy string

const (
	Vector  Strategy = "vector"
	Lexical Strategy = "lexical"
	Graph   Strategy = "graph"
	Topical Strategy = "topical"
)

// Weights are the fusion weights applied to each signal.
type Weights struct {
	Semantic float64 `yaml:"semantic"`
	Lexical  float64 `yaml:"lexical"`
	Graph    float64 `yaml:"graph"`
	Topical  float64 `yaml:"topical"`
	Recency  float64 `yaml:"recency"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Semantic + w.Lexical + w.Graph + w.Topical + w.Recency
}

// Profile is the retrieval configuration bound to a tier.
type Profile struct {
	Strategies      []Strategy    `yaml:"strategies"`
	TokenBudget     int           `yaml:"token_budget"`
	MaxHops         int           `yaml:"max_hops"`
	TopK            int           `yaml:"top_k"`
	Weights         Weights       `yaml:"weights"`
	StrategyTimeout time.Duration `yaml:"strategy_timeout"`
	Deadline        time.Duration `yaml:"deadline"`
}

// Enabled reports whether the profile runs strategy s.
func (p Profile) Enabled(s Strategy) bool {
	for _, enabled := range p.Strategies {
		if enabled == s {
			return true
		}
	}
	return false
}

// Validate checks that a profile is usable.
func (p Profile) Validate() error {
	if len(p.Strategies) == 0 {
		return fmt.Errorf("at least one strategy is required")
	}
	for _, s := range p.Strategies {
		switch s {
		case Vector, Lexical, Graph, Topical:
		default:
			return fmt.Errorf("unknown strategy %q", s)
		}
	}
	if p.TokenBudget <= 0 {
		return fmt.Errorf("token_budget must be positive, got %d", p.TokenBudget)
	}
	if p.MaxHops < 0 {
		return fmt.Errorf("max_hops must not be negative, got %d", p.MaxHops)
	}
	if p.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", p.TopK)
	}
	if p.Weights.Sum() <= 0 {
		return fmt.Errorf("weights must sum to a positive value")
	}
	if p.StrategyTimeout <= 0 || p.Deadline <= 0 {
		return fmt.Errorf("strategy_timeout and deadline must be positive")
	}
	return nil
}

// Profiles maps each tier to its profile.
type Profiles map[Tier]Profile

// DefaultProfiles returns the built-in tier profiles.
func DefaultProfiles() Profiles {
	return Profiles{
		Fast: {
			Strategies:      []Strategy{Vector, Lexical},
			TokenBudget:     1500,
			MaxHops:         0,
			TopK:            8,
			Weights:         Weights{Semantic: 0.5, Lexical: 0.35, Recency: 0.15},
			StrategyTimeout: 400 * time.Millisecond,
			Deadline:        800 * time.Millisecond,
		},
		Standard: {
			Strategies:      []Strategy{Vector, Lexical, Graph},
			TokenBudget:     3000,
			MaxHops:         1,
			TopK:            12,
			Weights:         Weights{Semantic: 0.45, Lexical: 0.25, Graph: 0.15, Recency: 0.15},
			StrategyTimeout: 800 * time.Millisecond,
			Deadline:        1500 * time.Millisecond,
		},
		Deep: {
			Strategies:      []Strategy{Vector, Lexical, Graph, Topical},
			TokenBudget:     6000,
			MaxHops:         3,
			TopK:            20,
			Weights:         Weights{Semantic: 0.35, Lexical: 0.2, Graph: 0.2, Topical: 0.15, Recency: 0.1},
			StrategyTimeout: 2 * time.Second,
			Deadline:        4 * time.Second,
		},
	}
}

// Get returns the profile for t, falling back to the STANDARD profile.
func (p Profiles) Get(t Tier) Profile {
	if profile, ok := p[t]; ok {
		return profile
	}
	if profile, ok := p[Standard]; ok {
		return profile
	}
	return DefaultProfiles()[Standard]
}
