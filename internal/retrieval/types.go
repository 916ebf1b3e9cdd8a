package retrieval

import (
	"errors"
	"fmt"

	"recall-ai/internal/ranking"
	"recall-ai/internal/tier"
)

var (
	// ErrStrategyUnavailable marks a strategy whose backend failed.
	ErrStrategyUnavailable = errors.New("strategy unavailable")
	// ErrStrategyTimeout marks a strategy that ran past its own timeout.
	ErrStrategyTimeout = errors.New("strategy timed out")
	// ErrDeadlineExceeded marks a strategy still running when the call deadline fired.
	ErrDeadlineExceeded = errors.New("retrieval deadline exceeded")
)

// Candidate is one retrievable item with strategy-attributed raw scores.
type Candidate = ranking.Candidate

// Query is one retrieval request.
type Query struct {
	Text    string
	History []string
	Owner   string
	// Tier forces a tier; nil lets the classifier decide.
	Tier *tier.Tier
}

// Citation points a context slot back to its source item.
type Citation struct {
	Slot       int    `json:"slot"`
	Rank       int    `json:"rank"`
	SourceType string `json:"source_type"`
	SourceID   string `json:"source_id"`
}

// ContextItem is one packed piece of context.
type ContextItem struct {
	Slot       int     `json:"slot"`
	Rank       int     `json:"rank"`
	SourceType string  `json:"source_type"`
	SourceID   string  `json:"source_id"`
	Title      string  `json:"title"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	Tokens     int     `json:"tokens"`
}

// Response is the outcome of RetrieveContext.
type Response struct {
	// Results holds every fused result, ranked.
	Results []ranking.Result
	// Context holds the results that fit the token budget, in rank order.
	Context   []ContextItem
	Citations []Citation
	// DegradedSources lists strategies whose contribution was dropped.
	DegradedSources []tier.Strategy
	// Partial is set when the call deadline fired before every strategy finished.
	Partial    bool
	Tier       tier.Tier
	TokensUsed int
}

// StrategyError reports why a strategy's contribution was dropped.
// errors.Is matches both its kind (ErrStrategyUnavailable, ErrStrategyTimeout,
// ErrDeadlineExceeded) and the underlying cause.
type StrategyError struct {
	Strategy tier.Strategy
	Kind     error
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s strategy: %v: %v", e.Strategy, e.Kind, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

func (e *StrategyError) Is(target error) bool {
	return target == e.Kind
}

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}
