package storage

import "time"

// Source types stored in the contents table.
const (
	SourceNote  = "note"
	SourceChunk = "chunk"
	SourceTopic = "topic"
)

// Content is a retrievable item owned by a user: a note or a chunk of a document.
type Content struct {
	ID         string // UUID
	Owner      string
	SourceType string // note, chunk
	ParentID   string // Note a chunk belongs to; empty for notes
	Title      string
	Text       string // Markdown for notes, plain text for chunks
	UpdatedAt  time.Time
}

// LexicalHit is one lexical search match with its 1-based rank.
type LexicalHit struct {
	Content Content
	Rank    int
	Score   float64
}

// Link is a structural link between two content items of one owner.
type Link struct {
	FromID string
	ToID   string
}

// Topic is a precomputed topic summary.
type Topic struct {
	ID         string
	Owner      string
	Title      string
	Summary    string
	Keywords   []string
	Embedding  []float32
	ClusterID  string // Community the topic summarizes
	TokenCount int
	UpdatedAt  time.Time
}

// AccessPattern is the co-retrieval counter of an unordered content pair (A < B).
type AccessPattern struct {
	A        string
	B        string
	Count    uint64
	LastSeen time.Time
}
