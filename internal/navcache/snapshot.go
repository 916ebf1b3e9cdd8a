package navcache

import (
	"time"
)

// Neighbor is a weighted edge to another content item.
type Neighbor struct {
	ID     string
	Weight float64
}

// Entry is the adjacency of one content item.
type Entry struct {
	ContentID string
	Neighbors []Neighbor
	Version   uint64
}

// Snapshot is an immutable, complete adjacency for one owner.
// A snapshot is never modified after it is published.
type Snapshot struct {
	Owner   string
	Version uint64
	BuiltAt time.Time
	entries map[string]Entry
}

// NewSnapshot wraps entries in a snapshot. The caller must not modify entries afterwards.
func NewSnapshot(owner string, version uint64, builtAt time.Time, entries map[string]Entry) *Snapshot {
	return &Snapshot{Owner: owner, Version: version, BuiltAt: builtAt, entries: entries}
}

// Neighbors returns the neighbors of id ordered by weight, heaviest first.
// The returned slice must not be modified.
func (s *Snapshot) Neighbors(id string) []Neighbor {
	if s == nil {
		return nil
	}
	return s.entries[id].Neighbors
}

// Entry returns the entry for id.
func (s *Snapshot) Entry(id string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	e, ok := s.entries[id]
	return e, ok
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}
