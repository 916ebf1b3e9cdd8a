package links

import (
	"context"
	"fmt"
	"strings"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/storage"
)

// NoteLister lists an owner's notes with their markdown.
type NoteLister interface {
	ListNotes(ctx context.Context, owner string) ([]storage.Content, error)
}

// LinkWriter replaces an owner's structural links.
type LinkWriter interface {
	ReplaceForOwner(ctx context.Context, owner string, links []storage.Link) error
}

// Indexer re-derives structural links from stored notes.
type Indexer struct {
	notes     NoteLister
	links     LinkWriter
	extractor *Extractor
}

// NewIndexer creates a new link indexer.
func NewIndexer(notes NoteLister, links LinkWriter) *Indexer {
	return &Indexer{notes: notes, links: links, extractor: NewExtractor()}
}

// RefreshOwner parses every note of the owner, resolves link targets against note IDs
// and titles, and replaces the owner's links. It returns the number of links stored.
// Targets that do not resolve to a note of the owner are dropped.
func (ix *Indexer) RefreshOwner(ctx context.Context, owner string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	notes, err := ix.notes.ListNotes(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("failed to list notes: %w", err)
	}

	resolve := make(map[string]string, 2*len(notes))
	for _, n := range notes {
		if n.Title != "" {
			if _, taken := resolve[strings.ToLower(n.Title)]; !taken {
				resolve[strings.ToLower(n.Title)] = n.ID
			}
		}
	}
	// IDs win over titles.
	for _, n := range notes {
		resolve[strings.ToLower(n.ID)] = n.ID
	}

	var found []storage.Link
	unresolved := 0
	for _, n := range notes {
		for _, target := range ix.extractor.Targets([]byte(n.Text)) {
			to, ok := resolve[strings.ToLower(target)]
			if !ok {
				unresolved++
				continue
			}
			if to == n.ID {
				continue
			}
			found = append(found, storage.Link{FromID: n.ID, ToID: to})
		}
	}

	if err := ix.links.ReplaceForOwner(ctx, owner, found); err != nil {
		return 0, fmt.Errorf("failed to store links: %w", err)
	}

	logger.InfoContext(ctx, "links refreshed",
		"owner", owner,
		"notes", len(notes),
		"links", len(found),
		"unresolved", unresolved,
	)
	return len(found), nil
}
