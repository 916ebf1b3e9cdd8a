package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_content_store.go -package=mocks recall-ai/internal/storage ContentStore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"recall-ai/internal/textutil"
)

// maxLexicalTerms bounds the LIKE prefilter so long queries stay cheap.
const maxLexicalTerms = 8

// ContentStore defines the interface for content storage operations.
type ContentStore interface {
	// Upsert inserts a new content item or updates an existing one.
	Upsert(ctx context.Context, content *Content) error
	// GetByIDs returns the owner's content items with the given IDs. Missing IDs are skipped.
	GetByIDs(ctx context.Context, owner string, ids []string) ([]Content, error)
	// SearchLexical returns the owner's content ranked by lexical relevance to query.
	SearchLexical(ctx context.Context, owner, query string, limit int) ([]LexicalHit, error)
	// ListIDsByOwner returns all content IDs for the owner.
	ListIDsByOwner(ctx context.Context, owner string) ([]string, error)
	// ListChildIDs returns the IDs of the chunks that belong to parentID.
	ListChildIDs(ctx context.Context, owner, parentID string) ([]string, error)
	// DeleteByIDs removes the owner's content items with the given IDs.
	DeleteByIDs(ctx context.Context, owner string, ids []string) (int, error)
	// ListNotes returns the owner's notes including their markdown.
	ListNotes(ctx context.Context, owner string) ([]Content, error)
}

// ContentRepo provides methods for content operations.
// It implements the ContentStore interface.
type ContentRepo struct {
	db *sql.DB
}

// NewContentRepo creates a new ContentRepo.
func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

// Upsert inserts a new content item or updates an existing one.
// A UUID is generated when content.ID is empty; UpdatedAt defaults to now.
func (r *ContentRepo) Upsert(ctx context.Context, content *Content) error {
	if content.Owner == "" {
		return fmt.Errorf("content owner is required")
	}
	if content.ID == "" {
		content.ID = uuid.New().String()
	}
	if content.SourceType == "" {
		content.SourceType = SourceNote
	}
	if content.UpdatedAt.IsZero() {
		content.UpdatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contents (id, owner, source_type, parent_id, title, text, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 source_type = excluded.source_type, parent_id = excluded.parent_id,
		 title = excluded.title, text = excluded.text, updated_at = excluded.updated_at`,
		content.ID, content.Owner, content.SourceType, content.ParentID, content.Title, content.Text, content.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert content: %w", err)
	}
	return nil
}

// GetByIDs returns the owner's content items with the given IDs.
// IDs that do not exist or belong to another owner are skipped.
func (r *ContentRepo) GetByIDs(ctx context.Context, owner string, ids []string) ([]Content, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(ids)+1)
	args = append(args, owner)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, owner, source_type, parent_id, title, text, updated_at FROM contents WHERE owner = ? AND id IN ("+placeholders(len(ids))+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query contents: %w", err)
	}
	return scanContents(rows)
}

// SearchLexical returns the owner's content ranked by lexical relevance to query.
// A LIKE prefilter narrows rows to those containing a query term; the survivors are
// scored in process and ranked 1..n.
func (r *ContentRepo) SearchLexical(ctx context.Context, owner, query string, limit int) ([]LexicalHit, error) {
	terms := textutil.QueryTerms(query)
	if len(terms) == 0 || limit <= 0 {
		return nil, nil
	}
	if len(terms) > maxLexicalTerms {
		terms = terms[:maxLexicalTerms]
	}

	conditions := make([]string, 0, len(terms))
	args := make([]any, 0, 2*len(terms)+1)
	args = append(args, owner)
	for _, term := range terms {
		conditions = append(conditions, "(lower(text) LIKE ? OR lower(title) LIKE ?)")
		pattern := "%" + term + "%"
		args = append(args, pattern, pattern)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, owner, source_type, parent_id, title, text, updated_at FROM contents WHERE owner = ? AND ("+strings.Join(conditions, " OR ")+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search contents: %w", err)
	}
	contents, err := scanContents(rows)
	if err != nil {
		return nil, err
	}

	hits := make([]LexicalHit, 0, len(contents))
	for _, c := range contents {
		score := textutil.LexicalScore(query, c.Text, c.Title)
		if score <= 0 {
			continue
		}
		hits = append(hits, LexicalHit{Content: c, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Content.ID < hits[j].Content.ID
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	for i := range hits {
		hits[i].Rank = i + 1
	}
	return hits, nil
}

// ListIDsByOwner returns all content IDs for the owner, ordered by ID.
// Returns an empty slice if the owner has no content (not an error).
func (r *ContentRepo) ListIDsByOwner(ctx context.Context, owner string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM contents WHERE owner = ? ORDER BY id", owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query content IDs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan content ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}

// ListChildIDs returns the IDs of the chunks that belong to parentID, ordered by ID.
func (r *ContentRepo) ListChildIDs(ctx context.Context, owner, parentID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM contents WHERE owner = ? AND parent_id = ? ORDER BY id",
		owner, parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query child contents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan content id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}

// DeleteByIDs removes the owner's content items with the given IDs and returns
// how many rows were deleted.
func (r *ContentRepo) DeleteByIDs(ctx context.Context, owner string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(ids)+1)
	args = append(args, owner)
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := r.db.ExecContext(ctx,
		"DELETE FROM contents WHERE owner = ? AND id IN ("+placeholders(len(ids))+")",
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete contents: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted contents: %w", err)
	}
	return int(n), nil
}

// ListNotes returns the owner's notes including their markdown.
func (r *ContentRepo) ListNotes(ctx context.Context, owner string) ([]Content, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, owner, source_type, parent_id, title, text, updated_at FROM contents WHERE owner = ? AND source_type = ? ORDER BY id",
		owner, SourceNote,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	return scanContents(rows)
}

func scanContents(rows *sql.Rows) ([]Content, error) {
	defer func() {
		_ = rows.Close()
	}()

	var contents []Content
	for rows.Next() {
		var c Content
		if err := rows.Scan(&c.ID, &c.Owner, &c.SourceType, &c.ParentID, &c.Title, &c.Text, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return contents, nil
}
