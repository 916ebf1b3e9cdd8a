package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_link_store.go -package=mocks recall-ai/internal/storage LinkStore

import (
	"context"
	"database/sql"
	"fmt"
)

// LinkStore defines the interface for structural link operations.
type LinkStore interface {
	// Neighbors returns the IDs id links to and the IDs that link to id.
	Neighbors(ctx context.Context, owner, id string) (outgoing, incoming []string, err error)
	// ReplaceForOwner replaces all links of the owner in one transaction.
	ReplaceForOwner(ctx context.Context, owner string, links []Link) error
}

// LinkRepo provides methods for link operations.
// It implements the LinkStore interface.
type LinkRepo struct {
	db *sql.DB
}

// NewLinkRepo creates a new LinkRepo.
func NewLinkRepo(db *sql.DB) *LinkRepo {
	return &LinkRepo{db: db}
}

// Neighbors returns the IDs id links to and the IDs that link to id, each ordered by ID.
func (r *LinkRepo) Neighbors(ctx context.Context, owner, id string) ([]string, []string, error) {
	outgoing, err := r.queryIDs(ctx,
		"SELECT to_id FROM links WHERE owner = ? AND from_id = ? AND to_id != from_id ORDER BY to_id",
		owner, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query outgoing links: %w", err)
	}
	incoming, err := r.queryIDs(ctx,
		"SELECT from_id FROM links WHERE owner = ? AND to_id = ? AND to_id != from_id ORDER BY from_id",
		owner, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query backlinks: %w", err)
	}
	return outgoing, incoming, nil
}

// ReplaceForOwner replaces all links of the owner in one transaction.
// Duplicate links are ignored.
func (r *LinkRepo) ReplaceForOwner(ctx context.Context, owner string, links []Link) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM links WHERE owner = ?", owner); err != nil {
		return fmt.Errorf("failed to delete links: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO links (owner, from_id, to_id) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare link insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, link := range links {
		if _, err = stmt.ExecContext(ctx, owner, link.FromID, link.ToID); err != nil {
			return fmt.Errorf("failed to insert link: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit links: %w", err)
	}
	return nil
}

func (r *LinkRepo) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
