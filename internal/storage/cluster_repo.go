package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ClusterRepo reads precomputed community assignments.
// Assignments are produced out of band; Assign exists for seeding and tooling.
type ClusterRepo struct {
	db *sql.DB
}

// NewClusterRepo creates a new ClusterRepo.
func NewClusterRepo(db *sql.DB) *ClusterRepo {
	return &ClusterRepo{db: db}
}

// Assign sets the cluster of a content item.
func (r *ClusterRepo) Assign(ctx context.Context, owner, contentID, clusterID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clusters (owner, content_id, cluster_id) VALUES (?, ?, ?)
		 ON CONFLICT (owner, content_id) DO UPDATE SET cluster_id = excluded.cluster_id`,
		owner, contentID, clusterID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign cluster: %w", err)
	}
	return nil
}

// ClustersOf returns the cluster of each given content ID. Unassigned IDs are absent.
func (r *ClusterRepo) ClustersOf(ctx context.Context, owner string, ids []string) (map[string]string, error) {
	result := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	args := make([]any, 0, len(ids)+1)
	args = append(args, owner)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT content_id, cluster_id FROM clusters WHERE owner = ? AND content_id IN ("+placeholders(len(ids))+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query clusters: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var contentID, clusterID string
		if err := rows.Scan(&contentID, &clusterID); err != nil {
			return nil, fmt.Errorf("failed to scan cluster: %w", err)
		}
		result[contentID] = clusterID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return result, nil
}
