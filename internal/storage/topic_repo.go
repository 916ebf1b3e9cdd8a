package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recall-ai/internal/textutil"
)

// TopicRepo provides methods for topic summary operations.
type TopicRepo struct {
	db *sql.DB
}

// NewTopicRepo creates a new TopicRepo.
func NewTopicRepo(db *sql.DB) *TopicRepo {
	return &TopicRepo{db: db}
}

// Upsert inserts or updates a topic summary. TokenCount is estimated from the summary
// when not set.
func (r *TopicRepo) Upsert(ctx context.Context, topic *Topic) error {
	if topic.Owner == "" {
		return fmt.Errorf("topic owner is required")
	}
	if topic.ID == "" {
		topic.ID = uuid.New().String()
	}
	if topic.TokenCount == 0 {
		topic.TokenCount = textutil.EstimateTokens(topic.Summary)
	}
	if topic.UpdatedAt.IsZero() {
		topic.UpdatedAt = time.Now().UTC()
	}

	keywords, err := json.Marshal(nonNil(topic.Keywords))
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}
	embedding, err := json.Marshal(nonNil(topic.Embedding))
	if err != nil {
		return fmt.Errorf("failed to encode embedding: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO topics (id, owner, title, summary, keywords, embedding, cluster_id, token_count, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 title = excluded.title, summary = excluded.summary, keywords = excluded.keywords,
		 embedding = excluded.embedding, cluster_id = excluded.cluster_id,
		 token_count = excluded.token_count, updated_at = excluded.updated_at`,
		topic.ID, topic.Owner, topic.Title, topic.Summary, string(keywords), string(embedding),
		topic.ClusterID, topic.TokenCount, topic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert topic: %w", err)
	}
	return nil
}

// ListByOwner returns all topics of the owner ordered by ID.
func (r *TopicRepo) ListByOwner(ctx context.Context, owner string) ([]Topic, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, title, summary, keywords, embedding, cluster_id, token_count, updated_at
		 FROM topics WHERE owner = ? ORDER BY id`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var topics []Topic
	for rows.Next() {
		var t Topic
		var keywords, embedding string
		if err := rows.Scan(&t.ID, &t.Owner, &t.Title, &t.Summary, &keywords, &embedding, &t.ClusterID, &t.TokenCount, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		if err := json.Unmarshal([]byte(keywords), &t.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords for topic %s: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(embedding), &t.Embedding); err != nil {
			return nil, fmt.Errorf("failed to decode embedding for topic %s: %w", t.ID, err)
		}
		topics = append(topics, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return topics, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
