package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/storage"
)

// TopicWriter stores topic summaries.
type TopicWriter interface {
	Upsert(ctx context.Context, topic *storage.Topic) error
}

// ClusterWriter assigns content to a cluster.
type ClusterWriter interface {
	Assign(ctx context.Context, owner, contentID, clusterID string) error
}

// ChildLister lists the chunks of a note.
type ChildLister interface {
	ListChildIDs(ctx context.Context, owner, parentID string) ([]string, error)
}

// TopicSpec is one topic in a topics file.
type TopicSpec struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Summary  string   `yaml:"summary"`
	Keywords []string `yaml:"keywords"`
	Cluster  string   `yaml:"cluster"`
	// Members are note paths relative to the imported directory (ending in .md)
	// or raw content IDs.
	Members []string `yaml:"members"`
}

type topicsFile struct {
	Topics []TopicSpec `yaml:"topics"`
}

// TopicStats summarizes one topic seeding run.
type TopicStats struct {
	Topics   int `json:"topics"`
	Embedded int `json:"embedded"`
	Assigned int `json:"assigned"`
}

// TopicSeeder loads externally produced topic summaries and community assignments.
type TopicSeeder struct {
	topics   TopicWriter
	clusters ClusterWriter
	children ChildLister
	embedder TextEmbedder
}

// NewTopicSeeder creates a TopicSeeder. embedder may be nil, in which case topics
// are stored without embeddings and only keyword selection can match them.
func NewTopicSeeder(topics TopicWriter, clusters ClusterWriter, children ChildLister, embedder TextEmbedder) *TopicSeeder {
	return &TopicSeeder{topics: topics, clusters: clusters, children: children, embedder: embedder}
}

// LoadTopicsFile parses a topics file.
//
// Example:
//
//	topics:
//	  - title: Garden
//	    summary: Raised beds, compost and the planting schedule.
//	    keywords: [garden, compost, beds]
//	    cluster: outdoors
//	    members: [garden.md, work/tools.md]
func LoadTopicsFile(path string) ([]TopicSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topics file: %w", err)
	}
	var file topicsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse topics file: %w", err)
	}
	for i, t := range file.Topics {
		if strings.TrimSpace(t.Title) == "" {
			return nil, fmt.Errorf("topic %d: title is required", i)
		}
	}
	return file.Topics, nil
}

// TopicID returns the stable ID of a topic without an explicit one.
func TopicID(owner, title string) string {
	return uuid.NewSHA1(contentNamespace, []byte(owner+"/topic/"+strings.ToLower(title))).String()
}

// Seed stores the topics for owner and assigns each member note, with its chunks,
// to the topic's cluster.
func (s *TopicSeeder) Seed(ctx context.Context, owner string, specs []TopicSpec) (TopicStats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var stats TopicStats

	if owner == "" {
		return stats, errors.New("owner is required")
	}

	var embeddings [][]float32
	if s.embedder != nil && len(specs) > 0 {
		texts := make([]string, len(specs))
		for i, t := range specs {
			texts[i] = t.Title + "\n" + t.Summary
		}
		var err error
		embeddings, err = s.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			logger.WarnContext(ctx, "failed to embed topics, storing without embeddings", "error", err)
			embeddings = nil
		} else if len(embeddings) != len(specs) {
			return stats, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(specs), len(embeddings))
		}
	}

	for i, topicSpec := range specs {
		topic := &storage.Topic{
			ID:        topicSpec.ID,
			Owner:     owner,
			Title:     topicSpec.Title,
			Summary:   topicSpec.Summary,
			Keywords:  topicSpec.Keywords,
			ClusterID: topicSpec.Cluster,
		}
		if topic.ID == "" {
			topic.ID = TopicID(owner, topicSpec.Title)
		}
		if embeddings != nil {
			topic.Embedding = embeddings[i]
			stats.Embedded++
		}
		if err := s.topics.Upsert(ctx, topic); err != nil {
			return stats, fmt.Errorf("topic %q: %w", topicSpec.Title, err)
		}
		stats.Topics++

		if topicSpec.Cluster == "" {
			continue
		}
		for _, member := range topicSpec.Members {
			ids, err := s.memberIDs(ctx, owner, member)
			if err != nil {
				return stats, fmt.Errorf("topic %q member %s: %w", topicSpec.Title, member, err)
			}
			for _, id := range ids {
				if err := s.clusters.Assign(ctx, owner, id, topicSpec.Cluster); err != nil {
					return stats, err
				}
				stats.Assigned++
			}
		}
	}

	logger.InfoContext(ctx, "topics seeded",
		"owner", owner,
		"topics", stats.Topics,
		"embedded", stats.Embedded,
		"assigned", stats.Assigned,
	)
	return stats, nil
}

func (s *TopicSeeder) memberIDs(ctx context.Context, owner, member string) ([]string, error) {
	id := member
	if strings.HasSuffix(member, ".md") {
		id = NoteID(owner, member)
	}
	children, err := s.children.ListChildIDs(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return append([]string{id}, children...), nil
}
