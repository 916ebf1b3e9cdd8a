package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/storage"
	"recall-ai/internal/vectorstore"
)

// contentNamespace derives stable content IDs, so re-importing a file updates it in place.
var contentNamespace = uuid.MustParse("6f1d3c1e-8f0b-4c36-9a57-2f5e3f0e2b7a")

// ContentWriter stores notes and chunks and drops chunks a note no longer has.
type ContentWriter interface {
	Upsert(ctx context.Context, content *storage.Content) error
	ListChildIDs(ctx context.Context, owner, parentID string) ([]string, error)
	DeleteByIDs(ctx context.Context, owner string, ids []string) (int, error)
}

// TextEmbedder embeds chunk texts in order.
type TextEmbedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorWriter indexes chunk vectors.
type VectorWriter interface {
	Upsert(ctx context.Context, collection string, points []vectorstore.Point) error
	Delete(ctx context.Context, collection string, ids []string) error
}

// Stats summarizes one import run.
type Stats struct {
	Files   int `json:"files"`
	Notes   int `json:"notes"`
	Chunks  int `json:"chunks"`
	Vectors int `json:"vectors"`
	Removed int `json:"removed"`
	Errors  int `json:"errors"`
}

// Importer loads a directory of markdown notes into the content store and,
// when a vector writer is set, the vector index.
type Importer struct {
	contents   ContentWriter
	embedder   TextEmbedder
	vectors    VectorWriter
	collection string
	chunker    *Chunker
}

// NewImporter creates an Importer. embedder and vectors may be nil, in which
// case notes are stored without vectors.
func NewImporter(contents ContentWriter, embedder TextEmbedder, vectors VectorWriter, collection string) *Importer {
	return &Importer{
		contents:   contents,
		embedder:   embedder,
		vectors:    vectors,
		collection: collection,
		chunker:    NewChunker(),
	}
}

// ImportDir imports every .md file under dir for owner. Hidden directories are
// skipped. Failures on single files are logged and counted; the run continues.
func (im *Importer) ImportDir(ctx context.Context, owner, dir string) (Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var stats Stats

	if owner == "" {
		return stats, errors.New("owner is required")
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".md" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	logger.InfoContext(ctx, "starting import", "owner", owner, "dir", dir, "files", len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Files++

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		file, err := im.importFile(ctx, owner, path, rel)
		if err != nil {
			stats.Errors++
			logger.ErrorContext(ctx, "failed to import file", "rel_path", rel, "error", err)
			continue
		}
		stats.Notes++
		stats.Chunks += file.Chunks
		stats.Vectors += file.Vectors
		stats.Removed += file.Removed
	}

	logger.InfoContext(ctx, "import completed",
		"owner", owner,
		"files", stats.Files,
		"chunks", stats.Chunks,
		"vectors", stats.Vectors,
		"removed", stats.Removed,
		"errors", stats.Errors,
	)
	if stats.Errors > 0 {
		return stats, fmt.Errorf("import completed with %d errors", stats.Errors)
	}
	return stats, nil
}

// NoteID returns the stable content ID of the note at relPath.
func NoteID(owner, relPath string) string {
	return uuid.NewSHA1(contentNamespace, []byte(owner+"/"+relPath)).String()
}

func chunkID(noteID string, index int) string {
	return uuid.NewSHA1(contentNamespace, []byte(fmt.Sprintf("%s#%d", noteID, index))).String()
}

// chunkTitle joins the note title with the chunk's headings, without markdown
// markers and without repeating the title itself.
func chunkTitle(title, headingPath string) string {
	parts := []string{title}
	for _, h := range strings.Split(headingPath, " > ") {
		h = strings.TrimSpace(strings.TrimLeft(h, "#"))
		if h == "" || (len(parts) == 1 && h == title) {
			continue
		}
		parts = append(parts, h)
	}
	return strings.Join(parts, " > ")
}

// importFile stores one note and its chunks, removes chunks left over from a
// longer previous version, and reports the counts for the file.
// A vector failure keeps the stored content; the note stays reachable lexically.
func (im *Importer) importFile(ctx context.Context, owner, path, rel string) (Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var file Stats

	info, err := os.Stat(path)
	if err != nil {
		return file, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("failed to read file: %w", err)
	}

	title, chunks := im.chunker.Split(source, filepath.Base(rel))
	noteID := NoteID(owner, rel)
	updated := info.ModTime().UTC()

	previous, err := im.contents.ListChildIDs(ctx, owner, noteID)
	if err != nil {
		return file, err
	}

	if err := im.contents.Upsert(ctx, &storage.Content{
		ID:         noteID,
		Owner:      owner,
		SourceType: storage.SourceNote,
		Title:      title,
		Text:       string(source),
		UpdatedAt:  updated,
	}); err != nil {
		return file, err
	}

	current := make(map[string]struct{}, len(chunks))
	texts := make([]string, len(chunks))
	points := make([]vectorstore.Point, len(chunks))
	for i, ch := range chunks {
		id := chunkID(noteID, ch.Index)
		current[id] = struct{}{}
		if err := im.contents.Upsert(ctx, &storage.Content{
			ID:         id,
			Owner:      owner,
			SourceType: storage.SourceChunk,
			ParentID:   noteID,
			Title:      chunkTitle(title, ch.HeadingPath),
			Text:       ch.Text,
			UpdatedAt:  updated,
		}); err != nil {
			return file, err
		}
		texts[i] = ch.Text
		points[i] = vectorstore.Point{
			ID: id,
			Meta: map[string]any{
				vectorstore.PayloadOwner:      owner,
				vectorstore.PayloadSourceType: storage.SourceChunk,
				vectorstore.PayloadParentID:   noteID,
				"rel_path":                    rel,
				"heading_path":                ch.HeadingPath,
				"chunk_index":                 ch.Index,
			},
		}
	}
	file.Chunks = len(chunks)

	var stale []string
	for _, id := range previous {
		if _, ok := current[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		removed, err := im.contents.DeleteByIDs(ctx, owner, stale)
		if err != nil {
			return file, fmt.Errorf("failed to remove old chunks: %w", err)
		}
		file.Removed = removed
		if im.vectors != nil {
			if err := im.vectors.Delete(ctx, im.collection, stale); err != nil {
				// Search drops hits whose content is gone, so a leftover point is only wasted space.
				logger.WarnContext(ctx, "failed to delete old chunk vectors", "rel_path", rel, "count", len(stale), "error", err)
			}
		}
	}

	if im.vectors == nil || im.embedder == nil || len(chunks) == 0 {
		return file, nil
	}

	embeddings, err := im.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		logger.WarnContext(ctx, "failed to embed chunks, stored without vectors", "rel_path", rel, "error", err)
		return file, nil
	}
	if len(embeddings) != len(points) {
		return file, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(points), len(embeddings))
	}
	for i := range points {
		points[i].Vec = embeddings[i]
	}
	if err := im.vectors.Upsert(ctx, im.collection, points); err != nil {
		logger.WarnContext(ctx, "failed to upsert vectors", "rel_path", rel, "error", err)
		return file, nil
	}
	file.Vectors = len(points)

	logger.DebugContext(ctx, "imported note", "rel_path", rel, "title", title, "chunks", len(chunks), "removed", file.Removed)
	return file, nil
}
