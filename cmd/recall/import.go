package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"recall-ai/internal/ingest"
	"recall-ai/internal/navcache"
)

var (
	importOwner string
	importDir   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a directory of markdown notes for an owner",
	Long:  "Store every markdown note under --dir with its chunks, index chunk vectors when Qdrant is configured, then refresh links and rebuild the owner's navigation cache",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importOwner, "owner", "", "Owner the notes belong to")
	importCmd.Flags().StringVar(&importDir, "dir", "", "Directory of markdown notes")
	rootCmd.AddCommand(importCmd)
}

// importResult is printed after an import.
type importResult struct {
	Import     ingest.Stats           `json:"import"`
	Links      int                    `json:"links"`
	Navigation navcache.RebuildResult `json:"navigation"`
}

func runImport(cmd *cobra.Command, _ []string) error {
	if importOwner == "" || importDir == "" {
		return errors.New("--owner and --dir are required")
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg, logger, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()

	var vectors ingest.VectorWriter
	if a.vectors != nil {
		vectors = a.vectors
	}
	importer := ingest.NewImporter(a.contents, a.embedder, vectors, cfg.QdrantCollection)

	var res importResult
	res.Import, err = importer.ImportDir(ctx, importOwner, importDir)
	if err != nil {
		// Partial imports still get their links and navigation.
		logger.WarnContext(ctx, "import finished with errors", "error", err)
	}

	if res.Links, err = a.links.RefreshOwner(ctx, importOwner); err != nil {
		return fmt.Errorf("failed to refresh links: %w", err)
	}
	if res.Navigation, err = a.nav.Rebuild(ctx, importOwner); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
