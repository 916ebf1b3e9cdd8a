package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"recall-ai/internal/ingest"
)

var (
	topicsOwner string
	topicsFile  string
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Seed topic summaries and cluster assignments for an owner",
	Long:  "Store the topics listed in a YAML file, embed their summaries and assign each member note and its chunks to the topic's cluster",
	RunE:  runTopics,
}

func init() {
	topicsCmd.Flags().StringVar(&topicsOwner, "owner", "", "Owner the topics belong to")
	topicsCmd.Flags().StringVar(&topicsFile, "file", "", "YAML file with the topics")
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, _ []string) error {
	if topicsOwner == "" || topicsFile == "" {
		return errors.New("--owner and --file are required")
	}

	specs, err := ingest.LoadTopicsFile(topicsFile)
	if err != nil {
		return err
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

	seeder := ingest.NewTopicSeeder(a.topics, a.clusters, a.contents, a.embedder)
	stats, err := seeder.Seed(ctx, topicsOwner, specs)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
