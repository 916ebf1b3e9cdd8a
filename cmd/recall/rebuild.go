package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	rebuildOwner     string
	rebuildSkipLinks bool
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Refresh links and rebuild the navigation cache for an owner",
	RunE:  runRebuild,
}

func init() {
	rebuildCmd.Flags().StringVar(&rebuildOwner, "owner", "", "Owner whose navigation cache is rebuilt")
	rebuildCmd.Flags().BoolVar(&rebuildSkipLinks, "skip-links", false, "Rebuild from stored links without re-parsing notes")
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	if rebuildOwner == "" {
		return errors.New("--owner is required")
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

	if !rebuildSkipLinks {
		if _, err := a.links.RefreshOwner(ctx, rebuildOwner); err != nil {
			return fmt.Errorf("failed to refresh links: %w", err)
		}
	}

	result, err := a.nav.Rebuild(ctx, rebuildOwner)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
