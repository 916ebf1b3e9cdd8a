package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"recall-ai/internal/handlers"
	"recall-ai/internal/retrieval"
	"recall-ai/internal/tier"
)

var (
	retrieveOwner   string
	retrieveQuery   string
	retrieveTier    string
	retrieveHistory []string
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve ranked context for a query",
	Long:  "Classify the query, run the tier's strategies and print the ranked results, packed context and citations as JSON",
	RunE:  runRetrieve,
}

func init() {
	retrieveCmd.Flags().StringVar(&retrieveOwner, "owner", "", "Owner whose content is searched")
	retrieveCmd.Flags().StringVarP(&retrieveQuery, "query", "q", "", "Query text")
	retrieveCmd.Flags().StringVar(&retrieveTier, "tier", "", "Force a tier (FAST, STANDARD, DEEP)")
	retrieveCmd.Flags().StringArrayVar(&retrieveHistory, "history", nil, "Prior conversation turn (repeatable)")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, _ []string) error {
	if retrieveOwner == "" || retrieveQuery == "" {
		return errors.New("--owner and --query are required")
	}

	q := retrieval.Query{Text: retrieveQuery, History: retrieveHistory, Owner: retrieveOwner}
	if retrieveTier != "" {
		t, err := tier.Parse(retrieveTier)
		if err != nil {
			return err
		}
		q.Tier = &t
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

	resp, err := a.retriever.RetrieveContext(ctx, q)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(handlers.NewRetrieveResponse(resp))
}
