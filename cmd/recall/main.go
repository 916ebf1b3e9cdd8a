package main

import (
	"fmt"
	"os"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API retrieves and ranks context from a personal knowledge base for use in model prompts.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Recall AI API
//   description: |
//     Retrieval and ranking API. Queries are classified into FAST, STANDARD or DEEP tiers,
//     answered by vector, lexical, graph and topical strategies in parallel, fused into one
//     ranked list and packed into the tier's token budget.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
