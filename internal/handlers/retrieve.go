package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_handlers.go -package=mocks recall-ai/internal/handlers Retriever,TopicSelector,TopicLister,NavigationRebuilder,LinkRefresher,RebuildEnqueuer,Pinger

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/retrieval"
	"recall-ai/internal/tier"
)

// Retriever answers retrieval queries.
type Retriever interface {
	RetrieveContext(ctx context.Context, q retrieval.Query) (*retrieval.Response, error)
}

// RetrieveHandler handles HTTP requests for context retrieval.
type RetrieveHandler struct {
	retriever Retriever
}

// NewRetrieveHandler creates a new RetrieveHandler.
func NewRetrieveHandler(retriever Retriever) *RetrieveHandler {
	return &RetrieveHandler{retriever: retriever}
}

// RetrieveRequest represents the HTTP request payload for retrieval.
//
// swagger:model RetrieveRequest
type RetrieveRequest struct {
	Owner   string   `json:"owner"`
	Query   string   `json:"query"`
	History []string `json:"history,omitempty"`
	// Tier forces FAST, STANDARD or DEEP. Empty lets the classifier decide.
	Tier string `json:"tier,omitempty"`
}

// ResultResponse is one ranked result.
//
// swagger:model ResultResponse
type ResultResponse struct {
	Rank       int       `json:"rank"`
	SourceType string    `json:"source_type"`
	SourceID   string    `json:"source_id"`
	ParentID   string    `json:"parent_id,omitempty"`
	Title      string    `json:"title"`
	Score      float64   `json:"score"`
	Recency    float64   `json:"recency"`
	Hops       *int      `json:"hops,omitempty"`
	Strategies []string  `json:"strategies"`
	UpdatedAt  time.Time `json:"updated_at"`
	Tokens     int       `json:"tokens"`
}

// RetrieveResponse represents the HTTP response payload for retrieval.
//
// swagger:model RetrieveResponse
type RetrieveResponse struct {
	Tier            string                  `json:"tier"`
	Results         []ResultResponse        `json:"results"`
	Context         []retrieval.ContextItem `json:"context"`
	Citations       []retrieval.Citation    `json:"citations"`
	DegradedSources []string                `json:"degraded_sources"`
	Partial         bool                    `json:"partial"`
	TokensUsed      int                     `json:"tokens_used"`
	// NoContext is set when nothing relevant was found.
	NoContext bool `json:"no_context,omitempty"`
}

// ServeHTTP handles HTTP requests for context retrieval.
//
// swagger:route POST /api/v1/retrieve retrieveContext
//
// # Retrieve ranked context for a query
//
// Runs the query's tier strategies, fuses and ranks their candidates and packs
// the best into the tier's token budget. Failing strategies are listed in
// degraded_sources and never fail the request.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Ranked results with packed context and citations
//	  schema:
//	    "$ref": "#/definitions/RetrieveResponse"
//	'400':
//	  description: Invalid request
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *RetrieveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req RetrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	q := retrieval.Query{Text: req.Query, History: req.History, Owner: req.Owner}
	if req.Tier != "" {
		t, err := tier.Parse(req.Tier)
		if err != nil {
			logger.WarnContext(ctx, "invalid tier", "tier", req.Tier)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		q.Tier = &t
	}

	resp, err := h.retriever.RetrieveContext(ctx, q)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to retrieve context")
		return
	}

	writeJSON(ctx, w, http.StatusOK, NewRetrieveResponse(resp))
}

// NewRetrieveResponse converts a retrieval response into its wire form.
func NewRetrieveResponse(resp *retrieval.Response) RetrieveResponse {
	out := RetrieveResponse{
		Tier:            string(resp.Tier),
		Results:         make([]ResultResponse, 0, len(resp.Results)),
		Context:         resp.Context,
		Citations:       resp.Citations,
		DegradedSources: make([]string, 0, len(resp.DegradedSources)),
		Partial:         resp.Partial,
		TokensUsed:      resp.TokensUsed,
		NoContext:       len(resp.Context) == 0,
	}
	if out.Context == nil {
		out.Context = []retrieval.ContextItem{}
	}
	if out.Citations == nil {
		out.Citations = []retrieval.Citation{}
	}
	for _, s := range resp.DegradedSources {
		out.DegradedSources = append(out.DegradedSources, string(s))
	}
	for _, res := range resp.Results {
		item := ResultResponse{
			Rank:       res.Rank,
			SourceType: res.SourceType,
			SourceID:   res.SourceID,
			ParentID:   res.ParentID,
			Title:      res.Title,
			Score:      res.Score,
			Recency:    res.Recency,
			Strategies: make([]string, 0, len(res.Strategies)),
			UpdatedAt:  res.UpdatedAt,
			Tokens:     res.Tokens,
		}
		if res.Hops >= 0 {
			hops := res.Hops
			item.Hops = &hops
		}
		for _, s := range res.Strategies {
			item.Strategies = append(item.Strategies, string(s))
		}
		out.Results = append(out.Results, item)
	}
	return out
}
