package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/storage"
	"recall-ai/internal/topics"
)

// TopicSelector chooses topic summaries for a query.
type TopicSelector interface {
	SelectTopics(ctx context.Context, query, owner string, summaries []storage.Topic, budget int) ([]topics.TopicScore, error)
}

// TopicLister lists an owner's stored topic summaries.
type TopicLister interface {
	ListByOwner(ctx context.Context, owner string) ([]storage.Topic, error)
}

// TopicsHandler handles HTTP requests for topic selection.
type TopicsHandler struct {
	selector TopicSelector
	topics   TopicLister
}

// NewTopicsHandler creates a new TopicsHandler.
func NewTopicsHandler(selector TopicSelector, topics TopicLister) *TopicsHandler {
	return &TopicsHandler{selector: selector, topics: topics}
}

// TopicSummary is a caller-supplied topic summary.
//
// swagger:model TopicSummary
type TopicSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Keywords   []string  `json:"keywords,omitempty"`
	Embedding  []float32 `json:"embedding,omitempty"`
	TokenCount int       `json:"token_count,omitempty"`
}

// SelectTopicsRequest represents the HTTP request payload for topic selection.
//
// swagger:model SelectTopicsRequest
type SelectTopicsRequest struct {
	Owner  string `json:"owner"`
	Query  string `json:"query"`
	Budget int    `json:"budget"`
	// Summaries to choose from. When empty, the owner's stored topics are used.
	Summaries []TopicSummary `json:"summaries,omitempty"`
}

// SelectTopicsResponse represents the HTTP response payload for topic selection.
//
// swagger:model SelectTopicsResponse
type SelectTopicsResponse struct {
	Topics     []topics.TopicScore `json:"topics"`
	TokensUsed int                 `json:"tokens_used"`
}

// ServeHTTP handles HTTP requests for topic selection.
//
// swagger:route POST /api/v1/topics/select selectTopics
//
// # Select topic summaries for a query
//
// Scores topics with the keyword, embedding and model-guided cascade and packs
// the best into the token budget.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Selected topics, highest score first
//	  schema:
//	    "$ref": "#/definitions/SelectTopicsResponse"
//	'400':
//	  description: Invalid request
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *TopicsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SelectTopicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case strings.TrimSpace(req.Owner) == "":
		writeError(w, http.StatusBadRequest, "Owner is required")
		return
	case strings.TrimSpace(req.Query) == "":
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	case req.Budget <= 0:
		writeError(w, http.StatusBadRequest, "Budget must be positive")
		return
	}

	summaries := make([]storage.Topic, 0, len(req.Summaries))
	for _, s := range req.Summaries {
		summaries = append(summaries, storage.Topic{
			ID:         s.ID,
			Owner:      req.Owner,
			Title:      s.Title,
			Summary:    s.Summary,
			Keywords:   s.Keywords,
			Embedding:  s.Embedding,
			TokenCount: s.TokenCount,
		})
	}
	if len(summaries) == 0 {
		stored, err := h.topics.ListByOwner(ctx, req.Owner)
		if err != nil {
			logger.ErrorContext(ctx, "failed to list topics", "owner", req.Owner, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list topics")
			return
		}
		summaries = stored
	}

	selected, err := h.selector.SelectTopics(ctx, req.Query, req.Owner, summaries, req.Budget)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to select topics")
		return
	}

	resp := SelectTopicsResponse{Topics: selected}
	if resp.Topics == nil {
		resp.Topics = []topics.TopicScore{}
	}
	for _, t := range selected {
		resp.TokensUsed += t.Tokens
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
