package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/navcache"
)

// NavigationRebuilder rebuilds an owner's navigation cache inline.
type NavigationRebuilder interface {
	Rebuild(ctx context.Context, owner string) (navcache.RebuildResult, error)
}

// LinkRefresher re-derives an owner's structural links from stored notes.
type LinkRefresher interface {
	RefreshOwner(ctx context.Context, owner string) (int, error)
}

// RebuildEnqueuer schedules a rebuild in the background.
type RebuildEnqueuer interface {
	EnqueueRebuild(ctx context.Context, owner string) error
}

// NavigationHandler handles HTTP requests for navigation cache rebuilds.
type NavigationHandler struct {
	rebuilder NavigationRebuilder
	links     LinkRefresher
	queue     RebuildEnqueuer
}

// NewNavigationHandler creates a new NavigationHandler. links and queue may be nil;
// without links the inline rebuild uses the links already stored.
func NewNavigationHandler(rebuilder NavigationRebuilder, links LinkRefresher, queue RebuildEnqueuer) *NavigationHandler {
	return &NavigationHandler{rebuilder: rebuilder, links: links, queue: queue}
}

// RebuildQueuedResponse is returned when a rebuild was enqueued.
//
// swagger:model RebuildQueuedResponse
type RebuildQueuedResponse struct {
	Owner  string `json:"owner"`
	Status string `json:"status"`
}

// ServeHTTP handles HTTP requests for navigation cache rebuilds.
//
// swagger:route POST /api/v1/navigation/{owner}/rebuild rebuildNavigation
//
// # Rebuild an owner's navigation cache
//
// Refreshes links, rebuilds inline and reports the result. Concurrent rebuilds for the same owner
// share one execution and report coalesced. With async=true the rebuild is queued
// and 202 is returned.
//
// ---
// produces:
// - application/json
// parameters:
//   - in: path
//     name: owner
//     type: string
//     required: true
//   - in: query
//     name: async
//     type: boolean
//     required: false
//
// responses:
//
//	'200':
//	  description: Rebuild finished
//	'202':
//	  description: Rebuild queued
//	'400':
//	  description: Invalid request
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Rebuild failed
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *NavigationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	owner := chi.URLParam(r, "owner")
	if owner == "" {
		writeError(w, http.StatusBadRequest, "Owner is required")
		return
	}

	async := false
	if param := r.URL.Query().Get("async"); param != "" {
		parsed, err := strconv.ParseBool(param)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid async parameter")
			return
		}
		async = parsed
	}

	if async {
		if h.queue == nil {
			writeError(w, http.StatusServiceUnavailable, "Background queue unavailable")
			return
		}
		if err := h.queue.EnqueueRebuild(ctx, owner); err != nil {
			logger.ErrorContext(ctx, "failed to enqueue rebuild", "owner", owner, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to enqueue rebuild")
			return
		}
		writeJSON(ctx, w, http.StatusAccepted, RebuildQueuedResponse{Owner: owner, Status: "queued"})
		return
	}

	if h.links != nil {
		if _, err := h.links.RefreshOwner(ctx, owner); err != nil {
			logger.ErrorContext(ctx, "link refresh failed", "owner", owner, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to refresh links")
			return
		}
	}

	result, err := h.rebuilder.Rebuild(ctx, owner)
	if err != nil {
		logger.ErrorContext(ctx, "navigation rebuild failed", "owner", owner, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to rebuild navigation cache")
		return
	}
	writeJSON(ctx, w, http.StatusOK, result)
}
