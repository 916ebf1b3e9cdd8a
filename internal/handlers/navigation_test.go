package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	handlers_mocks "recall-ai/internal/handlers/mocks"
	"recall-ai/internal/navcache"
)

// withOwner attaches a chi route context carrying the owner URL param.
func withOwner(req *http.Request, owner string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("owner", owner)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestNavigationHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		owner          string
		query          string
		setup          func(r *handlers_mocks.MockNavigationRebuilder, l *handlers_mocks.MockLinkRefresher, q *handlers_mocks.MockRebuildEnqueuer)
		expectedStatus int
		check          func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:   "inline rebuild refreshes links first",
			method: http.MethodPost,
			owner:  "alice",
			setup: func(r *handlers_mocks.MockNavigationRebuilder, l *handlers_mocks.MockLinkRefresher, _ *handlers_mocks.MockRebuildEnqueuer) {
				gomock.InOrder(
					l.EXPECT().RefreshOwner(gomock.Any(), "alice").Return(3, nil),
					r.EXPECT().Rebuild(gomock.Any(), "alice").
						Return(navcache.RebuildResult{EntriesRebuilt: 4, Version: 2}, nil),
				)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var res navcache.RebuildResult
				if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if res.EntriesRebuilt != 4 || res.Version != 2 {
					t.Errorf("result = %+v", res)
				}
			},
		},
		{
			name:   "async rebuild is queued",
			method: http.MethodPost,
			owner:  "alice",
			query:  "?async=true",
			setup: func(_ *handlers_mocks.MockNavigationRebuilder, _ *handlers_mocks.MockLinkRefresher, q *handlers_mocks.MockRebuildEnqueuer) {
				q.EXPECT().EnqueueRebuild(gomock.Any(), "alice").Return(nil)
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:   "enqueue failure",
			method: http.MethodPost,
			owner:  "alice",
			query:  "?async=1",
			setup: func(_ *handlers_mocks.MockNavigationRebuilder, _ *handlers_mocks.MockLinkRefresher, q *handlers_mocks.MockRebuildEnqueuer) {
				q.EXPECT().EnqueueRebuild(gomock.Any(), "alice").Return(errors.New("closed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:   "rebuild failure",
			method: http.MethodPost,
			owner:  "alice",
			setup: func(r *handlers_mocks.MockNavigationRebuilder, l *handlers_mocks.MockLinkRefresher, _ *handlers_mocks.MockRebuildEnqueuer) {
				l.EXPECT().RefreshOwner(gomock.Any(), "alice").Return(0, nil)
				r.EXPECT().Rebuild(gomock.Any(), "alice").Return(navcache.RebuildResult{}, errors.New("store down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:   "link refresh failure skips the rebuild",
			method: http.MethodPost,
			owner:  "alice",
			setup: func(_ *handlers_mocks.MockNavigationRebuilder, l *handlers_mocks.MockLinkRefresher, _ *handlers_mocks.MockRebuildEnqueuer) {
				l.EXPECT().RefreshOwner(gomock.Any(), "alice").Return(0, errors.New("db locked"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{name: "bad async flag", method: http.MethodPost, owner: "alice", query: "?async=maybe", expectedStatus: http.StatusBadRequest},
		{name: "missing owner", method: http.MethodPost, expectedStatus: http.StatusBadRequest},
		{name: "method not allowed", method: http.MethodGet, owner: "alice", expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rebuilder := handlers_mocks.NewMockNavigationRebuilder(ctrl)
			links := handlers_mocks.NewMockLinkRefresher(ctrl)
			queue := handlers_mocks.NewMockRebuildEnqueuer(ctrl)
			if tt.setup != nil {
				tt.setup(rebuilder, links, queue)
			}

			handler := NewNavigationHandler(rebuilder, links, queue)
			req := httptest.NewRequest(tt.method, "/api/v1/navigation/"+tt.owner+"/rebuild"+tt.query, nil)
			req = withOwner(req, tt.owner)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

func TestNavigationHandler_NoQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := NewNavigationHandler(handlers_mocks.NewMockNavigationRebuilder(ctrl), nil, nil)

	req := withOwner(httptest.NewRequest(http.MethodPost, "/api/v1/navigation/alice/rebuild?async=true", nil), "alice")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
