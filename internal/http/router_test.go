package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	handlers_mocks "recall-ai/internal/handlers/mocks"
	"recall-ai/internal/navcache"
	"recall-ai/internal/retrieval"
	"recall-ai/internal/tier"
)

type routerMocks struct {
	retriever  *handlers_mocks.MockRetriever
	selector   *handlers_mocks.MockTopicSelector
	topics     *handlers_mocks.MockTopicLister
	navigation *handlers_mocks.MockNavigationRebuilder
	links      *handlers_mocks.MockLinkRefresher
	queue      *handlers_mocks.MockRebuildEnqueuer
	store      *handlers_mocks.MockPinger
}

func newTestRouter(t *testing.T) (http.Handler, routerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := routerMocks{
		retriever:  handlers_mocks.NewMockRetriever(ctrl),
		selector:   handlers_mocks.NewMockTopicSelector(ctrl),
		topics:     handlers_mocks.NewMockTopicLister(ctrl),
		navigation: handlers_mocks.NewMockNavigationRebuilder(ctrl),
		links:      handlers_mocks.NewMockLinkRefresher(ctrl),
		queue:      handlers_mocks.NewMockRebuildEnqueuer(ctrl),
		store:      handlers_mocks.NewMockPinger(ctrl),
	}
	router := NewRouter(&Deps{
		Retriever:  m.retriever,
		Selector:   m.selector,
		Topics:     m.topics,
		Navigation: m.navigation,
		Links:      m.links,
		Queue:      m.queue,
		Store:      m.store,
	})
	return router, m
}

func TestNewRouter(t *testing.T) {
	router, _ := newTestRouter(t)
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	router, m := newTestRouter(t)

	m.retriever.EXPECT().RetrieveContext(gomock.Any(), gomock.Any()).
		Return(&retrieval.Response{Tier: tier.Fast}, nil)
	m.links.EXPECT().RefreshOwner(gomock.Any(), "alice").Return(0, nil)
	m.navigation.EXPECT().Rebuild(gomock.Any(), "alice").Return(navcache.RebuildResult{}, nil)
	m.store.EXPECT().PingContext(gomock.Any()).Return(nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "POST /api/v1/retrieve",
			method:     http.MethodPost,
			path:       "/api/v1/retrieve",
			body:       `{"owner":"alice","query":"hi"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/v1/retrieve method not allowed",
			method:     http.MethodGet,
			path:       "/api/v1/retrieve",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "POST /api/v1/topics/select exists",
			method:     http.MethodPost,
			path:       "/api/v1/topics/select",
			wantStatus: http.StatusBadRequest, // Bad request due to empty body, but route exists
		},
		{
			name:       "POST /api/v1/navigation/{owner}/rebuild",
			method:     http.MethodPost,
			path:       "/api/v1/navigation/alice/rebuild",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/health",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/v1/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/topics/select", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check CORS headers are present
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("Router should assign a request ID")
	}
}
