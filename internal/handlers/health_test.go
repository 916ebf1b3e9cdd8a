package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	handlers_mocks "recall-ai/internal/handlers/mocks"
	vectorstore_mocks "recall-ai/internal/vectorstore/mocks"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		storeErr       error
		vectorExists   bool
		vectorErr      error
		expectedStatus int
		expectedHealth string
	}{
		{name: "healthy", vectorExists: true, expectedStatus: http.StatusOK, expectedHealth: "healthy"},
		{name: "missing collection", vectorExists: false, expectedStatus: http.StatusServiceUnavailable, expectedHealth: "degraded"},
		{name: "vector store down", vectorErr: errors.New("dial"), expectedStatus: http.StatusServiceUnavailable, expectedHealth: "degraded"},
		{name: "content store down", storeErr: errors.New("locked"), vectorExists: true, expectedStatus: http.StatusServiceUnavailable, expectedHealth: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := handlers_mocks.NewMockPinger(ctrl)
			vs := vectorstore_mocks.NewMockVectorStore(ctrl)

			store.EXPECT().PingContext(gomock.Any()).Return(tt.storeErr)
			vs.EXPECT().CollectionExists(gomock.Any(), "content").Return(tt.vectorExists, tt.vectorErr)

			handler := NewHealthHandler(store, vs, "content")
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Status != tt.expectedHealth {
				t.Errorf("Status = %q, want %q", resp.Status, tt.expectedHealth)
			}
		})
	}
}

func TestHealthHandler_VectorStoreDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := handlers_mocks.NewMockPinger(ctrl)
	store.EXPECT().PingContext(gomock.Any()).Return(nil)

	handler := NewHealthHandler(store, nil, "")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Checks["vector_store"] != "disabled" {
		t.Errorf("vector_store check = %q, want disabled", resp.Checks["vector_store"])
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := NewHealthHandler(handlers_mocks.NewMockPinger(ctrl), nil, "")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/health", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
