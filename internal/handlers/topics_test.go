package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	handlers_mocks "recall-ai/internal/handlers/mocks"
	"recall-ai/internal/storage"
	"recall-ai/internal/topics"
)

func TestTopicsHandler_SuppliedSummaries(t *testing.T) {
	ctrl := gomock.NewController(t)
	selector := handlers_mocks.NewMockTopicSelector(ctrl)
	lister := handlers_mocks.NewMockTopicLister(ctrl)

	selector.EXPECT().SelectTopics(gomock.Any(), "where is the garden plan", "alice", gomock.Any(), 100).
		DoAndReturn(func(_ context.Context, _, _ string, summaries []storage.Topic, _ int) ([]topics.TopicScore, error) {
			if len(summaries) != 1 || summaries[0].ID != "T-GARDEN" || summaries[0].Owner != "alice" {
				t.Errorf("summaries = %+v", summaries)
			}
			return []topics.TopicScore{{TopicID: "T-GARDEN", Score: 1, Method: "keyword", Tokens: 30}}, nil
		})

	handler := NewTopicsHandler(selector, lister)
	body := `{"owner":"alice","query":"where is the garden plan","budget":100,
		"summaries":[{"id":"T-GARDEN","title":"Garden","summary":"beds and compost"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/topics/select", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
	var resp SelectTopicsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Topics) != 1 || resp.Topics[0].TopicID != "T-GARDEN" {
		t.Errorf("Topics = %+v", resp.Topics)
	}
	if resp.TokensUsed != 30 {
		t.Errorf("TokensUsed = %d, want 30", resp.TokensUsed)
	}
}

func TestTopicsHandler_LoadsStoredTopics(t *testing.T) {
	ctrl := gomock.NewController(t)
	selector := handlers_mocks.NewMockTopicSelector(ctrl)
	lister := handlers_mocks.NewMockTopicLister(ctrl)

	stored := []storage.Topic{{ID: "t1", Owner: "alice", Title: "Work"}}
	lister.EXPECT().ListByOwner(gomock.Any(), "alice").Return(stored, nil)
	selector.EXPECT().SelectTopics(gomock.Any(), "q", "alice", stored, 50).Return(nil, nil)

	handler := NewTopicsHandler(selector, lister)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/topics/select",
		bytes.NewBufferString(`{"owner":"alice","query":"q","budget":50}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp SelectTopicsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Topics == nil {
		t.Error("Topics should encode as [] not null")
	}
}

func TestTopicsHandler_Errors(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           string
		setup          func(s *handlers_mocks.MockTopicSelector, l *handlers_mocks.MockTopicLister)
		expectedStatus int
	}{
		{name: "method not allowed", method: http.MethodGet, expectedStatus: http.StatusMethodNotAllowed},
		{name: "invalid body", method: http.MethodPost, body: "nope", expectedStatus: http.StatusBadRequest},
		{name: "missing owner", method: http.MethodPost, body: `{"query":"q","budget":10}`, expectedStatus: http.StatusBadRequest},
		{name: "missing query", method: http.MethodPost, body: `{"owner":"a","budget":10}`, expectedStatus: http.StatusBadRequest},
		{name: "zero budget", method: http.MethodPost, body: `{"owner":"a","query":"q"}`, expectedStatus: http.StatusBadRequest},
		{
			name:   "store failure",
			method: http.MethodPost,
			body:   `{"owner":"a","query":"q","budget":10}`,
			setup: func(_ *handlers_mocks.MockTopicSelector, l *handlers_mocks.MockTopicLister) {
				l.EXPECT().ListByOwner(gomock.Any(), "a").Return(nil, errors.New("db locked"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:   "selector failure",
			method: http.MethodPost,
			body:   `{"owner":"a","query":"q","budget":10,"summaries":[{"id":"t1","title":"x"}]}`,
			setup: func(s *handlers_mocks.MockTopicSelector, _ *handlers_mocks.MockTopicLister) {
				s.EXPECT().SelectTopics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("embedding service down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			selector := handlers_mocks.NewMockTopicSelector(ctrl)
			lister := handlers_mocks.NewMockTopicLister(ctrl)
			if tt.setup != nil {
				tt.setup(selector, lister)
			}

			handler := NewTopicsHandler(selector, lister)
			req := httptest.NewRequest(tt.method, "/api/v1/topics/select", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}
