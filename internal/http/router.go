package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"recall-ai/internal/handlers"
	"recall-ai/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Logger *slog.Logger

	Retriever  handlers.Retriever
	Selector   handlers.TopicSelector
	Topics     handlers.TopicLister
	Navigation handlers.NavigationRebuilder
	// Links is optional. Without it inline rebuilds use the stored links.
	Links handlers.LinkRefresher
	// Queue is optional. Without it async rebuilds answer 503.
	Queue handlers.RebuildEnqueuer

	Store            handlers.Pinger
	VectorStore      vectorstore.VectorStore
	VectorCollection string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Store, deps.VectorStore, deps.VectorCollection))

		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/retrieve", handlers.NewRetrieveHandler(deps.Retriever))
			r.Method(http.MethodPost, "/topics/select", handlers.NewTopicsHandler(deps.Selector, deps.Topics))
			r.Method(http.MethodPost, "/navigation/{owner}/rebuild", handlers.NewNavigationHandler(deps.Navigation, deps.Links, deps.Queue))
		})
	})

	return r
}
