package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"example.com/scoreboard/internal/live"
)

type RouterOptions struct {
	Metrics http.Handler // optional; served at /metrics
	Logger  *slog.Logger
}

func NewRouter(board *live.Board, opts RouterOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	matches := &MatchHandler{Board: board}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.Get("/ws", board.ServeWS)

	r.Route("/api/matches", func(r chi.Router) {
		r.Post("/", matches.Start)
		r.Get("/", matches.Summary)
		r.Get("/{id}", matches.Get)
		r.Put("/{id}/score", matches.UpdateScore)
		r.Delete("/{id}", matches.Finish)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}
