package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kylemclaren/speed-reader/internal/config"
	"github.com/kylemclaren/speed-reader/internal/fetch"
	"github.com/kylemclaren/speed-reader/internal/playback"
	"github.com/kylemclaren/speed-reader/internal/reducer"
	"github.com/kylemclaren/speed-reader/internal/session"
)

// Server is the HTTP API of the speed reader.
type Server struct {
	router   chi.Router
	sessions *session.Manager
	fetcher  *fetch.Fetcher
	reducer  reducer.Reducer
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sessions *session.Manager, fetcher *fetch.Fetcher, red reducer.Reducer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions: sessions,
		fetcher:  fetcher,
		reducer:  red,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/documents", s.handleCreateDocument)
		r.Post("/api/documents/upload", s.handleUploadDocument)
		r.Get("/api/stats/fetch", s.handleFetchStats)

		r.Route("/api/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Post("/upload", s.handleUploadSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)

				r.Post("/play", s.sessionAction((*playback.Engine).Play))
				r.Post("/pause", s.sessionAction((*playback.Engine).Pause))
				r.Post("/toggle", s.sessionAction((*playback.Engine).TogglePlayPause))
				r.Post("/next", s.sessionAction((*playback.Engine).Next))
				r.Post("/previous", s.sessionAction((*playback.Engine).Previous))
				r.Post("/reset", s.sessionAction((*playback.Engine).Reset))
				r.Post("/faster", s.sessionAction((*playback.Engine).SpeedUp))
				r.Post("/slower", s.sessionAction((*playback.Engine).SlowDown))
				r.Post("/skip-forward", s.handleSkip((*playback.Engine).SkipForward))
				r.Post("/skip-backward", s.handleSkip((*playback.Engine).SkipBackward))
				r.Post("/speed", s.handleSetSpeed)
				r.Post("/seek", s.handleSeek)
			})
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
