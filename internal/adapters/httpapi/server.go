// Package httpapi is the thin HTTP surface: the /predictions/generate
// trigger plus the read endpoints the persistence contract fixes. It is a
// chi-based server, trimmed to the essentials — no auth, no dashboard, no
// full API surface.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jmoreno-dev/polypredict/internal/application/pipeline"
	"github.com/jmoreno-dev/polypredict/internal/ports"
)

// Server is the HTTP surface.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	runner  *pipeline.Runner
	storage ports.Storage
	log     zerolog.Logger
}

func New(addr string, runner *pipeline.Runner, storage ports.Storage, log zerolog.Logger) *Server {
	s := &Server{
		runner:  runner,
		storage: storage,
		log:     log.With().Str("component", "httpapi").Logger(),
	}

	s.router = chi.NewRouter()
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(15 * time.Second))
	s.router.Use(s.accessLog)

	s.router.Get("/health", s.handleHealth)
	s.router.Post("/predictions/generate", s.handleGenerate)
	s.router.Get("/markets", s.handleMarkets)
	s.router.Get("/predictions", s.handlePredictions)
	s.router.Get("/signals", s.handleSignals)
	s.router.Get("/trades", s.handleTrades)
	s.router.Get("/portfolio/latest", s.handlePortfolioLatest)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// accessLog is a request-scoped access log layer on top of the
// application's slog-based logging.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}
