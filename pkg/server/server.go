// Package server exposes the theme manager over a small local HTTP API.
//
//	GET    /healthz
//	GET    /theme                  current theme, ETag = revision
//	GET    /presets
//	POST   /color/{hex}?mode=&scheme=
//	POST   /presets/{name}/apply
//	DELETE /presets/{name}
//
// Errors are JSON objects of the form {"code": "...", "message": "..."}.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chromash/chromash/pkg/chromash"
	"github.com/chromash/chromash/pkg/preset"
	"github.com/chromash/chromash/pkg/theme"
)

// Themer is the part of the theme manager the API drives.
type Themer interface {
	ApplyColor(ctx context.Context, color string, opts theme.Options) (*chromash.Result, error)
	ApplyPreset(ctx context.Context, name string) (*chromash.Result, error)
	ListPresets(ctx context.Context) ([]preset.Metadata, error)
	DeletePreset(ctx context.Context, name string) (bool, error)
	CurrentTheme(ctx context.Context) (*theme.Current, error)
}

// Server serves the HTTP API.
type Server struct {
	themer Themer
	logger *log.Logger
	router chi.Router
}

// New builds the router.
func New(t Themer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{themer: t, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/theme", s.handleTheme)
	r.Get("/presets", s.handleListPresets)
	r.Post("/color/{hex}", s.handleColor)
	r.Post("/presets/{name}/apply", s.handleApplyPreset)
	r.Delete("/presets/{name}", s.handleDeletePreset)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}
