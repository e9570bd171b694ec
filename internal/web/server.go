// Package web serves the download page over HTTP.
//
// Every page request performs the latest-release lookup (through whatever
// caching the Source applies) and renders the classified, ordered assets.
// A failed lookup is logged and rendered as an empty list; it never turns
// into an error response.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"shifremenlanding/internal/landing"
	"shifremenlanding/internal/releases"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Options configures a Server.
type Options struct {
	Source releases.Source
	Owner  string
	Repo   string
	Theme  landing.Theme
	Logger *log.Logger
	// Registry receives the server's collectors and backs /metrics.
	// A fresh registry is created when nil.
	Registry *prometheus.Registry
}

// Server renders the landing page and its JSON view.
type Server struct {
	src   releases.Source
	owner string
	repo  string
	theme landing.Theme
	log   *log.Logger
	tmpl  *template.Template

	registry *prometheus.Registry
	views    *prometheus.CounterVec
}

// NewServer validates opts and parses the page template.
func NewServer(opts Options) (*Server, error) {
	if opts.Source == nil {
		return nil, errors.New("web: release source is required")
	}
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("web: owner and repo are required")
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}

	lg := opts.Logger
	if lg == nil {
		lg = log.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	views := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shifremen",
		Name:      "page_views_total",
		Help:      "Rendered landing responses by route.",
	}, []string{"route"})
	if err := reg.Register(views); err != nil {
		return nil, fmt.Errorf("web: register metrics: %w", err)
	}

	theme := opts.Theme
	if theme == "" {
		theme = landing.ThemeLight
	}

	return &Server{
		src:      opts.Source,
		owner:    opts.Owner,
		repo:     opts.Repo,
		theme:    theme,
		log:      lg,
		tmpl:     tmpl,
		registry: reg,
		views:    views,
	}, nil
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/", s.handleIndex)
	r.Get("/api/release", s.handleRelease)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"dur", time.Since(start),
			"req_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "repo", s.owner+"/"+s.repo)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) load(r *http.Request) *landing.Page {
	page := landing.New(s.theme)
	page.Load(r.Context(), s.src, s.owner, s.repo, s.log)
	return page
}
