// Package web provides the HTTP server and handlers for the nucamp web UI and JSON API.
package web

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/evcraddock/nucamp/internal/campsite"
	"github.com/evcraddock/nucamp/internal/comment"
	"github.com/evcraddock/nucamp/internal/logging"
	"github.com/evcraddock/nucamp/internal/view"
)

//go:embed static/*
var staticFS embed.FS

// Options configures the server beyond its database.
type Options struct {
	// ImageBaseURL prefixes campsite image references in rendered pages.
	ImageBaseURL string
	// ImagesDir, when set, is served under /images/.
	ImagesDir string
}

// Server is the web UI and API HTTP server.
type Server struct {
	campsites *campsite.Repository
	comments  *comment.Repository
	views     *view.Renderer
	router    chi.Router
}

// NewServer creates a web server with the given database.
func NewServer(db *sql.DB, opts Options) (*Server, error) {
	views, err := view.NewRenderer(opts.ImageBaseURL)
	if err != nil {
		return nil, err
	}

	s := &Server{
		campsites: campsite.NewRepository(db),
		comments:  comment.NewRepository(db),
		views:     views,
		router:    chi.NewRouter(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	r := s.router
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	if opts.ImagesDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(opts.ImagesDir))))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/directory", http.StatusSeeOther)
	})
	r.Get("/directory", s.handleDirectory)
	r.Route("/directory/{id}", func(r chi.Router) {
		r.Get("/", s.handleDetail)
		r.Get("/info", s.handleInfo)
		r.Post("/comments", s.handleCommentPost)
		r.Post("/comments/validate", s.handleCommentValidate)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/campsites", s.apiListCampsites)
		r.Get("/campsites/{id}", s.apiGetCampsite)
		r.Get("/campsites/{id}/comments", s.apiListComments)
		r.Post("/campsites/{id}/comments", s.apiAddComment)
	})

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on port until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests up to 15 seconds.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
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

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// render buffers a template so a failure can still produce a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		slog.Error("rendering template", "error", err)
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("writing response", "error", err)
	}
}

// campsiteID parses the {id} URL parameter.
func campsiteID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// isHTMX reports whether the request came from htmx and wants a partial.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
