// Package server serves the dashboard as a single web page.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/komsit37/quotedash/pkg/dash/pipeline"
	"github.com/komsit37/quotedash/pkg/dash/render"
	"github.com/komsit37/quotedash/pkg/dash/resolve"
	"github.com/komsit37/quotedash/pkg/dash/types"
)

// Analyzer is the part of pipeline.Runner the server needs.
type Analyzer interface {
	Analyze(ctx context.Context, query string) (*types.Report, error)
}

type Server struct {
	Analyzer Analyzer
	Page     *render.HTMLRenderer
	Verbose  bool
}

func New(a Analyzer) *Server {
	return &Server{Analyzer: a, Page: render.NewHTMLRenderer()}
}

// Handler routes "/" to the page and "/api/analyze" to JSON.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.page)
	mux.HandleFunc("/api/analyze", s.api)
	return mux
}

// ListenAndServe runs until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Printf("[INFO] serving dashboard on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	id := uuid.NewString()
	opts := render.Options{Form: true}

	var rep *types.Report
	// The page is an input form until the Analyze button submits q.
	if _, submitted := r.URL.Query()["q"]; submitted {
		q := r.URL.Query().Get("q")
		opts.Query = q
		var err error
		rep, err = s.Analyzer.Analyze(r.Context(), q)
		s.logRequest(id, q, rep, err)
		if err != nil {
			opts.Error = err.Error()
		}
	}

	var buf bytes.Buffer
	if err := s.Page.Render(&buf, rep, opts); err != nil {
		log.Printf("[WARN] request %s: render: %v", id, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

type apiError struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) api(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	q := r.URL.Query().Get("q")
	rep, err := s.Analyzer.Analyze(r.Context(), q)
	s.logRequest(id, q, rep, err)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-Id", id)
	var (
		uerr *resolve.UserInputError
		ferr *pipeline.FetchError
	)
	switch {
	case errors.As(err, &uerr):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(apiError{Error: err.Error(), Kind: "input"})
	case errors.As(err, &ferr):
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(apiError{Error: err.Error(), Kind: "fetch"})
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(apiError{Error: err.Error(), Kind: "internal"})
	case rep == nil:
		w.WriteHeader(http.StatusNoContent)
	default:
		_ = json.NewEncoder(w).Encode(rep)
	}
}

func (s *Server) logRequest(id, q string, rep *types.Report, err error) {
	switch {
	case err != nil:
		log.Printf("[WARN] request %s q=%q: %v", id, q, err)
	case rep == nil:
		if s.Verbose {
			log.Printf("[INFO] request %s q=%q: no data", id, q)
		}
	case s.Verbose:
		log.Printf("[INFO] request %s q=%q symbol=%s bars=%d news=%d", id, q, rep.Symbol, rep.History.Len(), len(rep.News))
	}
}
