// Package server serves rendered figures over HTTP for live preview.
//
// Routes:
//
//	GET /                     HTML index with every figure
//	GET /figures              JSON list of figures
//	GET /figures/{name}.png   PNG rendered on demand (?scale=2 for high DPI)
//	GET /healthz              liveness check
//
// Figures are rendered through the pipeline runner, so repeated requests
// for the same figure and scale are served from the cache.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/figforge/pkg/buildinfo"
	"github.com/matzehuels/figforge/pkg/errors"
	"github.com/matzehuels/figforge/pkg/figure"
	"github.com/matzehuels/figforge/pkg/observability"
	"github.com/matzehuels/figforge/pkg/pipeline"
)

//go:embed templates/*
var templatesFS embed.FS

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8420"

// Server renders figures on request.
type Server struct {
	registry  *figure.Registry
	runner    *pipeline.Runner
	logger    *log.Logger
	templates *template.Template
	router    chi.Router
}

// New creates a server for the figures in reg.
func New(reg *figure.Registry, runner *pipeline.Runner, logger *log.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		registry:  reg,
		runner:    runner,
		logger:    logger,
		templates: tmpl,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/figures", s.handleList)
	r.Get("/figures/{file}", s.handleFigure)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully. ready, if non-nil, receives the bound address once the
// listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(addr string)) error {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "listen on %s", addr)
	}
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ready != nil {
		ready(ln.Addr().String())
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// figureInfo is the JSON and template view of a figure.
type figureInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Tags        []string `json:"tags,omitempty"`
	URL         string   `json:"url"`
}

func (s *Server) infos() []figureInfo {
	figs := s.registry.All()
	out := make([]figureInfo, len(figs))
	for i, f := range figs {
		w, h := f.Size()
		out[i] = figureInfo{
			Name:        f.Name(),
			Description: f.Description(),
			Width:       w,
			Height:      h,
			Tags:        figure.TagsOf(f),
			URL:         "/figures/" + f.Name() + ".png",
		}
	}
	return out
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Figures []figureInfo
		Version string
	}{
		Figures: s.infos(),
		Version: buildinfo.Version,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.infos()); err != nil {
		s.logger.Warn("encode figure list", "error", err)
	}
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".png")
	if !ok {
		http.Error(w, "only .png is served", http.StatusNotFound)
		return
	}
	f, ok := s.registry.Lookup(name)
	if !ok {
		http.Error(w, "unknown figure "+strconv.Quote(name), http.StatusNotFound)
		return
	}

	scale := pipeline.DefaultScale
	if q := r.URL.Query().Get("scale"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			http.Error(w, "invalid scale "+strconv.Quote(q), http.StatusBadRequest)
			return
		}
		scale = v
	}
	if err := pipeline.ValidateScale(scale); err != nil {
		http.Error(w, errors.UserMessage(err), http.StatusBadRequest)
		return
	}

	etag := `"` + figure.Fingerprint(f, scale) + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	data, err := s.runner.RenderOne(r.Context(), f, scale)
	if err != nil {
		s.logger.Error("render failed", "figure", name, "scale", scale, "error", err)
		http.Error(w, errors.UserMessage(err), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

func statusFor(err error) int {
	switch {
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// observe reports requests to the server hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "duration", time.Since(start))
	})
}
