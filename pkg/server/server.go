// Package server exposes the pipeline and the layout store over HTTP.
//
// Routes:
//
//	GET    /healthz                  liveness probe
//	GET    /version                  build version, commit and date
//	GET    /stats                    pipeline, cache and request counters (WithStats)
//	POST   /layouts                  store a layout definition
//	GET    /layouts                  list stored layouts, newest first
//	GET    /layouts/{id}             fetch a stored layout
//	DELETE /layouts/{id}             delete a stored layout
//	GET    /layouts/{id}/render      render a stored layout
//	POST   /render                   render an inline layout definition
//
// Render routes take ?format= (one of the pipeline formats, default svg),
// ?scale= and ?indices= (comma-separated). Layout bodies are JSON unless
// ?type= or the Content-Type names TOML or YAML.
//
// Errors are returned as {"code": ..., "error": ...} with a status derived
// from the error code.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tiler/pkg/buildinfo"
	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/layoutfile"
	"github.com/matzehuels/tiler/pkg/observability"
	"github.com/matzehuels/tiler/pkg/pipeline"
	"github.com/matzehuels/tiler/pkg/store"
)

// MaxBodyBytes bounds the size of layout definitions accepted by the API.
const MaxBodyBytes = 1 << 20

// Server is the HTTP API. It implements http.Handler.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
	stats  *observability.Counters
}

// Option configures a [Server].
type Option func(*Server)

// WithStats serves c on GET /stats. The caller registers c's hooks.
func WithStats(c *observability.Counters) Option {
	return func(s *Server) { s.stats = c }
}

// New creates a server. A nil store falls back to an in-memory one and a
// nil logger to the default logger.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, opts ...Option) *Server {
	if st == nil {
		st = store.NewMemory()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, store: st, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.health)
	r.Get("/version", s.version)
	if s.stats != nil {
		r.Get("/stats", s.statsSnapshot)
	}
	r.Post("/render", s.renderInline)
	r.Route("/layouts", func(r chi.Router) {
		r.Post("/", s.createLayout)
		r.Get("/", s.listLayouts)
		r.Get("/{id}", s.getLayout)
		r.Delete("/{id}", s.deleteLayout)
		r.Get("/{id}/render", s.renderStored)
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// observe logs each request and reports it to the HTTP hooks under its
// route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		observability.HTTP().RequestFinished(r.Context(), observability.RequestEvent{
			Method:   r.Method,
			Route:    route,
			Status:   status,
			Duration: duration,
		})
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", duration,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, buildinfo.String()+"\n")
}

func (s *Server) statsSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *Server) createLayout(w http.ResponseWriter, r *http.Request) {
	def, err := readDefinition(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rec, err := s.store.Save(r.Context(), def)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("stored layout", "id", rec.ID, "name", rec.Name)
	w.Header().Set("Location", "/layouts/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) listLayouts(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) deleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("deleted layout", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) renderInline(w http.ResponseWriter, r *http.Request) {
	def, err := readDefinition(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.render(w, r, def)
}

func (s *Server) renderStored(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.render(w, r, rec.Layout)
}

// render runs the pipeline for a single format and writes the artifact.
// Every request builds its own orchestrator from the definition.
func (s *Server) render(w http.ResponseWriter, r *http.Request, def *layoutfile.Definition) {
	opts, format, err := renderOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), def, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("X-Layout-Shape", result.Stats.Shape.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// renderOptions reads format, scale and indices from the query string.
func renderOptions(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()
	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{Formats: []string{format}}

	if v := q.Get("scale"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return opts, "", errors.New(errors.ErrCodeInvalidInput, "scale must be an integer, got %q", v)
		}
		opts.Scale = &k
	}
	if v := q.Get("indices"); v != "" {
		for _, part := range strings.Split(v, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return opts, "", errors.New(errors.ErrCodeInvalidInput, "indices must be integers, got %q", part)
			}
			opts.Indices = append(opts.Indices, n)
		}
	}
	if v := q.Get("height"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h <= 0 {
			return opts, "", errors.New(errors.ErrCodeInvalidInput, "height must be a positive integer, got %q", v)
		}
		opts.CanvasHeight = h
	}
	opts.Refresh = q.Get("refresh") == "true"

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, "", err
	}
	return opts, format, nil
}

// readDefinition decodes the request body as a layout definition.
func readDefinition(w http.ResponseWriter, r *http.Request) (*layoutfile.Definition, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	def, err := layoutfile.Parse(data, bodyFormat(r))
	if err != nil {
		return nil, err
	}
	if def.Name == "" {
		def.Name = "untitled"
	}
	return def, nil
}

func bodyFormat(r *http.Request) layoutfile.Format {
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = r.Header.Get("Content-Type")
	}
	kind = strings.ToLower(kind)
	switch {
	case strings.Contains(kind, "toml"):
		return layoutfile.FormatTOML
	case strings.Contains(kind, "yaml"), strings.Contains(kind, "yml"):
		return layoutfile.FormatYAML
	default:
		return layoutfile.FormatJSON
	}
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

// StatusFor maps an error to its HTTP status by error code.
func StatusFor(err error) int {
	switch code := errors.GetCode(err); {
	case code.Client():
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
