// Package server exposes loaded component definitions over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yacobolo/variants"
	"github.com/yacobolo/variants/internal/definitions"
	"github.com/yacobolo/variants/merge"
	"github.com/yacobolo/variants/styled"
)

const maxBodySize = 1 << 20

var tagName = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Server resolves classes for a fixed set of components.
type Server struct {
	merger     *merge.Merger
	logger     *slog.Logger
	metrics    *metrics
	names      []string
	components map[string]*entry
}

type entry struct {
	def      *definitions.Component
	resolver *variants.Resolver
}

// New builds a resolver for every component in set. A nil merger uses the
// built-in Tailwind table.
func New(set *definitions.Set, m *merge.Merger, logger *slog.Logger) (*Server, error) {
	if m == nil {
		m = merge.Default()
	}
	if logger == nil {
		logger = variants.Logger()
	}

	s := &Server{merger: m, logger: logger, components: make(map[string]*entry)}

	var errs []error
	for _, c := range set.Components() {
		r, err := variants.New(c.Config, variants.WithMerger(m))
		if err != nil {
			errs = append(errs, fmt.Errorf("component %q (%s): %w", c.Name, c.Pos, err))
			continue
		}
		s.names = append(s.names, c.Name)
		s.components[c.Name] = &entry{def: c, resolver: r}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	s.metrics = newMetrics(len(s.names))
	return s, nil
}

// Handler returns the HTTP API:
//
//	GET  /health
//	GET  /metrics
//	GET  /components
//	GET  /components/{name}
//	GET  /components/{name}/preview?as=tag&text=content&axis=option
//	POST /components/{name}/resolve
//	POST /resolve
//	POST /merge
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(s.logger))
	r.Use(s.metrics.instrument)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Get("/components", s.listComponents)
	r.Route("/components/{name}", func(r chi.Router) {
		r.Get("/", s.getComponent)
		r.Get("/preview", s.preview)
		r.Post("/resolve", s.resolveNamed)
	})
	r.Post("/resolve", s.resolve)
	r.Post("/merge", s.merge)

	return r
}

// ListenAndServe serves Handler on addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr, "components", len(s.names))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("shutdown complete")
	return nil
}

type axisJSON struct {
	Name     string   `json:"name"`
	Options  []string `json:"options"`
	Boolean  bool     `json:"boolean"`
	Required bool     `json:"required"`
	Default  any      `json:"default,omitempty"`
}

type componentJSON struct {
	Name string     `json:"name"`
	File string     `json:"file"`
	Base string     `json:"base,omitempty"`
	Axes []axisJSON `json:"axes"`
}

func (s *Server) describe(e *entry) componentJSON {
	cfg := e.resolver.Config()
	required := make(map[string]bool)
	for _, name := range e.resolver.RequiredAxes() {
		required[name] = true
	}

	axes := make([]axisJSON, 0, len(cfg.Variants))
	for _, a := range cfg.Variants {
		axes = append(axes, axisJSON{
			Name:     a.Name,
			Options:  slices.Sorted(maps.Keys(a.Options)),
			Boolean:  a.IsBoolean(),
			Required: required[a.Name],
			Default:  cfg.DefaultVariants[a.Name],
		})
	}

	return componentJSON{
		Name: e.def.Name,
		File: e.def.Pos.File,
		Base: variants.Join(cfg.Base),
		Axes: axes,
	}
}

func (s *Server) listComponents(w http.ResponseWriter, _ *http.Request) {
	out := make([]componentJSON, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.describe(s.components[name]))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"components": out})
}

func (s *Server) getComponent(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, chi.URLParam(r, "name"))
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.describe(e))
}

type resolveRequest struct {
	Component string             `json:"component"`
	Selection variants.Selection `json:"selection"`
	Strict    bool               `json:"strict"`
}

type resolveResponse struct {
	Component string            `json:"component"`
	Class     string            `json:"class"`
	Effective map[string]string `json:"effective"`
	Fragments []string          `json:"fragments"`
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.doResolve(w, req)
}

func (s *Server) resolveNamed(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.Component = chi.URLParam(r, "name")
	s.doResolve(w, req)
}

func (s *Server) doResolve(w http.ResponseWriter, req resolveRequest) {
	if req.Component == "" {
		s.writeError(w, http.StatusBadRequest, "component is required")
		return
	}
	e, ok := s.lookup(w, req.Component)
	if !ok {
		return
	}

	if req.Strict {
		if err := e.resolver.Validate(req.Selection); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	s.metrics.resolutions.WithLabelValues(req.Component).Inc()

	var fragments []string
	for _, f := range e.resolver.Fragments(req.Selection) {
		if class := variants.Join(f); class != "" {
			fragments = append(fragments, class)
		}
	}

	s.writeJSON(w, http.StatusOK, resolveResponse{
		Component: req.Component,
		Class:     e.resolver.Resolve(req.Selection),
		Effective: e.resolver.Effective(req.Selection),
		Fragments: fragments,
	})
}

type mergeRequest struct {
	Class   string   `json:"class"`
	Classes []string `json:"classes"`
}

type conflictJSON struct {
	Class  string `json:"class"`
	Winner string `json:"winner"`
}

type mergeResponse struct {
	Class     string         `json:"class"`
	Conflicts []conflictJSON `json:"conflicts"`
}

func (s *Server) merge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if !s.decode(w, r, &req) {
		return
	}

	input := variants.Join(req.Class, req.Classes)
	conflicts := make([]conflictJSON, 0)
	for _, c := range s.merger.Conflicts(input) {
		conflicts = append(conflicts, conflictJSON{Class: c.Class, Winner: c.Winner})
	}

	s.writeJSON(w, http.StatusOK, mergeResponse{
		Class:     variants.CxWith(s.merger, input),
		Conflicts: conflicts,
	})
}

// preview renders the component as HTML. Query parameters select options,
// "as" picks the tag and "text" the content.
func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, chi.URLParam(r, "name"))
	if !ok {
		return
	}

	q := r.URL.Query()
	tag := q.Get("as")
	if tag == "" {
		tag = "div"
	}
	if !tagName.MatchString(tag) {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid tag %q", tag))
		return
	}
	text := q.Get("text")
	if text == "" {
		text = e.def.Name
	}

	c, err := styled.New(styled.Tag(tag), e.resolver.Config(), variants.WithMerger(s.merger))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Only variant axes and the class override are forwarded; other query
	// keys would become arbitrary attributes on the rendered element.
	props := styled.Props{}
	for key, values := range q {
		if (key != variants.ClassKey && !e.resolver.HasAxis(key)) || len(values) == 0 {
			continue
		}
		props[key] = values[len(values)-1]
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(props, styled.Text(text)).Render(r.Context(), w); err != nil {
		s.logger.Error("rendering preview", "component", e.def.Name, "error", err)
	}
}

func (s *Server) lookup(w http.ResponseWriter, name string) (*entry, bool) {
	e, ok := s.components[name]
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown component %q", name))
	}
	return e, ok
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+strings.TrimPrefix(err.Error(), "json: "))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
