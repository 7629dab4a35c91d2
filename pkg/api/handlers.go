package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wraplayout/pkg/buildinfo"
	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/pipeline"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// LayoutResponse is the JSON body returned by POST /v1/layout.
type LayoutResponse struct {
	ID     string       `json:"id"`
	Cached bool         `json:"cached"`
	Layout scene.Result `json:"layout"`
}

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sc, err := scene.Read(http.MaxBytesReader(w, r.Body, MaxBodyBytes), scene.FormatJSON)
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := layoutOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, hit, err := s.runner.ComputeLayoutWithCacheInfo(ctx, sc, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := s.store.Save(ctx, res)
	if err != nil {
		writeError(w, err)
		return
	}
	res.ID = id

	format := r.URL.Query().Get("format")
	if format == "" {
		w.Header().Set("Location", "/v1/layouts/"+id)
		writeJSON(w, http.StatusCreated, LayoutResponse{ID: id, Cached: hit, Layout: res})
		return
	}

	opts.Formats = []string{format}
	opts.Style = r.URL.Query().Get("style")
	w.Header().Set("X-Layout-ID", id)
	s.writeArtifact(w, r, res, opts)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	opts := pipeline.Options{Style: q.Get("style")}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	s.writeArtifact(w, r, res, opts)
}

// writeArtifact renders the single format in opts and writes it.
func (s *Server) writeArtifact(w http.ResponseWriter, r *http.Request, res scene.Result, opts pipeline.Options) {
	q := r.URL.Query()
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	opts.NoLabels = q.Get("labels") == "false"
	opts.LineGuides = q.Get("guides") == "true"

	artifacts, err := s.runner.Render(r.Context(), res, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// layoutOptions reads the width and spacing overrides from the query.
// width=inf requests an unconstrained layout.
func layoutOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"width", &opts.Width},
		{"hspacing", &opts.HorizontalSpacing},
		{"vspacing", &opts.VerticalSpacing},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s", p.name)
		}
		*p.dst = &v
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	// Encode first so that a failure can still become a 500.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.Copy(w, &buf)
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorStatus(w, errors.HTTPStatus(err), err)
}

func writeErrorStatus(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if resp.Code == "" {
		// Uncoded errors may carry internals; do not leak them.
		resp = ErrorResponse{Code: errors.ErrCodeInternal, Message: "internal error"}
	}
	data, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
