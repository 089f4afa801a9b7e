package server

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/specbox/pkg/buildinfo"
	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/figure"
	"github.com/matzehuels/specbox/pkg/hover"
	"github.com/matzehuels/specbox/pkg/httputil"
	"github.com/matzehuels/specbox/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type createResponse struct {
	ID string `json:"id"`
}

type hoverResponse struct {
	Hit    bool            `json:"hit"`
	Labels *hover.LabelSet `json:"labels,omitempty"`
}

type clickResponse struct {
	Toggled              bool            `json:"toggled"`
	ScaleIgnoresOutliers bool            `json:"scaleIgnoresOutliers"`
	Labels               *hover.LabelSet `json:"labels,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	fig, err := readFigure(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.cfg.Store.Create(r.Context(), r.URL.Query().Get("name"), fig)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Debug("stored figure", "id", rec.ID, "traces", len(fig.Data))
	httputil.WriteJSON(w, http.StatusCreated, createResponse{ID: rec.ID})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	fig, err := readFigure(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.cfg.Store.Update(r.Context(), chi.URLParam(r, "id"), fig)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := renderOptions(r, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.cfg.Runner.Execute(r.Context(), rec.Figure, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.RenderHit))
	httputil.WriteBytes(w, contentTypes[format], res.Artifacts[format])
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	var req pipeline.HoverOptions
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	labels, err := s.cfg.Runner.Hover(r.Context(), rec.Figure, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, hoverResponse{Hit: labels != nil, Labels: labels})
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var at pipeline.Cursor
	if err := httputil.DecodeJSON(r, &at); err != nil {
		s.fail(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	rec, err := s.cfg.Store.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	labels, toggled, err := s.cfg.Runner.Click(r.Context(), rec.Figure, at)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if toggled {
		if _, err := s.cfg.Store.Update(r.Context(), id, rec.Figure); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, clickResponse{
		Toggled:              toggled,
		ScaleIgnoresOutliers: rec.Figure.Layout.IgnoresOutliers(),
		Labels:               labels,
	})
}

// fail writes err and logs server-side failures.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.GetCode(err) == "" && r.Context().Err() == context.DeadlineExceeded {
		err = errors.Wrap(errors.ErrCodeTimeout, err, "request timed out")
	}
	status := httputil.WriteError(w, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", requestIDFrom(r.Context()), "path", r.URL.Path, "err", err)
	}
}

// readFigure decodes a figure body. The format follows the Content-Type
// (application/toml, application/yaml) and defaults to JSON. The figure
// must prepare cleanly before it is stored.
func readFigure(r *http.Request) (*figure.Figure, error) {
	data, err := httputil.ReadBody(r)
	if err != nil {
		return nil, err
	}
	fig, err := figure.Unmarshal(data, bodyFormat(r))
	if err != nil {
		return nil, err
	}
	check, err := fig.Clone()
	if err != nil {
		return nil, err
	}
	if err := check.Prepare(); err != nil {
		return nil, err
	}
	return fig, nil
}

func bodyFormat(r *http.Request) figure.Format {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/toml":
		return figure.FormatTOML
	case "application/yaml", "application/x-yaml", "text/yaml":
		return figure.FormatYAML
	default:
		return figure.FormatJSON
	}
}

// renderOptions reads width, height, scale, ticks, title, embed_font and
// no_cache from the query string.
func renderOptions(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats: []string{format},
		Title:   q.Get("title"),
	}
	floats := []struct {
		name string
		dst  *float64
	}{{"width", &opts.Width}, {"height", &opts.Height}, {"scale", &opts.Scale}}
	for _, f := range floats {
		if v := q.Get(f.name); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", f.name, v)
			}
			*f.dst = n
		}
	}
	if v := q.Get("ticks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "ticks must be an integer, got %q", v)
		}
		opts.Ticks = n
	}
	opts.EmbedFont = q.Get("embed_font") == "true"
	opts.NoCache = q.Get("no_cache") == "true"
	return opts, nil
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
