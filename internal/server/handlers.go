package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gooeyswipe/internal/scene"
	"github.com/matzehuels/gooeyswipe/pkg/buildinfo"
	"github.com/matzehuels/gooeyswipe/pkg/cache"
	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/render"
	"github.com/matzehuels/gooeyswipe/pkg/swipe"
	"github.com/matzehuels/gooeyswipe/pkg/trace"
)

const maxSimulationFrames = 600

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) frameSVG(w http.ResponseWriter, r *http.Request) {
	still, err := parseStill(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	images := r.URL.Query().Get("images") != "0"
	key := s.keyer.FrameKey(s.frameKey("svg", still, 1, images))

	s.cached(w, r, key, "image/svg+xml", func() ([]byte, error) {
		canvas, e, err := s.scenes.Frame(still)
		if err != nil {
			return nil, err
		}
		opts := []render.SVGOption{render.WithTitle(fmt.Sprintf("%s swipe at %.2f", e.Direction(), e.Progress()))}
		if !images {
			opts = append(opts, render.WithoutImages())
		}
		return render.RenderSVG(canvas, opts...), nil
	})
}

func (s *Server) framePNG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	still, err := parseStill(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	scale, err := parseFloat(q, "scale", s.cfg.Canvas.Scale)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if scale <= 0 || scale > 8 {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8]"))
		return
	}
	key := s.keyer.FrameKey(s.frameKey("png", still, scale, true))

	s.cached(w, r, key, "image/png", func() ([]byte, error) {
		canvas, _, err := s.scenes.Frame(still)
		if err != nil {
			return nil, err
		}
		return render.RenderPNG(canvas, scale)
	})
}

type descriptorResponse struct {
	Direction effect.Direction `json:"direction"`
	Pivot     float64          `json:"pivot"`
	Height    float64          `json:"height"`
	Frame     any              `json:"frame"`
}

func (s *Server) descriptors(w http.ResponseWriter, r *http.Request) {
	still, err := parseStill(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_, e, err := s.scenes.Frame(still)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	k := e.Kernel()
	writeJSON(w, http.StatusOK, descriptorResponse{
		Direction: e.Direction(),
		Pivot:     k.PivotY(),
		Height:    k.EffectHeight(),
		Frame:     e.Frame().Describe(),
	})
}

func (s *Server) simulateGIF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	still, err := parseStill(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	distance, err := parseFloat(q, "distance", s.cfg.Effect.MaxWidth*0.9)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if distance < 0 || distance > s.cfg.Canvas.Width {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "distance must be in [0, %g]", s.cfg.Canvas.Width))
		return
	}

	opts := s.frameKey("gif", still, s.cfg.Canvas.Scale/2, true)
	opts.Progress = distance
	key := s.keyer.FrameKey(opts)

	s.cached(w, r, key, "image/gif", func() ([]byte, error) {
		tr := trace.Synthesize(trace.Gesture{
			Direction: still.Direction,
			Distance:  distance,
			VPos:      still.VPos,
			Size:      s.scenes.Size(),
		})
		rec, _ := s.scenes.RecordGIF(tr, still.Row, maxSimulationFrames)
		var buf bytes.Buffer
		if err := rec.Encode(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

func (s *Server) diagram(w http.ResponseWriter, r *http.Request) {
	current, label := swipe.State(-1), "none"
	if name := chi.URLParam(r, "state"); name != "" {
		st, err := swipe.ParseState(name)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		current, label = st, st.String()
	}
	dot := swipe.DiagramDOT(current)

	if r.URL.Query().Get("format") == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		w.Write([]byte(dot))
		return
	}

	key := s.keyer.DiagramKey(label, "svg")
	s.cached(w, r, key, "image/svg+xml", func() ([]byte, error) {
		return swipe.RenderDiagramSVG(r.Context(), dot)
	})
}

// cached serves key from the cache or renders, stores and serves it. Cache
// failures are logged and otherwise ignored.
func (s *Server) cached(w http.ResponseWriter, r *http.Request, key, contentType string, produce func() ([]byte, error)) {
	ctx := r.Context()
	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache get failed", "key", key, "err", err)
	}
	if !hit {
		data, err = produce()
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.store(ctx, key, data)
	}
	w.Header().Set("Content-Type", contentType)
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Write(data)
}

func (s *Server) store(ctx context.Context, key string, data []byte) {
	if err := s.cache.Set(ctx, key, data, s.cfg.Cache.TTL.Duration); err != nil {
		s.logger.Warn("cache set failed", "key", key, "err", err)
	}
}

func (s *Server) frameKey(format string, still scene.Still, scale float64, images bool) cache.FrameKeyOpts {
	size := s.scenes.Size()
	return cache.FrameKeyOpts{
		Format:    format,
		Direction: still.Direction.String(),
		Progress:  still.Progress,
		VPos:      still.VPos,
		Width:     size.W,
		Height:    size.H,
		Scale:     scale,
		Row:       still.Row,
		Images:    images,
		Params:    s.params,
	}
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// parseStill reads dir, p, vpos and row. Missing values default to a right
// swipe at progress 0.5 in the middle of row 0.
func parseStill(q url.Values) (scene.Still, error) {
	still := scene.Still{Direction: effect.ToRight, Progress: 0.5, VPos: 0.5}
	if d := q.Get("dir"); d != "" {
		dir, err := effect.ParseDirection(d)
		if err != nil {
			return still, err
		}
		still.Direction = dir
	}
	var err error
	if still.Progress, err = parseFloat(q, "p", still.Progress); err != nil {
		return still, err
	}
	if still.VPos, err = parseFloat(q, "vpos", still.VPos); err != nil {
		return still, err
	}
	if v := q.Get("row"); v != "" {
		row, err := strconv.Atoi(v)
		if err != nil || row < 0 {
			return still, errors.New(errors.ErrCodeInvalidInput, "row must be a non-negative integer")
		}
		still.Row = row
	}
	return still, still.Validate()
}

func parseFloat(q url.Values, name string, def float64) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be a number", name)
	}
	return f, nil
}
