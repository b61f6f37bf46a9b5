// Package server is the HTTP preview server: it renders frames, kernel
// descriptors, simulated gestures and the interaction diagram on demand and
// caches the results.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gooeyswipe/internal/scene"
	"github.com/matzehuels/gooeyswipe/pkg/buildinfo"
	"github.com/matzehuels/gooeyswipe/pkg/cache"
	"github.com/matzehuels/gooeyswipe/pkg/config"
)

// Options configures a Server.
type Options struct {
	Config *config.Config
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// Server serves previews.
type Server struct {
	cfg     *config.Config
	cache   cache.Cache
	keyer   cache.Keyer
	logger  *log.Logger
	scenes  *scene.Builder
	params  string
	handler http.Handler
}

// New builds the router. A nil cache disables caching; a nil keyer scopes
// keys with the configured prefix.
func New(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	keyer := opts.Keyer
	if keyer == nil {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Cache.Prefix)
	}

	scenes, err := scene.NewBuilder(cfg, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		cache:  cache.Instrument(c, nil),
		keyer:  keyer,
		logger: logger,
		scenes: scenes,
		params: cache.HashValue(struct {
			Params  any
			Actions config.Actions
		}{cfg.Params(), cfg.Actions}),
	}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if d := s.cfg.Server.RequestTimeout.Duration; d > 0 {
		r.Use(middleware.Timeout(d))
	}
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))

	r.Get("/", s.index)
	r.Get("/healthz", s.healthz)
	r.Get("/version", s.version)
	r.Get("/frame.svg", s.frameSVG)
	r.Get("/frame.png", s.framePNG)
	r.Get("/descriptors", s.descriptors)
	r.Get("/simulate.gif", s.simulateGIF)
	r.Route("/diagram", func(r chi.Router) {
		r.Get("/", s.diagram)
		r.Get("/{state}", s.diagram)
	})
	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	timeout := s.cfg.Server.RequestTimeout.Duration
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", "http://"+srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs one line per request through the charm logger.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
