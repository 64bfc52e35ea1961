// Package api exposes segmentation and classification over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/statementizer/internal/cache"
	"github.com/ppiankov/statementizer/internal/classify"
	"github.com/ppiankov/statementizer/internal/model"
	"github.com/ppiankov/statementizer/internal/segment"
)

// Server holds the state shared between requests
type Server struct {
	config     *model.Config
	cache      *cache.MemoryCache
	classifier *classify.Classifier
	logOutput  io.Writer
	model      segment.SentenceModel
}

// Option configures a Server
type Option func(*Server)

// WithSentenceModel uses m for the linguistic strategy instead of loading Punkt in NewServer
func WithSentenceModel(m segment.SentenceModel) Option {
	return func(s *Server) {
		s.model = m
	}
}

// WithLogOutput sends request logs to w. A nil writer disables request logging.
func WithLogOutput(w io.Writer) Option {
	return func(s *Server) {
		s.logOutput = w
	}
}

// NewServer builds a server from cfg. The tactic dictionaries and, unless one
// is injected, the Punkt sentence model are loaded once here.
func NewServer(cfg *model.Config, opts ...Option) (*Server, error) {
	dicts, err := classify.LoadDictionariesFile(cfg.Classify.DictionaryFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidConfig, err)
	}

	s := &Server{
		config:     cfg,
		classifier: classify.New(dicts),
	}
	if cfg.Cache.Enabled {
		s.cache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.model == nil {
		m, err := segment.NewPunktModel()
		if err != nil {
			return nil, fmt.Errorf("load sentence model: %w", err)
		}
		s.model = m
	}

	return s, nil
}

// Router returns the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	if s.logOutput != nil {
		r.Use(gin.LoggerWithWriter(s.logOutput))
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/strategies", s.strategies)
		v1.POST("/segment", s.segment)
		v1.POST("/classify", s.classify)
	}

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
