// Package api provides the read-only management API for rr-authd.
// It exposes health, request counters and the loaded zones over a Gin HTTP server.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/common/stats"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// ZoneCatalog is the zone view the API reads from.
type ZoneCatalog interface {
	Lookup(name string) (domain.Zone, bool)
	Origins() []string
}

// Options configures a Server.
type Options struct {
	Addr    string
	Backend string
	Zones   ZoneCatalog
	Stats   *stats.Counters
	Logger  log.Logger

	// IndexStats, when set, adds backend counters to /stats.
	IndexStats func() any
}

// Server is the management REST API server.
type Server struct {
	backend    string
	zones      ZoneCatalog
	stats      *stats.Counters
	indexStats func() any
	logger     log.Logger

	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	logger := log.WithFields(opts.Logger, map[string]any{"component": "api"})

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))

	s := &Server{
		backend:    opts.Backend,
		zones:      opts.Zones,
		stats:      opts.Stats,
		indexStats: opts.IndexStats,
		logger:     logger,
		engine:     engine,
	}
	s.registerRoutes(engine)

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	api.GET("/health", s.Health)
	api.GET("/stats", s.Stats)
	api.GET("/zones", s.ListZones)
	api.GET("/zones/:origin", s.GetZone)
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.logger.Info(map[string]any{"address": ln.Addr().String()}, "management API started")

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(map[string]any{"error": err}, "management API stopped unexpectedly")
		}
	}()
	return nil
}

// Addr returns the bound address once started, otherwise the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
