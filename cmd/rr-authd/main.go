package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/haukened/rr-authdns/internal/dns/common/clock"
	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/common/stats"
	"github.com/haukened/rr-authdns/internal/dns/config"
	"github.com/haukened/rr-authdns/internal/dns/gateways/api"
	"github.com/haukened/rr-authdns/internal/dns/gateways/transport"
	"github.com/haukened/rr-authdns/internal/dns/gateways/wire"
	"github.com/haukened/rr-authdns/internal/dns/repos/zone"
	"github.com/haukened/rr-authdns/internal/dns/repos/zoneindex"
	"github.com/haukened/rr-authdns/internal/dns/repos/zonestore"
	"github.com/haukened/rr-authdns/internal/dns/services/resolver"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "rr-authd"

	defaultShutdownTimeout = 10 * time.Second
)

// Application holds all the components of the DNS server
type Application struct {
	config    *config.AppConfig
	transport transport.ServerTransport
	resolver  *resolver.Resolver
	zones     api.ZoneCatalog
	index     *zoneindex.Index
	api       *api.Server
	stats     *stats.Counters
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"app":          appName,
		"version":      version,
		"env":          cfg.Env,
		"log_level":    cfg.LogLevel,
		"listen":       cfg.ListenAddr(),
		"zone_dir":     cfg.ZoneDir,
		"zone_backend": cfg.ZoneBackend,
		"api":          cfg.APIAddr(),
	}, "Starting RR-AuthDNS server")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "Server failed")
	}

	log.Info(nil, "RR-AuthDNS server stopped gracefully")
}

// buildApplication loads the zones and wires every component together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	clk := &clock.RealClock{}
	logger := log.GetLogger()

	zones, err := zone.NewLoader(cfg.DefaultTTL, logger).LoadZoneDirectory(cfg.ZoneDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load zone directory: %w", err)
	}

	app := &Application{
		config: cfg,
		stats:  stats.New(clk),
	}

	switch cfg.ZoneBackend {
	case "bolt":
		idx, err := zoneindex.Open(zoneindex.Options{
			Path:      cfg.ZoneDB,
			CacheSize: cfg.ZoneCacheSize,
			Logger:    logger,
			Clock:     clk,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open zone index: %w", err)
		}
		if err := idx.Rebuild(zones); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("failed to rebuild zone index: %w", err)
		}
		app.index = idx
		app.zones = idx
	default:
		app.zones = zonestore.New(zones)
	}

	log.Info(map[string]any{
		"zone_dir": cfg.ZoneDir,
		"backend":  cfg.ZoneBackend,
		"zones":    len(app.zones.Origins()),
	}, "Zones loaded")

	app.resolver = resolver.NewResolver(resolver.ResolverOptions{
		Clock:  clk,
		Logger: logger,
		Zones:  app.zones,
	})

	app.transport, err = transport.NewTransport(transport.TransportUDP, transport.UDPOptions{
		Addr:        cfg.ListenAddr(),
		Codec:       wire.NewUDPCodec(logger),
		Logger:      logger,
		Stats:       app.stats,
		MaxInflight: cfg.MaxInflight,
	})
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	if addr := cfg.APIAddr(); addr != "" {
		opts := api.Options{
			Addr:    addr,
			Backend: cfg.ZoneBackend,
			Zones:   app.zones,
			Stats:   app.stats,
			Logger:  logger,
		}
		if app.index != nil {
			idx := app.index
			opts.IndexStats = func() any { return idx.Stats() }
		}
		app.api = api.New(opts)
	}

	return app, nil
}

// Run starts the DNS server and blocks until ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	defer app.close()

	if err := app.transport.Start(ctx, app.resolver); err != nil {
		return fmt.Errorf("failed to start UDP transport: %w", err)
	}
	log.Info(map[string]any{
		"address":   app.transport.Address(),
		"transport": "UDP",
	}, "DNS server started")

	if app.api != nil {
		if err := app.api.Start(); err != nil {
			_ = app.transport.Stop()
			return fmt.Errorf("failed to start management API: %w", err)
		}
	}

	<-ctx.Done()
	log.Info(nil, "Shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		if err := app.transport.Stop(); err != nil {
			log.Warn(map[string]any{"error": err}, "Error during transport shutdown")
		}
		return nil
	})
	if app.api != nil {
		g.Go(func() error {
			return app.api.Shutdown(shutdownCtx)
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info(nil, "Graceful shutdown completed")
		return nil
	case <-shutdownCtx.Done():
		log.Warn(map[string]any{"timeout": defaultShutdownTimeout}, "Shutdown timeout exceeded")
		return errors.New("shutdown timeout")
	}
}

func (app *Application) close() {
	if app.index == nil {
		return
	}
	if err := app.index.Close(); err != nil {
		log.Warn(map[string]any{"error": err}, "Error closing zone index")
	}
	app.index = nil
}
