// Package app assembles configuration, logging, the lookup service and the
// HTTP server into a runnable process.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/numlookup/internal/fetch"
	"github.com/hyperifyio/numlookup/internal/lookup"
	"github.com/hyperifyio/numlookup/internal/metrics"
	"github.com/hyperifyio/numlookup/internal/normalize"
	"github.com/hyperifyio/numlookup/internal/server"
)

type App struct {
	cfg      Config
	log      zerolog.Logger
	registry *prometheus.Registry
	svc      *lookup.Service
	handler  http.Handler
}

// New validates cfg and wires the lookup service and router.
func New(cfg Config, logger zerolog.Logger) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: logger}

	var m *metrics.Metrics
	var gatherer prometheus.Gatherer
	if cfg.MetricsEnabled {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(a.registry)
		gatherer = a.registry
	}

	fc := &fetch.Client{
		HTTPClient:        newUpstreamHTTPClient(cfg.UpstreamTimeout),
		UserAgent:         cfg.UserAgent,
		PerRequestTimeout: cfg.UpstreamTimeout,
		RedirectMaxHops:   cfg.RedirectMaxHops,
		MaxBodyBytes:      cfg.MaxBodyBytes,
	}
	svc, err := lookup.New(fc, lookup.Options{
		Endpoint: cfg.UpstreamURL,
		Param:    cfg.UpstreamParam,
		Strict:   cfg.StrictInput,
		Logger:   logger.With().Str("component", "lookup").Logger(),
		Metrics:  m,
	})
	if err != nil {
		return nil, fmt.Errorf("init lookup: %w", err)
	}
	a.svc = svc
	a.handler = server.NewRouter(svc, server.Options{
		Logger:   logger.With().Str("component", "http").Logger(),
		Gatherer: gatherer,
		Version:  BuildVersion,
	})
	return a, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Lookup runs one lookup against the upstream.
func (a *App) Lookup(ctx context.Context, raw string) (lookup.Outcome, error) {
	return a.svc.Lookup(ctx, raw)
}

// Analyze extracts a record from content that was saved earlier, without
// contacting the upstream.
func (a *App) Analyze(raw, content string) lookup.Outcome {
	out := lookup.Outcome{Input: raw, Number: normalize.Normalize(raw)}
	return a.svc.Analyze(out, content)
}

// Run listens on the configured address and serves until ctx is cancelled or
// the process receives SIGINT or SIGTERM.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.ListenAddr, err)
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within
// ShutdownTimeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Leave room for the upstream call plus response encoding.
		WriteTimeout: a.cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info().
			Str("addr", ln.Addr().String()).
			Str("upstream", a.cfg.UpstreamURL).
			Bool("strict", a.cfg.StrictInput).
			Str("version", BuildVersion).
			Msg("server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
