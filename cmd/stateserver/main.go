// cmd/stateserver/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/motoman-stateserver/internal/config"
	"github.com/tamzrod/motoman-stateserver/internal/controller"
	"github.com/tamzrod/motoman-stateserver/internal/iolink"
	"github.com/tamzrod/motoman-stateserver/internal/logging"
	"github.com/tamzrod/motoman-stateserver/internal/poller"
	"github.com/tamzrod/motoman-stateserver/internal/stateserver"
	"github.com/tamzrod/motoman-stateserver/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: stateserver <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	logger, closeLog := logging.InitLogger(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("state server stopped", "err", err)
		stop()
		_ = closeLog()
		os.Exit(1)
	}
	logger.Info("state server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// --------------------
	// Controller I/O link (shared by poller, groups and feedback outputs)
	// --------------------

	link, err := iolink.New(iolink.Config{
		Endpoint: cfg.IO.Endpoint,
		UnitID:   cfg.IO.UnitID,
		Timeout:  time.Duration(cfg.IO.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	defer link.Close()

	clock := clockwork.NewRealClock()

	ctrl, err := controller.FromConfig(cfg.Controller, link, clock)
	if err != nil {
		return err
	}

	p, err := poller.Build(cfg.Controller, link, clock)
	if err != nil {
		return err
	}

	srv, err := stateserver.New(
		stateserver.Options{
			MaxClients:  cfg.Server.MaxClients,
			SendTimeout: time.Duration(cfg.Server.SendTimeoutMs) * time.Millisecond,
		},
		stateserver.Deps{
			Source: ctrl,
			Clock:  stateserver.NewTickerClock(clock, ctrl.InterpolationPeriod()),
			IO:     writer.Build(cfg.IO, link),
			Log:    logger,
		},
	)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Listen)
	if err != nil {
		return err
	}

	logger.Info("state server configured",
		"variant", ctrl.Variant().Name,
		"groups", ctrl.NumGroups(),
		"interpolation_period", ctrl.InterpolationPeriod(),
		"status_every_cycles", ctrl.StatusEvery(),
		"io_endpoint", cfg.IO.Endpoint,
	)

	g, gctx := errgroup.WithContext(ctx)

	// ---- listener + broadcast task ----
	g.Go(func() error {
		return srv.Serve(gctx, ln)
	})

	// ---- status poller -> controller snapshot ----
	results := make(chan poller.PollResult)
	g.Go(func() error {
		p.Run(gctx, results)
		return nil
	})
	g.Go(func() error {
		applyStatus(gctx, results, ctrl, logger)
		return nil
	})

	// ---- metrics ----
	if cfg.Metrics.Listen != "" {
		g.Go(func() error {
			return serveMetrics(gctx, cfg.Metrics.Listen, logger)
		})
	}

	return g.Wait()
}

func serveMetrics(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	hs := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", "addr", addr)
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
