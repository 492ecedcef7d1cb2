package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	cable "github.com/tphakala/go-audio-cable"
	"github.com/tphakala/go-audio-cable/platform"
)

const shutdownTimeout = 5 * time.Second

func runCable(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger.Infof("Virtual Audio Cable v%s", version)
	logConfig(cfg)

	c, err := cable.New(cfg,
		cable.WithLogger(logger),
		cable.WithPlatform(platform.NewMemory(nil, nil)),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Start(ctx); err != nil {
		return err
	}

	var monitorDone <-chan struct{}
	if monitor {
		monitorDone = c.Monitor(ctx, cable.DefaultMonitorInterval, func(s cable.Stats) {
			logger.Infof("Stats: %s", formatStats(s))
		})
	}

	var server *http.Server
	if metricsAddr != "" {
		server = serveMetrics(c, metricsAddr)
	}

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("metrics server shutdown")
		}
	}
	if monitorDone != nil {
		<-monitorDone
	}
	return c.Close(shutdownCtx)
}

func serveMetrics(c *cable.Cable, addr string) *http.Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(cable.NewCollector(c))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: shutdownTimeout}

	go func() {
		logger.Infof("serving metrics at %s/metrics", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("metrics server")
		}
	}()
	return server
}
