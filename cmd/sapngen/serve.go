package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/still-asking/sapn-generator/internal/allocation"
	"github.com/still-asking/sapn-generator/internal/parts"
	"github.com/still-asking/sapn-generator/internal/server"
	"github.com/still-asking/sapn-generator/internal/trigger"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context())
		},
	}
}

func (c *cli) serve(parent context.Context) error {
	cfg := c.cfg

	// 1. Storage
	store, err := openStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	// 2. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := allocation.NewMetrics(registry)

	// 3. Allocation and trigger
	allocator := allocation.NewAllocator(store, metrics)
	allocationSvc := allocation.NewService(allocator, metrics)
	dispatcher := trigger.NewDispatcher(store, allocationSvc, trigger.Settings{
		Active:   cfg.Plugin.Active,
		OnCreate: cfg.Plugin.OnCreate,
		OnChange: cfg.Plugin.OnChange,
	})
	slog.Info("Trigger initialized",
		"active", cfg.Plugin.Active,
		"on_create", cfg.Plugin.OnCreate,
		"on_change", cfg.Plugin.OnChange)

	// 4. HTTP
	srv := server.New(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), store, registry, cfg.Server.Mode)
	parts.NewService(store, dispatcher, allocationSvc, allocationSvc).RegisterRoutes(srv.Engine)
	trigger.NewHandler(dispatcher).RegisterRoutes(srv.Engine)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	slog.Info("Shutdown complete")
	return nil
}
