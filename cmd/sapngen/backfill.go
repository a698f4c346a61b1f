package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/still-asking/sapn-generator/internal/allocation"
	"github.com/still-asking/sapn-generator/internal/backfill"
)

func newBackfillCmd(c *cli) *cobra.Command {
	var workers, batchSize int

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Assign identifiers to every part that has none",
		Long: "backfill walks all parts without an identifier in id order and " +
			"assigns one wherever the part's SA_CCC and SA_SS parameters are valid. " +
			"It ignores the trigger settings.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := backfill.Options{
				WorkerCount: c.cfg.Backfill.WorkerCount,
				BatchSize:   c.cfg.Backfill.BatchSize,
				LockFile:    c.cfg.Backfill.LockFile,
			}
			if cmd.Flags().Changed("workers") {
				opts.WorkerCount = workers
			}
			if cmd.Flags().Changed("batch-size") {
				opts.BatchSize = batchSize
			}
			return c.backfill(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent allocations (overrides backfill.worker_count)")
	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0, "parts fetched per page (overrides backfill.batch_size)")
	return cmd
}

func (c *cli) backfill(parent context.Context, w io.Writer, opts backfill.Options) error {
	store, err := openStore(c.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := allocation.NewService(allocation.NewAllocator(store, nil), nil)
	summary, err := backfill.NewRunner(store, svc, opts).Run(ctx)
	if err != nil {
		return err
	}

	if err := render(w, c.format, summary, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "scanned %d, assigned %d, skipped %d, failed %d in %s\n",
			summary.Scanned, summary.Assigned, summary.Skipped, summary.Failed, summary.Duration)
		return err
	}); err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d parts could not be assigned an identifier", summary.Failed)
	}
	return nil
}
