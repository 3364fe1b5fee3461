package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atikulmunna/chatlens/internal/aggregator"
	"github.com/atikulmunna/chatlens/internal/analyzer"
	"github.com/atikulmunna/chatlens/internal/hub"
	"github.com/atikulmunna/chatlens/internal/ingest"
	"github.com/atikulmunna/chatlens/internal/model"
	"github.com/atikulmunna/chatlens/internal/output"
	"github.com/atikulmunna/chatlens/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [patterns...]",
	Short: "Re-analyze chat exports whenever they change",
	Long: `Watch one or more chat exports (or glob patterns) and print a fresh
report each time a file is written or replaced.

Examples:
  chatlens watch chat.txt
  chatlens watch "exports/**/*.txt" --output json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w, err := watcher.New(args, cfg.Debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	watched := w.Paths()
	if len(watched) == 0 {
		return fmt.Errorf("no files matched the given patterns: %v", args)
	}

	fmt.Fprintf(os.Stderr, "chatlens watching %d file(s):\n", len(watched))
	for _, p := range watched {
		fmt.Fprintf(os.Stderr, "   • %s\n", p)
	}
	fmt.Fprintln(os.Stderr)

	reader := ingest.New(cfg.MaxUploadBytes, logger)
	input := make(chan model.Upload, 16)
	h := hub.New(input, analyzer.New(nil), cfg.Top, logger)
	agg := aggregator.New(h.Subscribe(), h.Dropped, w.Count)
	reports := h.Subscribe()
	renderer := output.New(cfg.Output, os.Stdout)

	go w.Start(ctx)
	go h.Start(ctx)
	go agg.Start(ctx)

	// Feed changed files into the hub; closing input stops the hub.
	go func() {
		defer close(input)
		for path := range w.Changes() {
			up, err := reader.LoadFile(localOwner, path)
			if err != nil {
				logger.Warn("skipping export", zap.String("path", path), zap.Error(err))
				continue
			}
			select {
			case input <- up:
			case <-ctx.Done():
				return
			}
		}
	}()

	for r := range reports {
		if err := renderer.Render(r); err != nil {
			logger.Error("render failed", zap.String("source", r.Source), zap.Error(err))
		}
	}

	stats := agg.Snapshot()
	fmt.Fprintf(os.Stderr, "\nchatlens stopped after %s: %d analyses, %d messages\n",
		stats.Uptime, stats.Analyses, stats.MessagesAnalyzed)
	return nil
}
