package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atikulmunna/chatlens/internal/analyzer"
	"github.com/atikulmunna/chatlens/internal/hub"
	"github.com/atikulmunna/chatlens/internal/ingest"
	"github.com/atikulmunna/chatlens/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze one or more chat exports",
	Long: `Analyze plain-text chat exports and print a report for each.
Every non-blank line counts as one message. Use "-" to read from stdin.

Examples:
  chatlens analyze chat.txt
  chatlens analyze a.txt b.txt --output json
  cat chat.txt | chatlens analyze -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	reader := ingest.New(cfg.MaxUploadBytes, logger)
	h := hub.New(nil, analyzer.New(nil), cfg.Top, logger)
	renderer := output.New(cfg.Output, os.Stdout)

	failed := 0
	for _, path := range args {
		up, err := reader.LoadFile(localOwner, path)
		if err != nil {
			logger.Error("cannot load export", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}
		if err := renderer.Render(h.Publish(up)); err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d exports could not be analyzed", failed, len(args))
	}
	return nil
}
