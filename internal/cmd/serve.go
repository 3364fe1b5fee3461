package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/chatlens/internal/aggregator"
	"github.com/atikulmunna/chatlens/internal/analyzer"
	"github.com/atikulmunna/chatlens/internal/hub"
	"github.com/atikulmunna/chatlens/internal/ingest"
	"github.com/atikulmunna/chatlens/internal/server"
	"github.com/atikulmunna/chatlens/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web dashboard",
	Long: `Serve the chatlens dashboard. Users sign in (any password meeting the
strength rule is accepted), upload a chat export and browse the results.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "8080", "port to listen on")
	cobra.CheckErr(viper.BindPFlag("port", serveCmd.Flags().Lookup("port")))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// No input channel: the dashboard publishes uploads directly. Start
	// still runs so subscribers are closed on shutdown.
	h := hub.New(nil, analyzer.New(nil), cfg.Top, logger)
	go h.Start(ctx)

	srv := server.New(cfg.Port, server.Deps{
		Hub:        h,
		Aggregator: aggregator.New(nil, h.Dropped, nil),
		Sessions:   session.NewStore(logger),
		Reader:     ingest.New(cfg.MaxUploadBytes, logger),
		Log:        logger,
	})
	return srv.Start(ctx)
}
