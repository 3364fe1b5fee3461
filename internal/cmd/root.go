package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/atikulmunna/chatlens/internal/config"
	"github.com/atikulmunna/chatlens/internal/logging"
)

// localOwner owns reports produced from the command line.
const localOwner = "local"

var (
	cfgFile string
	cfg     config.Config
	logger  = zap.NewNop()
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "chatlens",
	Short: "chatlens: statistics for plain-text chat exports",
	Long: `chatlens reads plain-text chat exports and reports message counts,
link and attachment usage, edited messages, emoji and word frequency and a
keyword-based sentiment score per message. Use it from the terminal or serve
the web dashboard.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.chatlens.yaml)")
	flags.StringP("output", "o", "text", "output format: text, json")
	flags.Int("top", 10, "number of words and emojis to rank")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Bool("log-json", false, "emit logs as JSON")

	cobra.CheckErr(viper.BindPFlag("output", flags.Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("top", flags.Lookup("top")))
	cobra.CheckErr(viper.BindPFlag("log_level", flags.Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log_json", flags.Lookup("log-json")))
}

func initConfig() {
	cobra.CheckErr(config.Init(viper.GetViper(), cfgFile))
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	cfg = c

	l, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}
	logger = l
	return nil
}
