package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-stretch/internal/config"
	"github.com/cwbudde/algo-stretch/internal/logging"
)

var (
	cfg          *config.Config
	logger       *zap.Logger
	cfgFile      string
	verboseLevel int
)

var rootCmd = &cobra.Command{
	Use:   "stretchpedal",
	Short: "Granular time-stretch pedal",
	Long: `stretchpedal records up to 16 seconds of mono audio and resynthesizes
it with randomized spectral phases, stretched in time by a fixed factor.

It can render WAV files offline, run live against the default audio output,
or run headless with an HTTP control surface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = logging.New(logging.Options{
			Verbose:    verboseLevel,
			JSON:       cfg.Log.JSON,
			File:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); defaults and STRETCHPEDAL_* environment when empty")
	rootCmd.PersistentFlags().IntVarP(&verboseLevel, "verbose", "v", 0, "verbose level: 0=info, 1=debug, 2=debug with caller")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tablesCmd)
}
