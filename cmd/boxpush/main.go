// boxpush is a box-pushing puzzle game built on an archetype ECS.
//
// Usage:
//
//	boxpush play [--level id] [--file path]   - Play a level in a window
//	boxpush levels                            - List the levels of the pack
//	boxpush check <file>                      - Validate a level or pack file
//	boxpush replay --moves RRUL               - Apply moves headlessly and print the board
//	boxpush bench                             - Measure tick throughput
//
// Global flags:
//
//	--config <path>     - Config YAML (default: search ~/.boxpush, ./configs, embedded)
//	--levels <dir>      - Directory of level packs (default: embedded pack)
//	--log-level <level> - Override the configured log level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plus3/boxpush/internal/config"
)

var (
	// Global flags
	flagConfig    string
	flagLevelsDir string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boxpush",
	Short: "boxpush - push colored boxes onto matching spots",
	Long: `boxpush is a grid puzzle: push every box onto the spot of its color.

Available commands:
  play     - Play a level in a window
  levels   - Show the levels of the current pack
  check    - Validate a level or pack file
  replay   - Apply a move string without a window
  bench    - Measure simulation throughput

Examples:
  boxpush play
  boxpush play --level 03 --debug-ui
  boxpush check ./my-level.txt
  boxpush replay --level 01 --moves RR`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level pack YAML files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(benchCmd)
}

// loadSettings loads the config and builds the process logger.
func loadSettings() (config.Config, *log.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, nil, err
	}

	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
		if err := cfg.Validate(); err != nil {
			return cfg, nil, err
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "boxpush",
		Level:           cfg.Level(),
	})
	return cfg, logger, nil
}
