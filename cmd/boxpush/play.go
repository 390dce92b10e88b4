package main

import (
	"github.com/spf13/cobra"

	"github.com/plus3/boxpush/internal/host"
)

var (
	flagLevel   string
	flagFile    string
	flagDebugUI bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level",
	Long: `Open a window and play a level.

Controls:
  Arrows/WASD - Move and push
  R           - Restart the level
  Esc         - Quit

Examples:
  boxpush play
  boxpush play --level 02
  boxpush play --file ./levels/custom.txt
  boxpush play --debug-ui`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level id within the pack (default: first)")
	playCmd.Flags().StringVar(&flagFile, "file", "", "Raw level text or pack YAML file")
	playCmd.Flags().BoolVar(&flagDebugUI, "debug-ui", false, "Show the ImGui debug overlay")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}

	entry, err := resolveLevel(flagFile, flagLevel)
	if err != nil {
		return err
	}

	return host.Run(host.Options{
		Config:  cfg,
		Level:   entry,
		Logger:  logger,
		DebugUI: flagDebugUI,
	})
}
