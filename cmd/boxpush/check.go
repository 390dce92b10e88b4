package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/plus3/boxpush/internal/levels"
	"github.com/plus3/boxpush/internal/sokoban"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a level or pack file",
	Long: `Parse a raw level text file or a pack YAML file and report what each
level would spawn. The first bad token is reported with its row and column.

Examples:
  boxpush check ./levels/custom.txt
  boxpush check ./packs/extra.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	var entries []levels.Entry
	if isPackFile(path) {
		loaded, err := levels.LoadFile(path)
		if err != nil {
			return err
		}
		if _, err := levels.NewPack(loaded); err != nil {
			return err
		}
		entries = loaded
	} else {
		entry, err := loadRawLevel(path)
		if err != nil {
			return err
		}
		entries = []levels.Entry{entry}
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		reportLevel(out, e)
	}
	return nil
}

// reportLevel prints entity counts for a level and flags color imbalances,
// which make a level unwinnable.
func reportLevel(out io.Writer, e levels.Entry) {
	l := e.Level
	cells := len(l.Cells) - l.Count(sokoban.TokenVoid)
	redBoxes, blueBoxes := l.Count(sokoban.TokenRedBox), l.Count(sokoban.TokenBlueBox)
	redSpots, blueSpots := l.Count(sokoban.TokenRedSpot), l.Count(sokoban.TokenBlueSpot)
	features := l.Count(sokoban.TokenWall) + l.Count(sokoban.TokenPlayer) + redBoxes + blueBoxes + redSpots + blueSpots

	fmt.Fprintf(out, "ok  %s  %dx%d  walls=%d players=%d boxes=%d spots=%d entities=%d\n",
		e.ID, l.Width, l.Height,
		l.Count(sokoban.TokenWall), l.Count(sokoban.TokenPlayer),
		redBoxes+blueBoxes, redSpots+blueSpots, cells+features)

	if l.Count(sokoban.TokenPlayer) == 0 {
		fmt.Fprintf(out, "    warning: no player\n")
	}
	if redBoxes < redSpots {
		fmt.Fprintf(out, "    warning: %d red boxes for %d red spots\n", redBoxes, redSpots)
	}
	if blueBoxes < blueSpots {
		fmt.Fprintf(out, "    warning: %d blue boxes for %d blue spots\n", blueBoxes, blueSpots)
	}
}
