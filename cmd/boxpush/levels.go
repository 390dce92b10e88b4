package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plus3/boxpush/internal/sokoban"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of the pack",
	Long:  `Shows every level of the embedded pack, or of the pack under --levels.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	pack, err := loadPack()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if pack.Len() == 0 {
		fmt.Fprintln(out, "No levels available.")
		return nil
	}

	maxIDLen := 2 // "ID" header
	for _, id := range pack.IDs() {
		maxIDLen = max(maxIDLen, len(id))
	}

	fmt.Fprintf(out, "  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Size", "Boxes", "Name")
	fmt.Fprintf(out, "  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "----")

	for _, e := range pack.Entries() {
		size := fmt.Sprintf("%dx%d", e.Level.Width, e.Level.Height)
		boxes := e.Level.Count(sokoban.TokenRedBox) + e.Level.Count(sokoban.TokenBlueBox)
		fmt.Fprintf(out, "  %-*s  %-7s  %-5d  %s\n", maxIDLen, e.ID, size, boxes, e.Title())
	}
	return nil
}
