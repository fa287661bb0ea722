package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best times",
	Long: `Browse the best runs of every level. When stdout is not a terminal,
or a level is given, the top runs are printed as text instead.

Examples:
  platformer scores
  platformer scores intro
  platformer scores gaps --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to print")
}

func runScores(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	if a.store == nil {
		return errors.New("run database is not available")
	}

	fd := int(os.Stdout.Fd())
	if len(args) == 0 && term.IsTerminal(fd) {
		levels, err := a.levels.List()
		if err != nil {
			return err
		}
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		return tui.RunScoreboard(levels, a.store, width, height)
	}

	levels, err := a.levels.List()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		lvl, err := a.levels.Load(args[0])
		if err != nil {
			return err
		}
		levels = []level.Level{lvl}
	}

	for i, lvl := range levels {
		if i > 0 {
			fmt.Println()
		}
		runs, err := a.store.BestRuns(lvl.ID, flagScoresLimit)
		if err != nil {
			return fmt.Errorf("reading runs for %s: %w", lvl.ID, err)
		}

		fmt.Printf("Best times - %s\n", lvl.Title())
		if len(runs) == 0 {
			fmt.Println("  No runs recorded yet.")
			continue
		}
		fmt.Printf("  %-4s  %-14s  %-9s  %-5s  %-6s  %s\n", "Rank", "Player", "Time", "Coins", "Deaths", "Date")
		for j, r := range runs {
			fmt.Printf("  %-4d  %-14s  %-9s  %-5d  %-6d  %s\n",
				j+1, r.Player, formatDuration(r.Duration()), r.Coins, r.Deaths,
				r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}
	return nil
}
