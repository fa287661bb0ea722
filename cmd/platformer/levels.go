package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long: `Shows the built-in levels plus any in the user level directory.
A user level with the same ID as a built-in one replaces it.`,
	RunE: runLevels,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a level as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsShow,
}

func init() {
	levelsCmd.AddCommand(levelsShowCmd)
}

func runLevels(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	levels, err := a.levels.List()
	if err != nil {
		return err
	}
	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	maxIDLen := len("ID")
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-*s  %-20s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Name", "Size", "Coins", "Source")
	fmt.Printf("  %-*s  %-20s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "----", "-----", "------")
	for _, l := range levels {
		fmt.Printf("  %-*s  %-20s  %-7s  %-5d  %s\n",
			maxIDLen, l.ID, l.Title(),
			fmt.Sprintf("%dx%d", l.Width, l.Height),
			l.Count(level.TileCoin),
			l.Source,
		)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to play a level.")
	if dir := a.levels.Dir(); dir != "" {
		fmt.Printf("Custom levels are saved in %s\n", dir)
	}
	return nil
}

func runLevelsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	lvl, err := a.levels.Load(args[0])
	if err != nil {
		return err
	}
	data, err := level.Marshal(lvl)
	if err != nil {
		return err
	}
	fmt.Print(strings.TrimRight(string(data), "\n"))
	fmt.Println()
	return nil
}
