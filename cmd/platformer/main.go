// platformer is a terminal platformer with a fixed-timestep frame loop.
//
// Usage:
//
//	platformer                 - Open the level menu
//	platformer play [level]    - Play, optionally jumping straight into a level
//	platformer levels          - List levels
//	platformer scores          - Browse best times
//	platformer serve           - Start SSH server for remote play
//	platformer bench [level]   - Run the frame loop headless and report timings
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.platformer/configs/platformer.yaml)
//	--db <path>       - Run database (default: ~/.platformer/runs.db)
//	--levels <dir>    - User level directory (default: ~/.platformer/levels)
//	--log-level <lvl> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfigPath string
	flagDBPath     string
	flagLevelsDir  string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "TUI Platformer - run, jump and collect coins in your terminal",
	Long: `TUI Platformer is a terminal platformer. The simulation runs at a
fixed update rate while drawing follows its own cadence, so the game plays
the same on a fast desktop and over a slow SSH link.

Available commands:
  play     - Open the level menu (default)
  levels   - Show all levels
  scores   - Browse best times
  serve    - Start SSH server for remote play
  bench    - Run the frame loop without a terminal

Examples:
  platformer
  platformer play intro --profile smooth
  platformer play --ups 120 --fps 0
  platformer serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/runs.db", "Path to run database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "User level directory (default ~/.platformer/levels)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addLoopFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(benchCmd)
}
