package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/clock"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/screen"
	"github.com/vovakirdan/tui-platformer/internal/screens"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the game",
	Long: `Open the level menu, or jump straight into a level by ID.

Controls:
  ←/→ A/D    - Run
  Space/↑    - Jump
  P/Esc      - Pause
  X          - Edit the selected level (menu)
  Ctrl+S     - Save (editor)
  ?          - Toggle help
  Ctrl+C     - Exit immediately

Timing profiles:
  smooth    - Uncapped draws, never sleeps
  balanced  - Draws at the update rate, sleeps when idle
  battery   - Draws at half the update rate, sleeps when idle

Examples:
  platformer play
  platformer play spikes
  platformer play --profile battery
  platformer play --ups 120 --fps 0 --power-saver=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	a, err := newApp(cmd, logFile)
	if err != nil {
		return err
	}
	defer a.close()

	var levelID string
	if len(args) == 1 {
		levelID = args[0]
		if _, err := a.levels.Load(levelID); err != nil {
			return fmt.Errorf("%w (run 'platformer levels' to see available levels)", err)
		}
	}

	// the help footer takes the bottom row
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	size := core.Size{W: width, H: height - 1}

	session := tui.NewSession(a.cfg.Game.HoldTicks)
	env := a.env(playerName())
	sched := a.newScheduler(env, size, clock.NewSystem(), session.Input, session.Presenter,
		func(menu *screens.Menu) []screen.Screen {
			if levelID == "" {
				return nil
			}
			return []screen.Screen{screens.NewLoading(env, levelID, menu)}
		})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tui.Run(ctx, sched, session)

	st := sched.Stats()
	a.logger.Info("session finished",
		"ticks", st.Ticks,
		"frames", st.Frames,
		"skipped", st.Skipped,
		"behind", st.Behind,
	)
	return err
}

// openLogFile opens the log file in the config directory. The terminal
// belongs to the game while it runs.
func openLogFile() (*os.File, error) {
	dir := config.Dir()
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	path := filepath.Join(dir, "platformer.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
