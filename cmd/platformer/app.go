package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/clock"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/loop"
	"github.com/vovakirdan/tui-platformer/internal/screen"
	"github.com/vovakirdan/tui-platformer/internal/screens"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Loop flags, shared by every command that runs a scheduler.
var (
	flagUPS         uint
	flagFPS         uint
	flagPowerSaver  bool
	flagProfile     string
	flagSkipBacklog bool
)

func addLoopFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.UintVar(&flagUPS, "ups", 60, "Fixed updates per second")
	f.UintVar(&flagFPS, "fps", 60, "Draws per second (0 = uncapped)")
	f.BoolVar(&flagPowerSaver, "power-saver", true, "Sleep when neither an update nor a draw is due")
	f.StringVar(&flagProfile, "profile", "", "Timing profile: smooth, balanced, battery")
	f.BoolVar(&flagSkipBacklog, "skip-backlog", false, "Drop update backlog in levels instead of catching up")
}

// app holds what every command shares: configuration, logging, levels and
// the run database.
type app struct {
	cfg    config.Config
	logger *log.Logger
	levels *level.Loader
	store  *storage.Store // nil when the database could not be opened
}

// newApp loads configuration and applies command line overrides. Only
// flags the user actually set override the config file.
func newApp(cmd *cobra.Command, logOut io.Writer) (*app, error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "platformer",
		Level:           lvl,
	})

	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("profile") {
		p, err := config.ParseProfile(flagProfile)
		if err != nil {
			return nil, err
		}
		config.ApplyProfile(&cfg, p)
	}
	if flags.Changed("ups") {
		cfg.Loop.UpdatesPerSecond = flagUPS
	}
	if flags.Changed("fps") {
		cfg.Loop.DrawsPerSecond = flagFPS
	}
	if flags.Changed("power-saver") {
		cfg.Loop.PowerSaver = flagPowerSaver
	}
	if flags.Changed("skip-backlog") {
		cfg.Game.SkipBacklog = flagSkipBacklog
	}

	dir := flagLevelsDir
	if dir == "" {
		if base := config.Dir(); base != "" {
			dir = filepath.Join(base, "levels")
		}
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		levels: level.NewLoader(dir),
	}

	if flagDBPath != "" {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("run records disabled", "err", err)
		} else {
			a.store = store
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("closing run database", "err", err)
		}
	}
}

// env builds the screen environment for one player. The navigator is set
// by newScheduler.
func (a *app) env(player string) *screens.Env {
	env := &screens.Env{
		Levels:      a.levels,
		Physics:     a.cfg.Physics,
		SkipBacklog: a.cfg.Game.SkipBacklog,
		Player:      player,
		Logger:      a.logger.With("player", player),
	}
	if a.store != nil {
		env.Runs = a.store
	}
	return env
}

// newScheduler creates a frame loop for player. The first screen is the
// level menu; extra screens returned by top are stacked on it.
func (a *app) newScheduler(
	env *screens.Env,
	size core.Size,
	clk clock.Clock,
	in loop.InputSource,
	pres loop.Presenter,
	top func(menu *screens.Menu) []screen.Screen,
) *loop.Scheduler {
	menu := screens.NewMenu(env)
	initial := []screen.Screen{menu}
	if top != nil {
		initial = append(initial, top(menu)...)
	}

	opts := []loop.Option{
		loop.WithLogger(env.Logger),
		loop.WithInitial(initial...),
	}
	if pres != nil {
		opts = append(opts, loop.WithPresenter(pres))
	}

	sched := loop.New(a.cfg.Loop.Scheduler(size), clk, in, opts...)
	env.Nav = sched
	env.TickRate = uint(time.Second / sched.UpdatePeriod())
	return sched
}

// playerName returns the local user name for run records.
func playerName() string {
	for _, k := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return "player"
}
