// Package screens implements the platformer's application screens: menu,
// loading, play, pause, results, level editor and best times.
//
// Screens talk to each other only through the Navigator in Env; every
// transition is a request that the frame loop applies between frames.
package screens

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/screen"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Levels is the level source used by the menu, loading and editor screens.
type Levels interface {
	List() ([]level.Level, error)
	Load(id string) (level.Level, error)
	Save(lvl level.Level) (string, error)
}

// Runs records and queries completed runs.
type Runs interface {
	SaveRun(r storage.Run) (int64, error)
	BestRuns(levelID string, limit int) ([]storage.Run, error)
	PlayerBest(levelID, player string) (*storage.Run, error)
}

// Env carries what screens share.
type Env struct {
	Nav     screen.Navigator
	Levels  Levels
	Runs    Runs // nil disables run records
	Physics config.PhysicsConfig

	// TickRate is the scheduler's updates per second, used to turn ticks
	// into times.
	TickRate uint

	// SkipBacklog lets the play screen drop update backlogs instead of
	// catching up.
	SkipBacklog bool

	Player string
	Logger *log.Logger
}

func (e *Env) logger() *log.Logger {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	return e.Logger
}

// tick returns the length of one update.
func (e *Env) tick() time.Duration {
	rate := e.TickRate
	if rate == 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}
