package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/clock"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
	"github.com/vovakirdan/tui-platformer/internal/screen"
	"github.com/vovakirdan/tui-platformer/internal/screens"
)

var (
	flagBenchDuration time.Duration
	flagBenchDrawCost time.Duration
	flagBenchWidth    int
	flagBenchHeight   int
)

var benchCmd = &cobra.Command{
	Use:   "bench [level]",
	Short: "Run the frame loop headless and report timings",
	Long: `Run a level without a terminal, with an autopilot holding right and
jumping at a steady rhythm, and print the frame loop counters.

--draw-cost adds a fixed delay to every draw to simulate a slow terminal;
use it to watch the loop fall behind and, with --skip-backlog, drop ticks.

Examples:
  platformer bench
  platformer bench gaps --duration 10s --profile smooth
  platformer bench --draw-cost 40ms --skip-backlog`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().DurationVar(&flagBenchDuration, "duration", 3*time.Second, "How long to run")
	benchCmd.Flags().DurationVar(&flagBenchDrawCost, "draw-cost", 0, "Extra time spent in every draw")
	benchCmd.Flags().IntVar(&flagBenchWidth, "width", 80, "Viewport width")
	benchCmd.Flags().IntVar(&flagBenchHeight, "height", 24, "Viewport height")
}

// autopilot holds right and taps jump every period updates.
type autopilot struct {
	n      int
	period int
}

func (p *autopilot) Poll() core.InputFrame {
	p.n++
	in := core.NewInputFrame()
	in.Hold(core.ActionRight)
	if p.n%p.period == 0 {
		in.Press(core.ActionJump)
	}
	return in
}

// slowPresenter renders every frame and then waits cost.
type slowPresenter struct {
	cost  time.Duration
	bytes int
}

func (p *slowPresenter) Present(c *core.Canvas) {
	p.bytes += len(tui.RenderCanvas(c))
	if p.cost > 0 {
		time.Sleep(p.cost)
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	levelID := "intro"
	if len(args) == 1 {
		levelID = args[0]
	}
	if _, err := a.levels.Load(levelID); err != nil {
		return err
	}

	env := a.env("bench")
	env.Runs = nil

	pres := &slowPresenter{cost: flagBenchDrawCost}
	size := core.Size{W: flagBenchWidth, H: flagBenchHeight}
	sched := a.newScheduler(env, size, clock.NewSystem(), &autopilot{period: 45}, pres,
		func(menu *screens.Menu) []screen.Screen {
			return []screen.Screen{screens.NewLoading(env, levelID, menu)}
		})

	ctx, cancel := context.WithTimeout(context.Background(), flagBenchDuration)
	defer cancel()

	start := time.Now()
	if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	elapsed := time.Since(start)

	st := sched.Stats()
	tick := sched.UpdatePeriod()
	fmt.Printf("Level            %s\n", levelID)
	fmt.Printf("Wall time        %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("Update period    %s (%d/s)\n", tick, uint(time.Second/tick))
	if p := sched.DrawPeriod(); p > 0 {
		fmt.Printf("Draw period      %s\n", p)
	} else {
		fmt.Println("Draw period      uncapped")
	}
	fmt.Printf("Power saver      %v\n", sched.PowerSaver())
	fmt.Println()
	fmt.Printf("Updates          %d (%.1f/s measured)\n", st.Ticks, st.UpdatesPerSecond)
	fmt.Printf("Skipped          %d\n", st.Skipped)
	fmt.Printf("Game time        %s\n", platformer.FormatTicks(int(st.Ticks+st.Skipped), tick))
	fmt.Printf("Frames           %d (%.1f/s measured)\n", st.Frames, st.DrawsPerSecond)
	fmt.Printf("Frame time       %s\n", st.FrameTime)
	fmt.Printf("Fell behind      %d times\n", st.Behind)
	fmt.Printf("Output           %d bytes\n", pres.bytes)
	return nil
}

// formatDuration renders d as m:ss.cc.
func formatDuration(d time.Duration) string {
	return platformer.FormatTicks(int(d/time.Millisecond), time.Millisecond)
}
