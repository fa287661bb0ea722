package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderCanvas converts a canvas to a styled string, one line per row.
// Runs of same-colored cells share one escape sequence.
func RenderCanvas(c *core.Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	var run strings.Builder
	for y := range c.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		x := 0
		for x < c.Width() {
			col := c.GetCell(x, y).Color
			run.Reset()
			for ; x < c.Width(); x++ {
				cell := c.GetCell(x, y)
				if cell.Color != col {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := colorStyles[col]
			if !ok || col == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Presenter turns finished canvases into strings for the Bubble Tea view.
//
// Rendering happens on the frame loop goroutine. Only the newest frame is
// kept: if the UI has not picked up the previous one it is replaced.
type Presenter struct {
	frames chan string
}

// NewPresenter creates a presenter.
func NewPresenter() *Presenter {
	return &Presenter{frames: make(chan string, 1)}
}

// Present renders c and queues it, dropping any frame still waiting.
func (p *Presenter) Present(c *core.Canvas) {
	frame := RenderCanvas(c)
	for {
		select {
		case p.frames <- frame:
			return
		default:
		}
		select {
		case <-p.frames:
		default:
		}
	}
}

// Frames returns the channel the UI reads frames from.
func (p *Presenter) Frames() <-chan string {
	return p.frames
}
