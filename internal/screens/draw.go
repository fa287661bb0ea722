package screens

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// drawMessageBox draws a framed box in the centre of the canvas with one
// line of text per entry.
func drawMessageBox(dst *core.Canvas, title string, lines []string, col core.Color) core.Rect {
	w := len([]rune(title))
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	boxW := w + 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, col)
	dst.DrawTextColor(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title, col)
	for i, l := range lines {
		dst.DrawText(box.X+2, box.Y+3+i, l)
	}
	return box
}

// drawList draws items starting at row y, marking the selected one.
func drawList(dst *core.Canvas, x, y int, items []string, selected int) {
	for i, item := range items {
		if i == selected {
			dst.DrawTextColor(x, y+i, "▶ "+item, core.ColorBrightYellow)
		} else {
			dst.DrawText(x, y+i, "  "+item)
		}
	}
}

// drawFooter writes a help line on the bottom row.
func drawFooter(dst *core.Canvas, text string) {
	dst.DrawTextColor(1, dst.Height()-1, text, core.ColorGray)
}

// moveCursor applies up/down presses to a list cursor, wrapping around.
func moveCursor(in core.InputFrame, cursor, n int) int {
	if n == 0 {
		return 0
	}
	if in.IsPressed(core.ActionUp) {
		cursor--
	}
	if in.IsPressed(core.ActionDown) {
		cursor++
	}
	return (cursor%n + n) % n
}
