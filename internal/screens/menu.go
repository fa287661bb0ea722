package screens

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/screen"
)

type menuItemKind int

const (
	itemLevel menuItemKind = iota
	itemNewLevel
	itemScores
	itemQuit
)

type menuItem struct {
	kind  menuItemKind
	label string
	level level.Level
}

// Menu is the root screen: level selection plus editor, best times and quit.
type Menu struct {
	screen.Base
	env *Env

	items   []menuItem
	cursor  int
	message string
	in      core.InputFrame
}

// NewMenu creates the main menu.
func NewMenu(env *Env) *Menu {
	return &Menu{env: env}
}

// SkipsUpdates lets the loop drop backlog; the menu has no simulation.
func (m *Menu) SkipsUpdates() bool { return true }

func (m *Menu) OnEnter() {
	m.env.logger().Debug("screen entered", "screen", "menu")
	m.reload()
}

func (m *Menu) Resume() {
	m.reload()
}

// SetMessage shows a one-line notice under the title.
func (m *Menu) SetMessage(msg string) {
	m.message = msg
}

// Message returns the current notice.
func (m *Menu) Message() string {
	return m.message
}

// reload refreshes the level list, keeping the cursor on the same entry
// when possible.
func (m *Menu) reload() {
	levels, err := m.env.Levels.List()
	if err != nil {
		m.env.logger().Error("listing levels", "err", err)
		m.message = "Could not list levels: " + err.Error()
	}

	items := make([]menuItem, 0, len(levels)+3)
	for _, lvl := range levels {
		items = append(items, menuItem{kind: itemLevel, label: lvl.Title(), level: lvl})
	}
	items = append(items, menuItem{kind: itemNewLevel, label: "New level"})
	if m.env.Runs != nil {
		items = append(items, menuItem{kind: itemScores, label: "Best times"})
	}
	items = append(items, menuItem{kind: itemQuit, label: "Quit"})

	m.items = items
	m.cursor = core.Clamp(m.cursor, 0, len(items)-1)
}

func (m *Menu) HandleInput(in core.InputFrame) {
	m.in = in
}

func (m *Menu) Update(time.Duration) {
	in := m.in
	m.in = core.InputFrame{}

	m.cursor = moveCursor(in, m.cursor, len(m.items))

	if in.IsPressed(core.ActionQuit) || in.IsPressed(core.ActionBack) {
		m.env.Nav.RequestPop(1)
		return
	}

	item := m.items[m.cursor]

	if in.IsPressed(core.ActionPlace) && item.kind == itemLevel {
		m.env.Nav.RequestPush(NewEditor(m.env, item.level))
		return
	}

	if !in.IsPressed(core.ActionConfirm) && !in.IsPressed(core.ActionJump) {
		return
	}

	m.message = ""
	switch item.kind {
	case itemLevel:
		m.env.Nav.RequestPush(NewLoading(m.env, item.level.ID, m))
	case itemNewLevel:
		m.env.Nav.RequestPush(NewEditor(m.env, level.New(m.newLevelID(), "Custom", 60, 14)))
	case itemScores:
		m.env.Nav.RequestPush(NewScores(m.env))
	case itemQuit:
		m.env.Nav.RequestPop(1)
	}
}

// newLevelID picks the first free custom-N id.
func (m *Menu) newLevelID() string {
	taken := make(map[string]bool, len(m.items))
	for _, it := range m.items {
		taken[it.level.ID] = true
	}
	for n := 1; ; n++ {
		id := fmt.Sprintf("custom-%d", n)
		if !taken[id] {
			return id
		}
	}
}

func (m *Menu) Draw(dst *core.Canvas, _ float64) {
	dst.DrawTextCentered(1, "T U I   P L A T F O R M E R", core.ColorBrightCyan)
	if m.message != "" {
		dst.DrawTextCentered(3, m.message, core.ColorOrange)
	}

	labels := make([]string, len(m.items))
	for i, it := range m.items {
		labels[i] = it.label
	}
	drawList(dst, (dst.Width()-24)/2, 5, labels, m.cursor)

	drawFooter(dst, "↑/↓ select • enter play • x edit level • q quit")
}
