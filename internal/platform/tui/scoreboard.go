package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const maxRuns = 100

// RunSource is the run history the scoreboard reads.
type RunSource interface {
	BestRuns(levelID string, limit int) ([]storage.Run, error)
	LevelStats(levelID string) (*storage.LevelStats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Left, k.Right, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "prev level"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next level"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel browses the best runs of each level.
type ScoreboardModel struct {
	levels []level.Level
	cursor int
	runs   RunSource
	rows   []storage.Run
	stats  *storage.LevelStats
	err    error

	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard over levels.
func NewScoreboardModel(levels []level.Level, runs RunSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		levels: levels,
		runs:   runs,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	if len(levels) > 0 {
		m.load()
	}
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 14},
		{Title: "Time", Width: 9},
		{Title: "Coins", Width: 6},
		{Title: "Deaths", Width: 7},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the current level's runs and refreshes the table.
func (m *ScoreboardModel) load() {
	m.rows, m.stats, m.err = nil, nil, nil
	if m.runs != nil {
		id := m.levels[m.cursor].ID
		m.rows, m.err = m.runs.BestRuns(id, maxRuns)
		if m.err == nil {
			m.stats, m.err = m.runs.LevelStats(id)
		}
	}

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Player,
			formatRunTime(r),
			fmt.Sprintf("%d", r.Coins),
			fmt.Sprintf("%d", r.Deaths),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatRunTime(r storage.Run) string {
	return platformer.FormatTicks(int(r.Duration()/time.Millisecond), time.Millisecond)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Right):
			if n := len(m.levels); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Left):
			if n := len(m.levels); n > 0 {
				m.cursor = (m.cursor + n - 1) % n
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(3, m.height-9))
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	if len(m.levels) == 0 {
		b.WriteString(titleStyle.Render("BEST TIMES"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("No levels found."))
		return b.String()
	}

	lvl := m.levels[m.cursor]
	b.WriteString(titleStyle.Render(fmt.Sprintf("BEST TIMES - %s", lvl.Title())))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d/%d)", m.cursor+1, len(m.levels))))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()))
	case len(m.rows) == 0:
		b.WriteString(boxStyle.Render(dimStyle.Italic(true).Render("No runs recorded yet.")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
		if m.stats != nil {
			b.WriteString("\n")
			b.WriteString(dimStyle.Render(fmt.Sprintf("%d runs • avg coins %.1f • last played %s",
				m.stats.Runs, m.stats.AvgCoins, m.stats.LastPlayed.Format("Jan 02 15:04"))))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunScoreboard shows the scoreboard until the user quits.
func RunScoreboard(levels []level.Level, runs RunSource, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(levels, runs, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
