package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/loop"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Session bundles what one terminal needs to drive a scheduler: the input
// collector it polls and the presenter it draws into.
type Session struct {
	Input     *Input
	Presenter *Presenter
}

// NewSession creates a session with the given key hold window.
func NewSession(holdTicks int) *Session {
	return &Session{
		Input:     NewInput(holdTicks),
		Presenter: NewPresenter(),
	}
}

// Start runs sched on its own goroutine. The returned channel is closed
// once the loop has stopped; the loop's error is stored in *err first.
func (s *Session) Start(ctx context.Context, sched *loop.Scheduler, err *error) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		e := sched.Run(ctx)
		if err != nil {
			*err = e
		}
	}()
	return done
}

// Model is the Bubble Tea side of a session.
type Model struct {
	keys     KeyMap
	help     help.Model
	session  *Session
	loopDone <-chan struct{}

	frame    string
	width    int
	height   int
	quitting bool
}

// NewModel creates the view for a running session. loopDone is closed when
// the frame loop stops, which ends the program.
func NewModel(s *Session, loopDone <-chan struct{}) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		keys:     DefaultKeyMap(),
		help:     h,
		session:  s,
		loopDone: loopDone,
	}
}

// Init starts listening for frames and for the loop to end.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitFrame(m.session.Presenter.Frames(), m.loopDone),
		waitLoop(m.loopDone),
	)
}

// Update handles messages and forwards input to the frame loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			if m.height > 0 {
				m.session.Input.Resize(m.viewport())
			}
			return m, nil
		}
		m.session.Input.Press(m.keys.Action(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.session.Input.Resize(m.viewport())
		return m, nil

	case tea.BlurMsg:
		m.session.Input.Release()
		return m, nil

	case FrameMsg:
		m.frame = string(msg)
		return m, waitFrame(m.session.Presenter.Frames(), m.loopDone)

	case loopDoneMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// helpHeight returns the rows taken by the help footer.
func (m Model) helpHeight() int {
	if m.help.ShowAll {
		h := 0
		for _, col := range m.keys.FullHelp() {
			h = max(h, len(col))
		}
		return h
	}
	return 1
}

// viewport returns the canvas size for the terminal, leaving room for the
// help footer.
func (m Model) viewport() core.Size {
	return core.Size{W: m.width, H: max(1, m.height-m.helpHeight())}
}

// View renders the latest frame plus the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run hosts sched in the local terminal until the loop stops or the user
// force-quits.
func Run(ctx context.Context, sched *loop.Scheduler, s *Session, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var loopErr error
	done := s.Start(ctx, sched, &loopErr)

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(s, done), opts...)
	_, err := p.Run()

	cancel()
	<-done

	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		err = nil
	}
	if errors.Is(loopErr, context.Canceled) {
		loopErr = nil
	}
	return errors.Join(err, loopErr)
}
