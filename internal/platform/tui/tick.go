// Package tui hosts the frame scheduler in a terminal through Bubble Tea,
// locally or over SSH. The scheduler runs on its own goroutine; Bubble Tea
// only forwards keys and window sizes to it and shows the frames it draws.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg carries a rendered frame to the view.
type FrameMsg string

// loopDoneMsg is sent once the frame loop has returned.
type loopDoneMsg struct{}

// waitFrame returns a command that delivers the next presented frame, or
// reports the loop as done once done is closed.
func waitFrame(frames <-chan string, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-frames:
			return FrameMsg(f)
		case <-done:
			return loopDoneMsg{}
		}
	}
}

// waitLoop returns a command that reports when done is closed.
func waitLoop(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return loopDoneMsg{}
	}
}
