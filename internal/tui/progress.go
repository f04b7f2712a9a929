package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecosim/trophic/internal/sweep"
)

// ErrAborted is reported by [Model.Err] when the user quits the live
// view before the sweep completes.
var ErrAborted = errors.New("sweep aborted by user")

const barWidth = 40

// progressMsg wraps a sweep progress event for the bubbletea loop.
type progressMsg sweep.Progress

// doneMsg signals that the sweep finished (possibly with an error).
type doneMsg struct{ err error }

// Model is a live sweep progress view. It consumes progress events from
// the orchestrator and quits when the sweep completes.
type Model struct {
	name     string
	events   <-chan sweep.Progress
	done     <-chan error
	cancel   func()
	total    int
	finished int
	lastQ    float64
	perChunk map[int]int
	err      error
}

// NewModel builds a live view. cancel is invoked when the user aborts,
// so the orchestrator's context unwinds the running workers.
func NewModel(name string, events <-chan sweep.Progress, done <-chan error, cancel func()) Model {
	return Model{
		name:     name,
		events:   events,
		done:     done,
		cancel:   cancel,
		perChunk: make(map[int]int),
	}
}

func (m Model) Init() tea.Cmd { return m.wait() }

func (m Model) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case p, ok := <-m.events:
			if ok {
				return progressMsg(p)
			}
			return doneMsg{err: <-m.done}
		case err := <-m.done:
			return doneMsg{err: err}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.finished = msg.Done
		m.total = msg.Total
		m.lastQ = msg.Q
		m.perChunk[msg.Chunk]++
		return m, m.wait()
	case doneMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			m.err = ErrAborted
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(Title.Render(fmt.Sprintf("%s sweep", m.name)))
	b.WriteString("\n\n")

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.finished) / float64(m.total)
	}
	filled := int(frac * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	b.WriteString(fmt.Sprintf("%s %s\n", Running.Render(bar),
		Value.Render(fmt.Sprintf("%d/%d", m.finished, m.total))))
	b.WriteString(Dim.Render(fmt.Sprintf("last q = %g", m.lastQ)))
	b.WriteString("\n\n")

	for i := 0; i < len(m.perChunk); i++ {
		b.WriteString(Dim.Render(fmt.Sprintf("worker %2d  %d done", i, m.perChunk[i])))
		b.WriteString("\n")
	}
	b.WriteString(Dim.Render("press q to abort"))
	b.WriteString("\n")

	return Panel.Render(b.String())
}

// Err returns the sweep error observed before quitting, if any.
func (m Model) Err() error { return m.err }
