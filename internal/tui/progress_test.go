package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecosim/trophic/internal/sweep"
)

func abortKey(t *testing.T, msg tea.KeyMsg) (Model, bool) {
	t.Helper()

	canceled := false
	m := NewModel("chain", make(chan sweep.Progress), make(chan error), func() { canceled = true })

	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("abort key must produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("abort key produced %T, want tea.QuitMsg", cmd())
	}
	return next.(Model), canceled
}

func TestAbortKeyCancelsSweep(t *testing.T) {
	m, canceled := abortKey(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if !canceled {
		t.Error("abort must invoke the cancel hook so workers unwind")
	}
	if !errors.Is(m.Err(), ErrAborted) {
		t.Errorf("Err() = %v, want ErrAborted", m.Err())
	}
}

func TestCtrlCAbortsSweep(t *testing.T) {
	m, canceled := abortKey(t, tea.KeyMsg{Type: tea.KeyCtrlC})

	if !canceled {
		t.Error("ctrl+c must invoke the cancel hook")
	}
	if !errors.Is(m.Err(), ErrAborted) {
		t.Errorf("Err() = %v, want ErrAborted", m.Err())
	}
}

func TestDoneMsgCarriesSweepError(t *testing.T) {
	m := NewModel("web", make(chan sweep.Progress), make(chan error), nil)

	boom := errors.New("chunk 2 failed")
	next, cmd := m.Update(doneMsg{err: boom})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("done must quit the view")
	}
	if !errors.Is(next.(Model).Err(), boom) {
		t.Errorf("Err() = %v, want the sweep error", next.(Model).Err())
	}
}

func TestProgressMsgAdvancesCounters(t *testing.T) {
	m := NewModel("chain", make(chan sweep.Progress), make(chan error), nil)

	next, cmd := m.Update(progressMsg(sweep.Progress{Chunk: 1, Q: 0.15, Done: 3, Total: 41}))
	if cmd == nil {
		t.Fatal("progress must re-arm the event wait")
	}

	got := next.(Model)
	if got.finished != 3 || got.total != 41 || got.lastQ != 0.15 {
		t.Errorf("counters not updated: finished=%d total=%d lastQ=%g", got.finished, got.total, got.lastQ)
	}
	if got.perChunk[1] != 1 {
		t.Errorf("perChunk[1] = %d, want 1", got.perChunk[1])
	}
}
