package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelQuitsOnceFinished(t *testing.T) {
	h, _ := newListHarness("one", "two")
	_, cmd := h.Model().Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if _, cmd := h.Model().Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("expected finished model to ignore further keys")
	}
	if h.Model().Outcome().Signal != Cancel {
		t.Fatalf("expected outcome to stay cancel, got %+v", h.Model().Outcome())
	}
}

func TestModelPinnedSizeIgnoresResize(t *testing.T) {
	d := NewListDialog(recentEntries("a", "b", "c", "d"))
	h := NewHarness(NewModel(d, 30, 3))
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 50})
	if d.Pane().Height != 2 {
		t.Fatalf("expected pinned height to leave two list rows, got %d", d.Pane().Height)
	}
}

func TestOutcomeExitCodes(t *testing.T) {
	if !exitOutcome(70).Printed() || exitOutcome(70).ExitCode() != 70 {
		t.Fatalf("expected exit outcome to print with its code")
	}
	if cancelOutcome.Printed() || cancelOutcome.ExitCode() != 1 {
		t.Fatalf("unexpected cancel outcome")
	}
	if continueOutcome.Done() {
		t.Fatalf("expected continue to keep running")
	}
}
