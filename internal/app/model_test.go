package app

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone/v2"

	"github.com/GhostWriters/DialogStack/internal/config"
	"github.com/GhostWriters/DialogStack/pkg/dialog"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Defaults()
	s := dialog.NewStore(dialog.WithBaseZIndex(cfg.Stack.BaseZIndex))
	m := New(context.Background(), cfg, s, slog.New(slog.DiscardHandler))
	m.Init()
	t.Cleanup(m.container.Close)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func pressKey(m Model, k tea.KeyPressMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func letter(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func lastLine(m Model) string {
	return m.history[len(m.history)-1]
}

func TestAlertOpensAndRenders(t *testing.T) {
	m := newTestModel(t)
	m, _ = pressKey(m, letter('a'))

	if n := m.store.Len(); n != 1 {
		t.Fatalf("store has %d entries, want 1", n)
	}
	view := ansi.Strip(m.View().Content)
	if !strings.Contains(view, "Dialogs stack on top of each other.") {
		t.Errorf("alert text missing from view:\n%s", view)
	}
}

func TestLettersGoToOpenDialog(t *testing.T) {
	m := newTestModel(t)
	m, _ = pressKey(m, letter('a'))
	m, _ = pressKey(m, letter('m')) // would open a modal without the alert

	if n := m.store.Len(); n != 1 {
		t.Errorf("store has %d entries, want 1", n)
	}
}

func TestConfirmResultIsRecorded(t *testing.T) {
	m := newTestModel(t)
	m, wait := pressKey(m, letter('c'))
	if wait == nil {
		t.Fatal("opening a confirm should return the command awaiting it")
	}

	m, _ = pressKey(m, letter('y'))

	next, _ := m.Update(wait())
	m = next.(Model)
	if got := lastLine(m); got != "Confirm: yes" {
		t.Errorf("history ends with %q, want %q", got, "Confirm: yes")
	}
}

func TestUnmountAllDismissesPending(t *testing.T) {
	m := newTestModel(t)
	m, wait := pressKey(m, letter('p'))
	m, _ = pressKey(m, ctrl('u'))

	if n := m.store.Len(); n != 0 {
		t.Fatalf("store has %d entries after unmount all", n)
	}
	next, _ := m.Update(wait())
	m = next.(Model)
	if got := lastLine(m); got != "Prompt: dismissed" {
		t.Errorf("history ends with %q", got)
	}
}

func TestPromptAnswerOpensGreeting(t *testing.T) {
	m := newTestModel(t)
	m, wait := pressKey(m, letter('p'))
	for _, r := range "Ada" {
		m, _ = pressKey(m, letter(r))
	}
	m, _ = pressKey(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	next, _ := m.Update(wait())
	m = next.(Model)
	if got := lastLine(m); got != `Prompt: "Ada"` {
		t.Errorf("history ends with %q", got)
	}

	snap := m.store.Snapshot()
	top := snap.Entries[len(snap.Entries)-1]
	if !top.IsOpen || top.ComponentKey == "" {
		t.Fatalf("greeting was not opened: %+v", top)
	}
	if !strings.Contains(ansi.Strip(m.View().Content), "Hello, Ada!") {
		t.Error("greeting text missing from view")
	}
}

func TestNestedLayersStack(t *testing.T) {
	m := newTestModel(t)
	m, _ = pressKey(m, ctrl('n'))
	m, _ = pressKey(m, ctrl('n'))

	snap := m.store.Snapshot()
	if len(snap.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(snap.Entries))
	}
	if snap.Entries[0].ZIndex != 1000 || snap.Entries[1].ZIndex != 1001 {
		t.Errorf("z-indexes = %d, %d", snap.Entries[0].ZIndex, snap.Entries[1].ZIndex)
	}
	if !strings.Contains(ansi.Strip(m.View().Content), "Layer 2") {
		t.Error("top layer title missing from view")
	}

	m, _ = pressKey(m, ctrl('x'))
	for _, e := range m.store.Snapshot().Entries {
		if e.IsOpen {
			t.Errorf("%s still open after close all", e.ID)
		}
	}
}

func TestEscClosesTopOnly(t *testing.T) {
	m := newTestModel(t)
	m, _ = pressKey(m, ctrl('n'))
	m, _ = pressKey(m, ctrl('n'))
	m, _ = pressKey(m, tea.KeyPressMsg{Code: tea.KeyEscape})

	snap := m.store.Snapshot()
	if !snap.Entries[0].IsOpen || snap.Entries[1].IsOpen {
		t.Errorf("open states = %v, %v; want true, false", snap.Entries[0].IsOpen, snap.Entries[1].IsOpen)
	}
}

func TestScrollLockWhileDialogOpen(t *testing.T) {
	m := newTestModel(t)
	for i := range 60 {
		m.record(strings.Repeat("x", i%10))
	}
	before := m.offset

	next, _ := m.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	m = next.(Model)
	if m.offset != before-1 {
		t.Fatalf("offset = %d, want %d", m.offset, before-1)
	}

	m, _ = pressKey(m, letter('a'))
	next, _ = m.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	m = next.(Model)
	if m.offset != before-1 {
		t.Errorf("history scrolled behind an open dialog: offset %d", m.offset)
	}
}

func TestConfigReload(t *testing.T) {
	m := newTestModel(t)
	cfg := config.Defaults()
	cfg.Behavior.CloseOnEsc = false

	next, _ := m.Update(ConfigReloadedMsg{Config: cfg})
	m = next.(Model)
	if m.behavior.CloseOnEsc {
		t.Fatal("CloseOnEsc should follow the reloaded config")
	}

	m, _ = pressKey(m, letter('a'))
	m, _ = pressKey(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if e := m.store.Snapshot().Entries[0]; !e.IsOpen {
		t.Error("Esc closed the dialog although CloseOnEsc is off")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := pressKey(m, letter('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not return tea.Quit")
	}
}
