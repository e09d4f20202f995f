package ui

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone/v2"

	"github.com/GhostWriters/DialogStack/internal/config"
	"github.com/GhostWriters/DialogStack/pkg/dialog"
	"github.com/GhostWriters/DialogStack/pkg/dialogtea"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func testKit() *Kit {
	return NewKit(config.Defaults().UI, dialogtea.NewBehavior())
}

func component(comp dialog.Component, props dialog.State) dialog.Renderer {
	return func(c *dialog.Controller) dialog.Layer { return comp(c, props) }
}

// current renders the entry id against the store's latest snapshot.
func current(t *testing.T, s *dialog.Store, id string) (dialog.Layer, *dialog.Controller) {
	t.Helper()
	snap := s.Snapshot()
	for _, e := range snap.Entries {
		if e.ID == id {
			c := dialog.NewController(s, e, snap.Entries)
			return e.Renderer(c), c
		}
	}
	t.Fatalf("entry %q not found", id)
	return nil, nil
}

func send(t *testing.T, s *dialog.Store, id string, msg tea.Msg) tea.Cmd {
	t.Helper()
	l, _ := current(t, s, id)
	h, ok := l.(dialogtea.Handler)
	if !ok {
		t.Fatalf("layer %T does not handle input", l)
	}
	return h.HandleMsg(context.Background(), msg)
}

func keyPress(code rune) tea.KeyPressMsg {
	if code >= 'a' && code <= 'z' {
		return tea.KeyPressMsg{Code: code, Text: string(code)}
	}
	return tea.KeyPressMsg{Code: code}
}

func wait(t *testing.T, p *dialog.Pending) (dialog.AsyncResult, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return p.Wait(ctx)
}

func TestAlertEnterCloses(t *testing.T) {
	k := testKit()
	s := dialog.NewStore()
	h := s.MustOpen(component(k.Alert, dialog.State{"title": "Hello", "message": "World"}))

	l, _ := current(t, s, h.ID())
	view := ansi.Strip(l.View())
	if !strings.Contains(view, "Hello") || !strings.Contains(view, "World") {
		t.Errorf("alert view is missing its text:\n%s", view)
	}

	send(t, s, h.ID(), keyPress(tea.KeyEnter))
	e, ok := h.Entry()
	if !ok || e.IsOpen {
		t.Errorf("alert should be closed but still mounted, got ok=%v open=%v", ok, e.IsOpen)
	}
}

func TestBadPropsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	k := testKit()
	k.Log = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := dialog.NewStore()
	h := s.MustOpen(component(k.Alert, dialog.State{
		"title":   "Kept",
		"message": map[string]any{"not": "text"},
	}))

	l, _ := current(t, s, h.ID())
	if view := ansi.Strip(l.View()); !strings.Contains(view, "Kept") {
		t.Errorf("valid props should still apply:\n%s", view)
	}
	out := buf.String()
	if !strings.Contains(out, "Ignoring dialog values") || !strings.Contains(out, "dialog="+h.ID()) {
		t.Errorf("decode error was not logged, got %q", out)
	}
}

func TestAlertAsyncResolves(t *testing.T) {
	k := testKit()
	s := dialog.NewStore()
	p, err := s.OpenAsync(component(k.Alert, nil))
	if err != nil {
		t.Fatal(err)
	}
	send(t, s, p.Handle().ID(), keyPress(tea.KeyEnter))

	res, err := wait(t, p)
	if err != nil || !res.OK {
		t.Errorf("Wait = %+v, %v; want OK", res, err)
	}
}

func TestConfirmKeys(t *testing.T) {
	tests := []struct {
		name   string
		props  dialog.State
		keys   []rune
		wantOK bool
	}{
		{name: "enter takes default yes", keys: []rune{tea.KeyEnter}, wantOK: true},
		{name: "default no", props: dialog.State{"default_yes": false}, keys: []rune{tea.KeyEnter}, wantOK: false},
		{name: "right moves to no", keys: []rune{tea.KeyRight, tea.KeyEnter}, wantOK: false},
		{name: "tab twice returns to yes", keys: []rune{tea.KeyTab, tea.KeyTab, tea.KeyEnter}, wantOK: true},
		{name: "n answers no", keys: []rune{'n'}, wantOK: false},
		{name: "y answers yes", props: dialog.State{"default_yes": false}, keys: []rune{'y'}, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := testKit()
			s := dialog.NewStore()
			p, err := s.OpenAsync(component(k.Confirm, tt.props))
			if err != nil {
				t.Fatal(err)
			}
			id := p.Handle().ID()
			for _, code := range tt.keys {
				send(t, s, id, keyPress(code))
			}
			res, err := wait(t, p)
			if err != nil {
				t.Fatalf("Wait failed: %v", err)
			}
			if res.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v", res.OK, tt.wantOK)
			}
			if e, _ := s.Get(id); e.IsOpen {
				t.Error("confirm should close after answering")
			}
		})
	}
}

func TestConfirmFocusSurvivesRerender(t *testing.T) {
	k := testKit()
	s := dialog.NewStore()
	h := s.MustOpen(component(k.Confirm, nil))

	send(t, s, h.ID(), keyPress(tea.KeyRight))
	_, c := current(t, s, h.ID())
	if got := c.GetProp("focus", nil); got != 1 {
		t.Errorf("focus = %v, want 1", got)
	}
}

func TestConfirmButtonClick(t *testing.T) {
	k := testKit()
	s := dialog.NewStore()
	p, err := s.OpenAsync(component(k.Confirm, nil))
	if err != nil {
		t.Fatal(err)
	}
	id := p.Handle().ID()
	noZone := k.zonePrefix() + id + ":no"
	k.hit = func(zoneID string, _ tea.MouseClickMsg) bool { return zoneID == noZone }

	send(t, s, id, tea.MouseClickMsg{X: 1, Y: 1, Button: tea.MouseLeft})
	res, err := wait(t, p)
	if err != nil || res.OK {
		t.Errorf("Wait = %+v, %v; want not OK", res, err)
	}
}

func TestPromptTypingAndSubmit(t *testing.T) {
	k := testKit()
	s := dialog.NewStore()
	p, err := s.OpenAsync(component(k.Prompt, dialog.State{"title": "Name", "value": "a"}))
	if err != nil {
		t.Fatal(err)
	}
	id := p.Handle().ID()

	for _, r := range "bc" {
		send(t, s, id, keyPress(r))
	}
	l, _ := current(t, s, id)
	if got := l.(*promptLayer).Value(); got != "abc" {
		t.Errorf("Value = %q, want abc", got)
	}

	send(t, s, id, keyPress(tea.KeyEnter))
	res, err := wait(t, p)
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if res.Data != "abc" {
		t.Errorf("Data = %v, want abc", res.Data)
	}
}

func TestModalChoosesButton(t *testing.T) {
	k := testKit()
	s := dialog.NewStore()
	p, err := s.OpenAsync(component(k.Modal, dialog.State{"buttons": []string{"One", "Two", "Three"}}))
	if err != nil {
		t.Fatal(err)
	}
	id := p.Handle().ID()

	send(t, s, id, keyPress(tea.KeyLeft)) // wraps to the last button
	send(t, s, id, keyPress(tea.KeyEnter))

	res, err := wait(t, p)
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if res.Data != 2 {
		t.Errorf("Data = %v, want 2", res.Data)
	}
}

func TestClosedDialogIsDrawnPlain(t *testing.T) {
	k := testKit()
	s := dialog.NewStore()
	h := s.MustOpen(component(k.Alert, dialog.State{"message": "bye"}))
	h.Close()

	l, _ := current(t, s, h.ID())
	view := l.View()
	if !strings.Contains(ansi.Strip(view), "bye") {
		t.Errorf("closed alert lost its content:\n%s", view)
	}
	if strings.Contains(view, "\x1b[38") {
		t.Error("closed alert should not keep its colors")
	}
}

func TestPlacementFromProps(t *testing.T) {
	k := testKit()
	s := dialog.NewStore()
	h := s.MustOpen(component(k.Alert, dialog.State{"position": "top"}))

	l, _ := current(t, s, h.ID())
	got := l.(dialogtea.Placed).Placement()
	if got.V != dialogtea.Top || got.Y != 1 {
		t.Errorf("Placement = %+v, want top with one row offset", got)
	}
}

func TestRenderDialogBorders(t *testing.T) {
	tests := []struct {
		name     string
		lines    bool
		wantEdge string
	}{
		{name: "line characters", lines: true, wantEdge: "┌"},
		{name: "ascii", lines: false, wantEdge: "+"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStyles(config.UIConfig{LineCharacters: tt.lines})
			out := ansi.Strip(st.RenderDialog("T", "body"))
			first := strings.Split(out, "\n")[0]
			if !strings.HasPrefix(first, tt.wantEdge) {
				t.Errorf("top edge = %q, want it to start with %q", first, tt.wantEdge)
			}
			if !strings.Contains(first, " T ") {
				t.Errorf("title missing from top edge %q", first)
			}
		})
	}
}

func TestAddShadow(t *testing.T) {
	st := NewStyles(config.UIConfig{Shadow: true})
	w, h := 5, 3
	in := strings.TrimSuffix(strings.Repeat(strings.Repeat("x", w)+"\n", h), "\n")

	out := st.AddShadow(in)
	lines := strings.Split(out, "\n")
	if len(lines) != h+1 {
		t.Fatalf("got %d lines, want %d", len(lines), h+1)
	}

	st.Shadows = false
	if got := st.AddShadow(in); got != in {
		t.Error("AddShadow should be a no-op when shadows are off")
	}
}
