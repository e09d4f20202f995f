package ui

import (
	"context"
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/GhostWriters/DialogStack/pkg/dialog"
	"github.com/GhostWriters/DialogStack/pkg/dialogtea"
)

// ModalProps configures a modal with any number of buttons.
type ModalProps struct {
	Title    string   `prop:"title"`
	Body     string   `prop:"body"`
	Buttons  []string `prop:"buttons"`
	Position string   `prop:"position"`
	Focus    int      `prop:"focus"`
}

type modalLayer struct {
	kit   *Kit
	c     *dialog.Controller
	props ModalProps
}

// Modal shows a body and a row of buttons. Choosing a button closes it;
// an async modal resolves with the chosen index as Data.
func (k *Kit) Modal(c *dialog.Controller, props dialog.State) dialog.Layer {
	p := ModalProps{Title: "Dialog", Buttons: []string{" Close "}}
	k.decode(c, props, &p)
	if len(p.Buttons) == 0 {
		p.Buttons = []string{" Close "}
	}
	p.Focus = min(max(p.Focus, 0), len(p.Buttons)-1)
	return &modalLayer{kit: k, c: c, props: p}
}

func (l *modalLayer) zone(i int) string {
	return l.kit.buttonZone(l.c, strconv.Itoa(i))
}

func (l *modalLayer) View() string {
	body := lipgloss.NewStyle().Padding(1, 2).Render(l.props.Body)
	width := max(lipgloss.Width(body), 12*len(l.props.Buttons))
	specs := make([]ButtonSpec, len(l.props.Buttons))
	for i, text := range l.props.Buttons {
		specs[i] = ButtonSpec{Text: text, Active: i == l.props.Focus, ZoneID: l.zone(i)}
	}
	buttons := l.kit.Styles.RenderCenteredButtons(width, l.kit.mark, specs...)
	return l.kit.frame(l.c, l.props.Title, body+"\n\n"+buttons)
}

func (l *modalLayer) Placement() dialogtea.Placement {
	return placementOf(l.props.Position)
}

func (l *modalLayer) HandleMsg(_ context.Context, msg tea.Msg) tea.Cmd {
	n := len(l.props.Buttons)
	choose := func(i int) {
		finish(l.c, dialog.Payload{OK: true, Data: i})
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, l.kit.Keys.Left):
			l.c.Update(dialog.Patch{"focus": (l.props.Focus + n - 1) % n})
		case key.Matches(msg, l.kit.Keys.Right), key.Matches(msg, l.kit.Keys.Tab):
			l.c.Update(dialog.Patch{"focus": (l.props.Focus + 1) % n})
		case key.Matches(msg, l.kit.Keys.Enter):
			choose(l.props.Focus)
		}
	case tea.MouseClickMsg:
		for i := range n {
			if l.kit.clicked(l.zone(i), msg) {
				choose(i)
				break
			}
		}
	}
	return nil
}
