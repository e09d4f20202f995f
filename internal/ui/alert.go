package ui

import (
	"context"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/GhostWriters/DialogStack/pkg/dialog"
	"github.com/GhostWriters/DialogStack/pkg/dialogtea"
)

// AlertProps configures an alert.
type AlertProps struct {
	Title    string `prop:"title"`
	Message  string `prop:"message"`
	Button   string `prop:"button"`
	Position string `prop:"position"`
}

type alertLayer struct {
	kit   *Kit
	c     *dialog.Controller
	props AlertProps
}

// Alert shows a message with a single button. Enter or a click on the
// button closes it; an async alert resolves with OK first.
func (k *Kit) Alert(c *dialog.Controller, props dialog.State) dialog.Layer {
	p := AlertProps{Title: "Notice", Button: " OK "}
	k.decode(c, props, &p)
	return &alertLayer{kit: k, c: c, props: p}
}

func (l *alertLayer) View() string {
	msg := lipgloss.NewStyle().Padding(1, 2).Render(l.props.Message)
	width := max(lipgloss.Width(msg), 30)
	buttons := l.kit.Styles.RenderCenteredButtons(width, l.kit.mark,
		ButtonSpec{Text: l.props.Button, Active: true, ZoneID: l.kit.buttonZone(l.c, "ok")},
	)
	return l.kit.frame(l.c, l.props.Title, msg+"\n\n"+buttons)
}

func (l *alertLayer) Placement() dialogtea.Placement {
	return placementOf(l.props.Position)
}

func (l *alertLayer) HandleMsg(_ context.Context, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if key.Matches(msg, l.kit.Keys.Enter) {
			finish(l.c, dialog.Payload{OK: true})
		}
	case tea.MouseClickMsg:
		if l.kit.clicked(l.kit.buttonZone(l.c, "ok"), msg) {
			finish(l.c, dialog.Payload{OK: true})
		}
	}
	return nil
}
