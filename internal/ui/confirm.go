package ui

import (
	"context"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/GhostWriters/DialogStack/pkg/dialog"
	"github.com/GhostWriters/DialogStack/pkg/dialogtea"
)

// ConfirmProps configures a yes/no question.
type ConfirmProps struct {
	Title      string `prop:"title"`
	Question   string `prop:"question"`
	Yes        string `prop:"yes"`
	No         string `prop:"no"`
	DefaultYes bool   `prop:"default_yes"`
	Position   string `prop:"position"`
}

// confirmState is kept in the entry's state so that it survives re-renders.
type confirmState struct {
	Focus *int `prop:"focus"`
}

type confirmLayer struct {
	kit   *Kit
	c     *dialog.Controller
	props ConfirmProps
	focus int // 0 = yes, 1 = no
}

// Confirm asks a yes/no question. It resolves with OK set to the answer.
func (k *Kit) Confirm(c *dialog.Controller, props dialog.State) dialog.Layer {
	p := ConfirmProps{Title: "Confirm", Yes: " Yes ", No: " No ", DefaultYes: true}
	if err := dialog.Decode(props, &p); err != nil {
		k.logBadProps(c, "props", err)
	}

	l := &confirmLayer{kit: k, c: c, props: p, focus: 1}
	if p.DefaultYes {
		l.focus = 0
	}
	var st confirmState
	if err := c.DecodeProps(&st); err != nil {
		k.logBadProps(c, "state", err)
	} else if st.Focus != nil {
		l.focus = *st.Focus
	}
	return l
}

func (l *confirmLayer) View() string {
	q := lipgloss.NewStyle().Padding(1, 2).Render(l.props.Question)
	width := max(lipgloss.Width(q), 40)
	buttons := l.kit.Styles.RenderCenteredButtons(width, l.kit.mark,
		ButtonSpec{Text: l.props.Yes, Active: l.focus == 0, ZoneID: l.kit.buttonZone(l.c, "yes")},
		ButtonSpec{Text: l.props.No, Active: l.focus == 1, ZoneID: l.kit.buttonZone(l.c, "no")},
	)
	return l.kit.frame(l.c, l.props.Title, q+"\n\n"+buttons)
}

func (l *confirmLayer) Placement() dialogtea.Placement {
	return placementOf(l.props.Position)
}

func (l *confirmLayer) HandleMsg(_ context.Context, msg tea.Msg) tea.Cmd {
	answer := func(yes bool) {
		finish(l.c, dialog.Payload{OK: yes, Data: yes})
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, l.kit.Keys.Left), key.Matches(msg, l.kit.Keys.Right), key.Matches(msg, l.kit.Keys.Tab):
			l.c.Update(dialog.Patch{"focus": 1 - l.focus})
		case key.Matches(msg, l.kit.Keys.Yes):
			answer(true)
		case key.Matches(msg, l.kit.Keys.No):
			answer(false)
		case key.Matches(msg, l.kit.Keys.Enter):
			answer(l.focus == 0)
		}
	case tea.MouseClickMsg:
		switch {
		case l.kit.clicked(l.kit.buttonZone(l.c, "yes"), msg):
			answer(true)
		case l.kit.clicked(l.kit.buttonZone(l.c, "no"), msg):
			answer(false)
		}
	}
	return nil
}
