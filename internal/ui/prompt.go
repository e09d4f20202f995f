package ui

import (
	"context"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/GhostWriters/DialogStack/pkg/dialog"
	"github.com/GhostWriters/DialogStack/pkg/dialogtea"
)

// PromptProps configures a text prompt.
type PromptProps struct {
	Title       string `prop:"title"`
	Label       string `prop:"label"`
	Placeholder string `prop:"placeholder"`
	Value       string `prop:"value"`
	Width       int    `prop:"width"`
	Position    string `prop:"position"`
}

// inputKey is where the prompt keeps its textinput.Model in the entry state.
const inputKey = "input"

type promptLayer struct {
	kit   *Kit
	c     *dialog.Controller
	props PromptProps
	input textinput.Model
}

// Prompt asks for a line of text. Enter resolves with the text as Data.
func (k *Kit) Prompt(c *dialog.Controller, props dialog.State) dialog.Layer {
	p := PromptProps{Title: "Input", Width: 40}
	if err := dialog.Decode(props, &p); err != nil {
		k.logBadProps(c, "props", err)
	}

	l := &promptLayer{kit: k, c: c, props: p}
	if ti, ok := c.GetProp(inputKey, nil).(textinput.Model); ok {
		l.input = ti
	} else {
		l.input = newInput(p)
	}
	return l
}

func newInput(p PromptProps) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = p.Placeholder
	ti.SetWidth(p.Width)
	ti.SetValue(p.Value)

	st := textinput.DefaultDarkStyles()
	st.Cursor.Blink = false
	ti.SetStyles(st)

	ti.Focus()
	return ti
}

func (l *promptLayer) View() string {
	var body string
	if l.props.Label != "" {
		body = lipgloss.NewStyle().Padding(1, 1, 0).Render(l.props.Label) + "\n"
	}
	field := l.kit.Styles.Input.Width(l.props.Width + 3).Render(l.input.View())
	body += lipgloss.NewStyle().Padding(1, 1).Render(field)

	width := max(lipgloss.Width(body), 30)
	buttons := l.kit.Styles.RenderCenteredButtons(width, l.kit.mark,
		ButtonSpec{Text: " OK ", Active: true, ZoneID: l.kit.buttonZone(l.c, "ok")},
	)
	return l.kit.frame(l.c, l.props.Title, body+"\n"+buttons)
}

func (l *promptLayer) Placement() dialogtea.Placement {
	return placementOf(l.props.Position)
}

// Value is the current text of the input.
func (l *promptLayer) Value() string {
	return l.input.Value()
}

func (l *promptLayer) HandleMsg(_ context.Context, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if key.Matches(msg, l.kit.Keys.Enter) {
			finish(l.c, dialog.Payload{OK: true, Data: l.input.Value()})
			return nil
		}
	case tea.MouseClickMsg:
		if l.kit.clicked(l.kit.buttonZone(l.c, "ok"), msg) {
			finish(l.c, dialog.Payload{OK: true, Data: l.input.Value()})
		}
		return nil
	}

	ti, cmd := l.input.Update(msg)
	l.c.Update(dialog.Patch{inputKey: ti})
	return cmd
}
