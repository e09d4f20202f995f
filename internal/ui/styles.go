package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/GhostWriters/DialogStack/internal/config"
)

// Styles holds all lipgloss styles used by the dialogs
type Styles struct {
	// Screen
	Screen lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Closed      lipgloss.Style

	// Borders
	BorderColor  color.Color
	Border2Color color.Color

	// Shadow
	Shadow  lipgloss.Style
	Shadows bool

	// Buttons
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style

	// Input
	Input lipgloss.Style

	// Help line
	HelpLine lipgloss.Style

	LineCharacters bool
}

var asciiBorder = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}

// NewStyles builds the dialog styles for the given UI settings.
func NewStyles(cfg config.UIConfig) Styles {
	var s Styles
	s.LineCharacters = cfg.LineCharacters
	s.Shadows = cfg.Shadow

	s.Screen = lipgloss.NewStyle().
		Background(lipgloss.Color("#005f87")).
		Foreground(lipgloss.Color("#ffffff"))

	s.Dialog = lipgloss.NewStyle().
		Background(lipgloss.Color("#c0c0c0")).
		Foreground(lipgloss.Color("#000000"))

	s.DialogTitle = lipgloss.NewStyle().
		Background(lipgloss.Color("#c0c0c0")).
		Foreground(lipgloss.Color("#00005f")).
		Bold(true)

	s.Closed = lipgloss.NewStyle().Faint(true)

	s.BorderColor = lipgloss.Color("#ffffff")
	s.Border2Color = lipgloss.Color("#303030")

	s.Shadow = lipgloss.NewStyle().Background(lipgloss.Color("#000000"))

	s.ButtonActive = lipgloss.NewStyle().
		Background(lipgloss.Color("#00005f")).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true)

	s.ButtonInactive = lipgloss.NewStyle().
		Background(lipgloss.Color("#c0c0c0")).
		Foreground(lipgloss.Color("#000000"))

	s.Input = lipgloss.NewStyle().
		Background(lipgloss.Color("#ffffff")).
		Foreground(lipgloss.Color("#000000"))

	s.HelpLine = lipgloss.NewStyle().
		Background(lipgloss.Color("#005f87")).
		Foreground(lipgloss.Color("#ffffff"))

	return s
}

// RenderDialog renders content inside a border with an optional title
// embedded in the top edge: ────┤ Title ├────
func (s Styles) RenderDialog(title, content string) string {
	border := lipgloss.NormalBorder()
	leftT, rightT := "┤", "├"
	if !s.LineCharacters {
		border = asciiBorder
		leftT, rightT = "+", "+"
	}

	bg := s.Dialog.GetBackground()
	light := lipgloss.NewStyle().Foreground(s.BorderColor).Background(bg)
	dark := lipgloss.NewStyle().Foreground(s.Border2Color).Background(bg)
	titleStyle := s.DialogTitle.Background(bg)

	lines := strings.Split(content, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line))
	}
	if title != "" {
		width = max(width, lipgloss.Width(title)+4)
	}

	var b strings.Builder
	b.WriteString(light.Render(border.TopLeft))
	if title == "" {
		b.WriteString(light.Render(strings.Repeat(border.Top, width)))
	} else {
		section := lipgloss.Width(title) + 4
		leftPad := (width - section) / 2
		rightPad := width - section - leftPad
		b.WriteString(light.Render(strings.Repeat(border.Top, leftPad) + leftT + " "))
		b.WriteString(titleStyle.Render(title))
		b.WriteString(light.Render(" " + rightT + strings.Repeat(border.Top, rightPad)))
	}
	b.WriteString(light.Render(border.TopRight))
	b.WriteString("\n")

	fill := s.Dialog.Width(width)
	for _, line := range lines {
		b.WriteString(light.Render(border.Left))
		b.WriteString(fill.Render(line))
		b.WriteString(dark.Render(border.Right))
		b.WriteString("\n")
	}

	b.WriteString(dark.Render(border.BottomLeft + strings.Repeat(border.Bottom, width) + border.BottomRight))
	return b.String()
}

// ButtonSpec defines a button to render
type ButtonSpec struct {
	Text   string
	Active bool
	// ZoneID, when set, marks the button for mouse hit testing.
	ZoneID string
}

// RenderCenteredButtons renders buttons centered in equal sections of
// contentWidth.
func (s Styles) RenderCenteredButtons(contentWidth int, mark func(id, content string) string, buttons ...ButtonSpec) string {
	if len(buttons) == 0 {
		return ""
	}

	maxButtonWidth := 0
	for _, btn := range buttons {
		maxButtonWidth = max(maxButtonWidth, lipgloss.Width(btn.Text))
	}

	sectionWidth := contentWidth / len(buttons)
	sections := make([]string, 0, len(buttons))
	for _, btn := range buttons {
		style := s.ButtonInactive
		if btn.Active {
			style = s.ButtonActive
		}
		rendered := style.Width(maxButtonWidth + 2).Align(lipgloss.Center).Render("<" + btn.Text + ">")
		if btn.ZoneID != "" && mark != nil {
			rendered = mark(btn.ZoneID, rendered)
		}
		sections = append(sections, lipgloss.NewStyle().
			Width(sectionWidth).
			Align(lipgloss.Center).
			Background(s.Dialog.GetBackground()).
			Render(rendered))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sections...)
}

// AddShadow adds a shadow effect to rendered content if shadow is enabled
func (s Styles) AddShadow(content string) string {
	if !s.Shadows {
		return content
	}
	w, h := lipgloss.Size(content)

	right := s.Shadow.Width(1).Height(max(h-1, 0)).Render("")
	bottom := s.Shadow.Width(w).Height(1).Render("")

	// The top-right corner stays transparent so the shadow looks offset.
	withRight := lipgloss.JoinHorizontal(lipgloss.Bottom, content, right)
	return lipgloss.JoinVertical(lipgloss.Left, withRight, " "+bottom)
}
