package dialogtea

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Position anchors a layer inside the area it is composited over.
type Position int

const (
	Center Position = iota
	Top
	Bottom
	Left
	Right
)

// Placement says where a layer goes. The zero value centers it.
type Placement struct {
	H, V Position
	X, Y int // offsets applied after anchoring
}

// Placed is implemented by layers that want something other than the
// centered default.
type Placed interface {
	Placement() Placement
}

// Overlay composites fg over bg according to p. Lines of bg that fall
// outside fg are kept as they are, escape sequences included.
func Overlay(fg, bg string, p Placement) string {
	if fg == "" {
		return bg
	}
	if bg == "" {
		return fg
	}
	bgW, bgH := lipgloss.Size(bg)
	fgW, fgH := lipgloss.Size(fg)

	var x, y int
	switch p.H {
	case Left:
		x = 0
	case Right:
		x = bgW - fgW
	default:
		x = (bgW - fgW) / 2
	}
	switch p.V {
	case Top:
		y = 0
	case Bottom:
		y = bgH - fgH
	default:
		y = (bgH - fgH) / 2
	}
	return Place(fg, bg, max(x+p.X, 0), max(y+p.Y, 0))
}

// Place writes fg over bg with its top-left corner at column x, row y.
// Rows of fg below the last row of bg are dropped.
func Place(fg, bg string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLine := bgLines[row]
		w := ansi.StringWidth(fgLine)

		var b strings.Builder
		left := ansi.Truncate(bgLine, x, "")
		b.WriteString(left)
		if lw := ansi.StringWidth(left); lw < x {
			b.WriteString(strings.Repeat(" ", x-lw))
		}
		b.WriteString(fgLine)
		if bw := ansi.StringWidth(bgLine); bw > x+w {
			right := ansi.TruncateLeft(bgLine, x+w, "")
			// A wide character cut in half by the right edge is replaced by
			// spaces.
			if extra := ansi.StringWidth(right) - (bw - x - w); extra > 0 {
				right = strings.Repeat(" ", extra) + ansi.TruncateLeft(bgLine, x+w+extra, "")
			}
			b.WriteString(ansi.ResetStyle)
			b.WriteString(right)
		}
		bgLines[row] = b.String()
	}
	return strings.Join(bgLines, "\n")
}

// Canvas returns a blank width x height block.
func Canvas(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
