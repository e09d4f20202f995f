// Package ui holds the dialogs the demo renders on a dialog.Store: alert,
// confirm, prompt and modal. Each is a dialog.Component whose layers
// implement dialogtea.Handler.
package ui

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone/v2"

	"github.com/GhostWriters/DialogStack/internal/config"
	"github.com/GhostWriters/DialogStack/pkg/dialog"
	"github.com/GhostWriters/DialogStack/pkg/dialogtea"
)

// Kit carries what every dialog needs to draw itself. A kit is a value
// per program, so concurrent sessions can use different settings.
type Kit struct {
	Styles   Styles
	Keys     KeyMap
	Behavior *dialogtea.Behavior

	// Log receives props that could not be decoded. Nil discards them.
	Log *slog.Logger

	// hit reports whether a click landed in the zone with the given id.
	hit func(id string, msg tea.MouseClickMsg) bool
}

// NewKit returns a kit for the given settings. b may be nil, in which case
// dialog content is not marked for outside-click detection.
func NewKit(cfg config.UIConfig, b *dialogtea.Behavior) *Kit {
	return &Kit{
		Styles:   NewStyles(cfg),
		Keys:     Keys,
		Behavior: b,
	}
}

// decode fills out from the props, then from the entry's state, which
// wins. Values of the wrong type are logged and skipped.
func (k *Kit) decode(c *dialog.Controller, props dialog.State, out any) {
	if err := dialog.Decode(props, out); err != nil {
		k.logBadProps(c, "props", err)
	}
	if err := c.DecodeProps(out); err != nil {
		k.logBadProps(c, "state", err)
	}
}

func (k *Kit) logBadProps(c *dialog.Controller, source string, err error) {
	if k.Log == nil {
		return
	}
	k.Log.Debug("Ignoring dialog values", "dialog", c.ID, "source", source, "error", err)
}

// frame wraps body in the dialog border and shadow. Closed entries are
// drawn faint while they wait to be unmounted.
func (k *Kit) frame(c *dialog.Controller, title, body string) string {
	out := k.Styles.AddShadow(k.Styles.RenderDialog(title, k.Styles.Dialog.Padding(0, 1).Render(body)))
	if !c.IsOpen {
		return k.Styles.Closed.Render(ansi.Strip(out))
	}
	if k.Behavior != nil {
		out = k.Behavior.Mark(c, out)
	}
	return out
}

func (k *Kit) zonePrefix() string {
	if k.Behavior != nil {
		return k.Behavior.ZonePrefix
	}
	return "dialog:"
}

// buttonZone is the zone id of a button inside the entry's dialog.
func (k *Kit) buttonZone(c *dialog.Controller, name string) string {
	return k.zonePrefix() + c.ID + ":" + name
}

func (k *Kit) mark(id, content string) string {
	return zone.Mark(id, content)
}

// clicked reports whether msg is a left click inside the zone id.
func (k *Kit) clicked(id string, msg tea.Msg) bool {
	click, ok := msg.(tea.MouseClickMsg)
	if !ok || click.Button != tea.MouseLeft {
		return false
	}
	if k.hit != nil {
		return k.hit(id, click)
	}
	zi := zone.Get(id)
	return zi != nil && zi.InBounds(click)
}

// finish settles the entry, when it is async, and closes it.
func finish(c *dialog.Controller, p dialog.Payload) {
	if c.Async() {
		c.Resolve(p)
	}
	c.Close()
}

// placementOf maps the "position" prop to a placement. Top and bottom
// keep one row free for the header and help line.
func placementOf(pos string) dialogtea.Placement {
	switch pos {
	case "top":
		return dialogtea.Placement{H: dialogtea.Center, V: dialogtea.Top, Y: 1}
	case "bottom":
		return dialogtea.Placement{H: dialogtea.Center, V: dialogtea.Bottom, Y: -1}
	}
	return dialogtea.Placement{}
}
