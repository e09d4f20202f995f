package dialogtea

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone/v2"

	"github.com/GhostWriters/DialogStack/pkg/dialog"
)

// KeyMap holds the bindings the behavior reacts to.
type KeyMap struct {
	Close key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Close}}
}

// DefaultKeyMap closes on Esc.
var DefaultKeyMap = KeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close dialog"),
	),
}

// Behavior is an optional set of policies on top of the store. It only
// ever closes the topmost open entry and never unmounts anything.
type Behavior struct {
	CloseOnEsc          bool
	CloseOnOutsideClick bool
	// ScrollLock makes ScrollLocked report true while any entry is open.
	ScrollLock bool
	Keys       KeyMap
	// ZonePrefix namespaces the bubblezone ids used by Mark.
	ZonePrefix string

	// hit reports whether msg landed inside the zone. known is false when
	// the zone has not been rendered yet.
	hit func(id string, msg tea.MouseClickMsg) (inside, known bool)
}

// NewBehavior returns a behavior with every policy enabled.
func NewBehavior() *Behavior {
	return &Behavior{
		CloseOnEsc:          true,
		CloseOnOutsideClick: true,
		ScrollLock:          true,
		Keys:                DefaultKeyMap,
		ZonePrefix:          "dialog:",
	}
}

// ZoneID is the bubblezone id of the entry's content.
func (b *Behavior) ZoneID(c *dialog.Controller) string {
	return b.ZonePrefix + c.ID
}

// Mark wraps the entry's rendered content in its zone so that outside
// clicks can be detected. The host must pass its final view through
// zone.Scan.
func (b *Behavior) Mark(c *dialog.Controller, content string) string {
	return zone.Mark(b.ZoneID(c), content)
}

// Handle applies the policies to msg for the entry behind c. It reports
// whether it acted, in which case msg should not be processed further.
func (b *Behavior) Handle(c *dialog.Controller, msg tea.Msg) bool {
	if c == nil || !c.IsTop() {
		return false
	}
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if b.CloseOnEsc && key.Matches(msg, b.Keys.Close) {
			c.Close()
			return true
		}
	case tea.MouseClickMsg:
		if !b.CloseOnOutsideClick || msg.Button != tea.MouseLeft {
			return false
		}
		hit := b.hit
		if hit == nil {
			hit = zoneHit
		}
		inside, known := hit(b.ZoneID(c), msg)
		if known && !inside {
			c.Close()
			return true
		}
	}
	return false
}

// ScrollLocked reports whether the host should freeze scrolling of what
// is behind the dialogs.
func (b *Behavior) ScrollLocked(snap *dialog.Snapshot) bool {
	return b.ScrollLock && ScrollLocked(snap, nil)
}

// ScrollLocked reports whether any open entry asks for scroll locking.
// A nil lock treats every open entry as asking for it.
func ScrollLocked(snap *dialog.Snapshot, lock func(dialog.Entry) bool) bool {
	if snap == nil {
		return false
	}
	for _, e := range snap.Entries {
		if e.IsOpen && (lock == nil || lock(e)) {
			return true
		}
	}
	return false
}

func zoneHit(id string, msg tea.MouseClickMsg) (inside, known bool) {
	zi := zone.Get(id)
	if zi == nil {
		return false, false
	}
	return zi.InBounds(msg), true
}
