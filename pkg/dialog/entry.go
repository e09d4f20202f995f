package dialog

import "maps"

// Status is the coarse progress marker carried in an entry's metadata.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// State is the user-defined data of a dialog. A stored State is never
// mutated in place; every update swaps in a new map.
type State map[string]any

// clone returns a shallow copy, or nil for an empty state.
func (s State) clone() State {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// Layer is anything a renderer can produce: the store only needs it to
// have a view.
type Layer interface {
	View() string
}

// Renderer turns a controller into visible content. The store keeps it by
// reference and never calls it; renderer containers do.
type Renderer func(c *Controller) Layer

// Meta holds bookkeeping fields that are not part of the user state.
type Meta struct {
	Status Status
}

// Entry is one stacked dialog. Entries handed out by the store are copies
// with their own top-level State map; changing them has no effect on the
// store. Values nested inside State are shared.
type Entry struct {
	ID           string
	ComponentKey string
	Renderer     Renderer
	IsOpen       bool
	ZIndex       int
	State        State
	Meta         Meta

	async *settler
}

func (e Entry) copy() Entry {
	e.State = e.State.clone()
	return e
}

// Async reports whether the entry was created by OpenAsync.
func (e Entry) Async() bool {
	return e.async != nil
}

// Pending reports whether the entry is async and still waiting for a
// result.
func (e Entry) Pending() bool {
	return e.async != nil && !e.async.settled()
}
