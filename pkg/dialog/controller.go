package dialog

import (
	"github.com/mitchellh/mapstructure"
)

// Stack describes where an entry sits among the open entries. Closed
// entries are not counted.
type Stack struct {
	TopID  string
	HasTop bool
	Size   int
	Index  int // -1 when the entry itself is closed
}

// Controller is a per-render view over one entry. It is rebuilt whenever
// the stack changes and is never a source of truth: mutations go to the
// store by id.
type Controller struct {
	store *Store

	ID           string
	ComponentKey string
	IsOpen       bool
	ZIndex       int
	State        State
	Status       Status
	Stack        Stack

	// Resolve and Reject are set only for entries opened with OpenAsync.
	// They report whether this call settled the dialog.
	Resolve func(Payload) bool
	Reject  func(error) bool
}

// NewController builds the controller for e given the full entry list it
// belongs to.
func NewController(s *Store, e Entry, entries []Entry) *Controller {
	c := &Controller{
		store:        s,
		ID:           e.ID,
		ComponentKey: e.ComponentKey,
		IsOpen:       e.IsOpen,
		ZIndex:       e.ZIndex,
		State:        e.State,
		Status:       e.Meta.Status,
		Stack:        stackOf(e.ID, entries),
	}
	if st := e.async; st != nil {
		c.Resolve = st.resolve
		c.Reject = st.reject
	}
	return c
}

func stackOf(id string, entries []Entry) Stack {
	st := Stack{Index: -1}
	for _, e := range entries {
		if !e.IsOpen {
			continue
		}
		if e.ID == id {
			st.Index = st.Size
		}
		st.Size++
		st.TopID = e.ID
		st.HasTop = true
	}
	return st
}

// IsTop reports whether this entry is the topmost open entry.
func (c *Controller) IsTop() bool {
	return c.Stack.HasTop && c.Stack.TopID == c.ID
}

// Async reports whether the entry was opened with OpenAsync.
func (c *Controller) Async() bool {
	return c.Resolve != nil
}

func (c *Controller) Close() { c.store.Close(c.ID) }
func (c *Controller) Unmount() { c.store.Unmount(c.ID) }
func (c *Controller) CloseAll() { c.store.CloseAll() }
func (c *Controller) UnmountAll() { c.store.UnmountAll() }
func (c *Controller) Update(u Updater) { c.store.Update(c.ID, u) }
func (c *Controller) SetStatus(st Status) { c.store.SetStatus(c.ID, st) }

// GetProp returns state[key] when the key is present, even if its value is
// nil, and fallback otherwise.
func (c *Controller) GetProp(key string, fallback any) any {
	if v, ok := c.State[key]; ok {
		return v
	}
	return fallback
}

// GetProps overlays the state on top of base and returns the result.
func (c *Controller) GetProps(base State) State {
	return merge(base, c.State)
}

// DecodeProps decodes the state into out, which should be a pointer to a
// struct already holding the defaults. Fields are matched by their `prop`
// tag or, failing that, case-insensitively by name.
func (c *Controller) DecodeProps(out any) error {
	return Decode(c.State, out)
}

// Decode decodes a state map into a struct pointer, leaving fields that
// have no matching key untouched.
func Decode(src State, out any) error {
	if len(src) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "prop",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(src))
}
