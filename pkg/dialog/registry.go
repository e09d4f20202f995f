package dialog

import (
	"fmt"
	"maps"
	"slices"
)

// Component renders a registered dialog from its controller and the props
// supplied by the caller.
type Component func(c *Controller, props State) Layer

// Definition is a registry entry: either SyncDef or AsyncDef.
type Definition interface {
	component() Component
	displayName() string
}

// SyncDef registers a component opened with Store.Open.
type SyncDef struct {
	Component   Component
	DisplayName string
}

// AsyncDef registers a component opened with Store.OpenAsync.
type AsyncDef struct {
	Component   Component
	DisplayName string
}

func (d SyncDef) component() Component { return d.Component }
func (d SyncDef) displayName() string { return d.DisplayName }
func (d AsyncDef) component() Component { return d.Component }
func (d AsyncDef) displayName() string { return d.DisplayName }

// Props is the input of a registry call: Static props or a PropsFunc that
// derives them from the controller on every render.
type Props interface {
	resolve(c *Controller) State
}

// Static props are passed to the component unchanged.
type Static State

func (p Static) resolve(*Controller) State { return State(p) }

// PropsFunc computes props from the controller, which lets a caller wire
// Resolve or Reject inline.
type PropsFunc func(c *Controller) State

func (f PropsFunc) resolve(c *Controller) State {
	if f == nil {
		return nil
	}
	return f(c)
}

// SyncOpener and AsyncOpener are the per-key functions returned by
// Registry.Sync and Registry.Async.
type (
	SyncOpener  func(props Props, opts ...OpenOption) (*Handle, error)
	AsyncOpener func(props Props, opts ...OpenOption) (*Pending, error)
)

// Registry maps dialog keys to components on top of a Store. The embedded
// Store keeps every raw operation available unchanged.
type Registry struct {
	*Store
	defs map[string]Definition
}

// NewRegistry builds a registry over s. defs is copied.
func NewRegistry(s *Store, defs map[string]Definition) *Registry {
	return &Registry{Store: s, defs: maps.Clone(defs)}
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	return slices.Sorted(maps.Keys(r.defs))
}

// Lookup returns the definition registered under key.
func (r *Registry) Lookup(key string) (Definition, bool) {
	d, ok := r.defs[key]
	return d, ok
}

// DisplayName returns the definition's display name, or the key itself.
func (r *Registry) DisplayName(key string) string {
	if d, ok := r.defs[key]; ok && d.displayName() != "" {
		return d.displayName()
	}
	return key
}

// Show opens the sync dialog registered under key.
func (r *Registry) Show(key string, props Props, opts ...OpenOption) (*Handle, error) {
	def, ok := r.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialog, key)
	}
	switch d := def.(type) {
	case SyncDef:
		return r.Store.Open(render(d.Component, props), opts...)
	case AsyncDef:
		return nil, fmt.Errorf("%w: %q is async, use Prompt", ErrModeMismatch, key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialog, key)
	}
}

// Prompt opens the async dialog registered under key.
func (r *Registry) Prompt(key string, props Props, opts ...OpenOption) (*Pending, error) {
	def, ok := r.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialog, key)
	}
	switch d := def.(type) {
	case AsyncDef:
		return r.Store.OpenAsync(render(d.Component, props), opts...)
	case SyncDef:
		return nil, fmt.Errorf("%w: %q is sync, use Show", ErrModeMismatch, key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialog, key)
	}
}

// Sync returns an opener bound to a sync key.
func (r *Registry) Sync(key string) (SyncOpener, error) {
	def, ok := r.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialog, key)
	}
	if _, ok := def.(SyncDef); !ok {
		return nil, fmt.Errorf("%w: %q is not sync", ErrModeMismatch, key)
	}
	return func(props Props, opts ...OpenOption) (*Handle, error) {
		return r.Show(key, props, opts...)
	}, nil
}

// Async returns an opener bound to an async key.
func (r *Registry) Async(key string) (AsyncOpener, error) {
	def, ok := r.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialog, key)
	}
	if _, ok := def.(AsyncDef); !ok {
		return nil, fmt.Errorf("%w: %q is not async", ErrModeMismatch, key)
	}
	return func(props Props, opts ...OpenOption) (*Pending, error) {
		return r.Prompt(key, props, opts...)
	}, nil
}

func render(comp Component, props Props) Renderer {
	return func(c *Controller) Layer {
		var p State
		if props != nil {
			p = props.resolve(c)
		}
		return comp(c, p)
	}
}
