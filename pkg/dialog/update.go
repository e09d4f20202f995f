package dialog

// Updater describes a state change for Store.Update. The concrete kinds are
// Patch, UpdateFunc and Replace.
type Updater interface {
	apply(prev State) (next State, ok bool)
}

// Patch is shallow-merged over the previous state. Keys absent from the
// patch keep their values. A nil Patch is discarded.
type Patch State

func (p Patch) apply(prev State) (State, bool) {
	if p == nil {
		return nil, false
	}
	return merge(prev, State(p)), true
}

// UpdateFunc computes a patch from the previous state. Returning nil
// discards the update, which is the way to express "no change".
type UpdateFunc func(prev State) State

func (f UpdateFunc) apply(prev State) (State, bool) {
	if f == nil {
		return nil, false
	}
	next := f(prev.clone())
	if next == nil {
		return nil, false
	}
	return merge(prev, next), true
}

// Replace swaps the whole state for the given one. A nil Replace is discarded.
type Replace State

func (r Replace) apply(State) (State, bool) {
	if r == nil {
		return nil, false
	}
	return State(r).clone(), true
}

func merge(prev, next State) State {
	out := make(State, len(prev)+len(next))
	for k, v := range prev {
		out[k] = v
	}
	for k, v := range next {
		out[k] = v
	}
	return out
}
