package dialog

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultBaseZIndex is the z-index floor used when WithBaseZIndex is not given.
const DefaultBaseZIndex = 1000

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBaseZIndex sets the first auto-assigned z-index and the value the
// allocator returns to whenever the store becomes empty.
func WithBaseZIndex(z int) StoreOption {
	return func(s *Store) {
		s.base = z
	}
}

// WithIDGenerator replaces the default "dialog-<seq>" id scheme. seq starts
// at 1 for every store.
func WithIDGenerator(gen func(seq uint64) string) StoreOption {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithKeyGenerator replaces the default component key generator (random UUIDs).
func WithKeyGenerator(gen func() string) StoreOption {
	return func(s *Store) {
		if gen != nil {
			s.newKey = gen
		}
	}
}

func defaultID(seq uint64) string {
	return fmt.Sprintf("dialog-%d", seq)
}

func defaultKey() string {
	return uuid.NewString()
}

// OpenOption configures a single Open or OpenAsync call.
type OpenOption func(*openOptions)

type openOptions struct {
	id           string
	componentKey string
	zIndex       int
	hasZIndex    bool
	state        State
}

// WithID opens the entry under an explicit id instead of a generated one.
func WithID(id string) OpenOption {
	return func(o *openOptions) {
		o.id = id
	}
}

// WithZIndex places the entry at an explicit z-index. Later automatic
// assignments continue above it.
func WithZIndex(z int) OpenOption {
	return func(o *openOptions) {
		o.zIndex = z
		o.hasZIndex = true
	}
}

// WithComponentKey sets the remount key. Changing it is how a caller forces
// a host to discard any per-instance view state.
func WithComponentKey(key string) OpenOption {
	return func(o *openOptions) {
		o.componentKey = key
	}
}

// WithState seeds the entry's state.
func WithState(st State) OpenOption {
	return func(o *openOptions) {
		o.state = st.clone()
	}
}
