package dialog

import (
	"fmt"
	"slices"
	"sync"
)

// Snapshot is an immutable view of the store. The store hands out the same
// pointer until something changes, so comparing pointers is enough to skip
// redundant renders.
type Snapshot struct {
	Entries []Entry
	Version uint64
}

type listener struct {
	id uint64
	fn func()
}

// Store owns an ordered stack of dialog entries. The oldest entry is first,
// the topmost is last. A Store is safe for use from multiple goroutines;
// listeners are called on the goroutine that made the change, after the
// store's lock has been released and before the mutating call returns.
type Store struct {
	mu sync.Mutex

	entries []Entry
	base    int
	nextZ   int
	seq     uint64
	version uint64
	snap    *Snapshot

	listeners  []listener
	listenerID uint64

	newID  func(seq uint64) string
	newKey func() string
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		base:   DefaultBaseZIndex,
		newID:  defaultID,
		newKey: defaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.nextZ = s.base
	return s
}

// BaseZIndex returns the configured z-index floor.
func (s *Store) BaseZIndex() int {
	return s.base
}

// Open adds a new topmost entry. It fails with ErrDuplicateID, without
// touching the store, when the id is already taken.
func (s *Store) Open(r Renderer, opts ...OpenOption) (*Handle, error) {
	e, err := s.insert(r, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Handle{store: s, id: e.ID, zIndex: e.ZIndex}, nil
}

// MustOpen is Open for call sites where a duplicate id is a bug.
func (s *Store) MustOpen(r Renderer, opts ...OpenOption) *Handle {
	h, err := s.Open(r, opts...)
	if err != nil {
		panic(err)
	}
	return h
}

// OpenAsync adds a new topmost entry whose controller carries Resolve and
// Reject. The returned Pending settles exactly once.
func (s *Store) OpenAsync(r Renderer, opts ...OpenOption) (*Pending, error) {
	st := newSettler()
	e, err := s.insert(r, st, opts)
	if err != nil {
		return nil, err
	}
	return &Pending{handle: &Handle{store: s, id: e.ID, zIndex: e.ZIndex}, st: st}, nil
}

func (s *Store) insert(r Renderer, st *settler, opts []OpenOption) (Entry, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	s.mu.Lock()
	id := o.id
	if id == "" {
		// A generator can only collide with live entries, so more tries
		// than that means it keeps repeating itself.
		free := false
		for range len(s.entries) + 1 {
			s.seq++
			id = s.newID(s.seq)
			if id != "" && s.indexOf(id) < 0 {
				free = true
				break
			}
		}
		if !free {
			s.mu.Unlock()
			if id == "" {
				return Entry{}, ErrEmptyID
			}
			return Entry{}, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
	} else if s.indexOf(id) >= 0 {
		s.mu.Unlock()
		return Entry{}, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}

	z := s.nextZ
	if o.hasZIndex {
		z = o.zIndex
		s.nextZ = max(s.nextZ, z+1)
	} else {
		s.nextZ++
	}

	key := o.componentKey
	if key == "" {
		key = s.newKey()
	}

	e := Entry{
		ID:           id,
		ComponentKey: key,
		Renderer:     r,
		IsOpen:       true,
		ZIndex:       z,
		State:        o.state,
		Meta:         Meta{Status: StatusIdle},
		async:        st,
	}
	s.entries = append(s.entries, e)
	s.touch()
	s.mu.Unlock()

	s.notify()
	return e, nil
}

// Close marks an entry as closed without removing it, so a view can play
// an exit transition. An empty id targets the topmost entry. Closing an
// unknown or already closed entry does nothing.
func (s *Store) Close(id string) {
	s.mu.Lock()
	i := s.target(id)
	if i < 0 || !s.entries[i].IsOpen {
		s.mu.Unlock()
		return
	}
	s.entries[i].IsOpen = false
	s.touch()
	s.mu.Unlock()

	s.notify()
}

// Unmount removes an entry. An empty id targets the last entry whether or
// not it is open. When the store becomes empty the z-index allocator goes
// back to the base value. An unsettled async entry is rejected with
// ErrDismissed.
func (s *Store) Unmount(id string) {
	s.mu.Lock()
	i := s.target(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.entries[i]
	s.entries = slices.Delete(s.entries, i, i+1)
	if len(s.entries) == 0 {
		s.nextZ = s.base
	}
	s.touch()
	s.mu.Unlock()

	dismiss(removed)
	s.notify()
}

// CloseAll closes every open entry in one change.
func (s *Store) CloseAll() {
	s.mu.Lock()
	changed := false
	for i := range s.entries {
		if s.entries[i].IsOpen {
			s.entries[i].IsOpen = false
			changed = true
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.touch()
	s.mu.Unlock()

	s.notify()
}

// UnmountAll empties the store and resets the z-index allocator.
func (s *Store) UnmountAll() {
	s.mu.Lock()
	removed := s.entries
	s.entries = nil
	s.nextZ = s.base
	if len(removed) == 0 {
		s.mu.Unlock()
		return
	}
	s.touch()
	s.mu.Unlock()

	for _, e := range removed {
		dismiss(e)
	}
	s.notify()
}

// Update applies u to the entry's state. Unknown ids and discarded
// updates leave the store untouched and notify nobody.
func (s *Store) Update(id string, u Updater) {
	if u == nil {
		return
	}
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	next, ok := u.apply(s.entries[i].State)
	if !ok {
		s.mu.Unlock()
		return
	}
	s.entries[i].State = next
	s.touch()
	s.mu.Unlock()

	s.notify()
}

// SetStatus sets the entry's status. Setting the current value again is
// not a change.
func (s *Store) SetStatus(id string, status Status) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || s.entries[i].Meta.Status == status {
		s.mu.Unlock()
		return
	}
	s.entries[i].Meta.Status = status
	s.touch()
	s.mu.Unlock()

	s.notify()
}

// GetStatus returns the entry's status, or StatusIdle for unknown ids.
func (s *Store) GetStatus(id string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.entries[i].Meta.Status
	}
	return StatusIdle
}

// Get returns a copy of the entry with the given id.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.entries[i].copy(), true
	}
	return Entry{}, false
}

// Len returns the number of entries, open or closed.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Subscribe registers fn to be called after every change. The returned
// function removes it; calling it more than once is harmless.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	s.listenerID++
	id := s.listenerID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool {
			return l.id == id
		})
	}
}

// Snapshot returns the current state of the stack. The same snapshot is
// handed to every caller until the next change, so treat it as read-only;
// writes to it never reach the store.
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		entries := make([]Entry, len(s.entries))
		for i, e := range s.entries {
			entries[i] = e.copy()
		}
		s.snap = &Snapshot{Entries: entries, Version: s.version}
	}
	return s.snap
}

// touch records a change. Callers hold s.mu.
func (s *Store) touch() {
	s.version++
	s.snap = nil
}

func (s *Store) notify() {
	s.mu.Lock()
	ls := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range ls {
		l.fn()
	}
}

// target resolves an optional id to an index. Callers hold s.mu.
func (s *Store) target(id string) int {
	if id == "" {
		return len(s.entries) - 1
	}
	return s.indexOf(id)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool {
		return e.ID == id
	})
}

func dismiss(e Entry) {
	if e.async != nil {
		e.async.reject(ErrDismissed)
	}
}
