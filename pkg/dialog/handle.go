package dialog

// Handle drives one entry from outside any view. All methods are bound to
// the entry's id and become no-ops once the entry is unmounted.
type Handle struct {
	store  *Store
	id     string
	zIndex int
}

// ID returns the entry id.
func (h *Handle) ID() string { return h.id }

// ZIndex returns the z-index assigned when the entry was opened.
func (h *Handle) ZIndex() int { return h.zIndex }

func (h *Handle) Close() { h.store.Close(h.id) }
func (h *Handle) Unmount() { h.store.Unmount(h.id) }
func (h *Handle) Update(u Updater) { h.store.Update(h.id, u) }
func (h *Handle) SetStatus(st Status) { h.store.SetStatus(h.id, st) }
func (h *Handle) Status() Status { return h.store.GetStatus(h.id) }
func (h *Handle) GetStatus() Status { return h.store.GetStatus(h.id) }

// Entry returns a copy of the entry as currently stored.
func (h *Handle) Entry() (Entry, bool) {
	return h.store.Get(h.id)
}
