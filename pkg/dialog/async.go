package dialog

import (
	"context"
	"sync"
)

// Payload is what a dialog reports back to the code awaiting it.
type Payload struct {
	OK   bool
	Data any
}

// settler is a one-shot result slot. The first resolve or reject wins.
type settler struct {
	once    sync.Once
	done    chan struct{}
	payload Payload
	err     error
}

func newSettler() *settler {
	return &settler{done: make(chan struct{})}
}

func (st *settler) resolve(p Payload) bool {
	settled := false
	st.once.Do(func() {
		st.payload = p
		close(st.done)
		settled = true
	})
	return settled
}

func (st *settler) reject(err error) bool {
	if err == nil {
		err = ErrRejected
	}
	settled := false
	st.once.Do(func() {
		st.err = err
		close(st.done)
		settled = true
	})
	return settled
}

func (st *settler) settled() bool {
	select {
	case <-st.done:
		return true
	default:
		return false
	}
}

// AsyncResult is the settled outcome of OpenAsync: the entry's control
// surface plus what the dialog resolved with.
type AsyncResult struct {
	*Handle
	OK   bool
	Data any
}

// Pending is the caller's side of an async dialog.
type Pending struct {
	handle *Handle
	st     *settler
}

// Handle returns the control surface of the underlying entry. It is usable
// before the dialog settles.
func (p *Pending) Handle() *Handle {
	return p.handle
}

// Done is closed once the dialog has been resolved or rejected.
func (p *Pending) Done() <-chan struct{} {
	return p.st.done
}

// Wait blocks until the dialog settles or ctx ends. A rejected dialog
// returns the rejection reason as the error.
func (p *Pending) Wait(ctx context.Context) (AsyncResult, error) {
	select {
	case <-p.st.done:
	case <-ctx.Done():
		return AsyncResult{Handle: p.handle}, ctx.Err()
	}
	if p.st.err != nil {
		return AsyncResult{Handle: p.handle}, p.st.err
	}
	return AsyncResult{Handle: p.handle, OK: p.st.payload.OK, Data: p.st.payload.Data}, nil
}
