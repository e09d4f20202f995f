package dialog

import "errors"

var (
	// ErrDuplicateID is returned by Open and OpenAsync when the requested id
	// belongs to an entry that is still in the store.
	ErrDuplicateID = errors.New("dialog: duplicate id")

	// ErrEmptyID is returned when the store's id generator produces "".
	ErrEmptyID = errors.New("dialog: id generator returned an empty id")

	// ErrNoController is the panic value of MustController when the context
	// was not produced by a renderer container.
	ErrNoController = errors.New("dialog: no controller in context")

	// ErrDismissed settles a pending async dialog whose entry was unmounted
	// before anyone resolved or rejected it.
	ErrDismissed = errors.New("dialog: dismissed before settlement")

	// ErrRejected is used when Reject is called without a reason.
	ErrRejected = errors.New("dialog: rejected")

	// ErrUnknownDialog is returned by the registry for keys it was not built with.
	ErrUnknownDialog = errors.New("dialog: unknown dialog key")

	// ErrModeMismatch is returned when a sync definition is opened through the
	// async path or the other way round.
	ErrModeMismatch = errors.New("dialog: mode mismatch")
)
