package dialog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertComponent(c *Controller, props State) Layer {
	return textLayer(fmt.Sprintf("alert:%v", props["title"]))
}

func confirmComponent(c *Controller, props State) Layer {
	return textLayer(fmt.Sprintf("confirm:%v", props["message"]))
}

func newTestRegistry() *Registry {
	return NewRegistry(newTestStore(), map[string]Definition{
		"alert":   SyncDef{Component: alertComponent, DisplayName: "Alert"},
		"confirm": AsyncDef{Component: confirmComponent},
	})
}

func render1(t *testing.T, s *Store) string {
	t.Helper()
	snap := s.Snapshot()
	require.NotEmpty(t, snap.Entries)
	e := snap.Entries[len(snap.Entries)-1]
	return e.Renderer(NewController(s, e, snap.Entries)).View()
}

func TestRegistry_Keys(t *testing.T) {
	r := newTestRegistry()
	assert.Equal(t, []string{"alert", "confirm"}, r.Keys())
	assert.Equal(t, "Alert", r.DisplayName("alert"))
	assert.Equal(t, "confirm", r.DisplayName("confirm"))

	_, ok := r.Lookup("nope")
	assert.False(t, ok)
}

func TestRegistry_ShowRendersWithStaticProps(t *testing.T) {
	r := newTestRegistry()
	h, err := r.Show("alert", Static{"title": "Saved"})
	require.NoError(t, err)
	assert.Equal(t, 1000, h.ZIndex())

	assert.Equal(t, "alert:Saved", render1(t, r.Store))
}

func TestRegistry_PropsFuncSeesController(t *testing.T) {
	r := newTestRegistry()
	var seen *Controller
	p, err := r.Prompt("confirm", PropsFunc(func(c *Controller) State {
		seen = c
		return State{"message": c.ID}
	}), WithID("q1"))
	require.NoError(t, err)

	assert.Equal(t, "confirm:q1", render1(t, r.Store))
	require.NotNil(t, seen)
	require.NotNil(t, seen.Resolve)

	seen.Resolve(Payload{OK: true, Data: "yes"})
	res, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "yes", res.Data)
}

func TestRegistry_NilProps(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Show("alert", nil)
	require.NoError(t, err)
	assert.Equal(t, "alert:<nil>", render1(t, r.Store))
}

func TestRegistry_Errors(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Show("missing", nil)
	assert.ErrorIs(t, err, ErrUnknownDialog)
	_, err = r.Prompt("missing", nil)
	assert.ErrorIs(t, err, ErrUnknownDialog)

	_, err = r.Show("confirm", nil)
	assert.ErrorIs(t, err, ErrModeMismatch)
	_, err = r.Prompt("alert", nil)
	assert.ErrorIs(t, err, ErrModeMismatch)

	_, err = r.Sync("confirm")
	assert.ErrorIs(t, err, ErrModeMismatch)
	_, err = r.Async("alert")
	assert.ErrorIs(t, err, ErrModeMismatch)
	_, err = r.Sync("missing")
	assert.ErrorIs(t, err, ErrUnknownDialog)

	assert.Equal(t, 0, r.Len())
}

func TestRegistry_BoundOpeners(t *testing.T) {
	r := newTestRegistry()

	alert, err := r.Sync("alert")
	require.NoError(t, err)
	confirm, err := r.Async("confirm")
	require.NoError(t, err)

	_, err = alert(Static{"title": "a"})
	require.NoError(t, err)
	p, err := confirm(Static{"message": "m"})
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []int{1000, 1001}, zIndexes(r.Store))

	r.UnmountAll()
	_, err = p.Wait(context.Background())
	assert.ErrorIs(t, err, ErrDismissed)
}

func TestRegistry_DefinitionsAreCopied(t *testing.T) {
	defs := map[string]Definition{"alert": SyncDef{Component: alertComponent}}
	r := NewRegistry(newTestStore(), defs)
	defs["late"] = SyncDef{Component: alertComponent}

	_, ok := r.Lookup("late")
	assert.False(t, ok)
}
