package dialog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func controllers(s *Store) map[string]*Controller {
	snap := s.Snapshot()
	out := make(map[string]*Controller, len(snap.Entries))
	for _, e := range snap.Entries {
		out[e.ID] = NewController(s, e, snap.Entries)
	}
	return out
}

func TestController_StackSkipsClosedEntries(t *testing.T) {
	s := newTestStore()
	a := s.MustOpen(staticView("a"), WithID("A"))
	b := s.MustOpen(staticView("b"), WithID("B"))
	c := s.MustOpen(staticView("c"), WithID("C"))
	b.Close()

	cs := controllers(s)

	assert.Equal(t, Stack{TopID: "C", HasTop: true, Size: 2, Index: 1}, cs[c.ID()].Stack)
	assert.Equal(t, Stack{TopID: "C", HasTop: true, Size: 2, Index: 0}, cs[a.ID()].Stack)
	assert.Equal(t, -1, cs[b.ID()].Stack.Index)
	assert.True(t, cs["C"].IsTop())
	assert.False(t, cs["A"].IsTop())
	assert.False(t, cs["B"].IsTop())
}

func TestController_NoOpenEntries(t *testing.T) {
	s := newTestStore()
	s.MustOpen(staticView("a"), WithID("A"))
	s.CloseAll()

	c := controllers(s)["A"]
	assert.Equal(t, Stack{Index: -1}, c.Stack)
	assert.False(t, c.IsTop())
}

func TestController_ForwardsToStore(t *testing.T) {
	s := newTestStore()
	s.MustOpen(staticView("a"), WithID("A"))
	s.MustOpen(staticView("b"), WithID("B"))

	c := controllers(s)["A"]
	c.Update(Patch{"title": "hello"})
	c.SetStatus(StatusDone)
	c.Close()

	e, _ := s.Get("A")
	assert.Equal(t, "hello", e.State["title"])
	assert.Equal(t, StatusDone, e.Meta.Status)
	assert.False(t, e.IsOpen)

	// The controller is a view of the past; it does not see its own writes.
	assert.True(t, c.IsOpen)

	c.CloseAll()
	c.Unmount()
	assert.Equal(t, 1, s.Len())
	c.UnmountAll()
	assert.Equal(t, 0, s.Len())
}

func TestController_SyncEntriesHaveNoResolve(t *testing.T) {
	s := newTestStore()
	s.MustOpen(staticView("a"), WithID("A"))

	c := controllers(s)["A"]
	assert.Nil(t, c.Resolve)
	assert.Nil(t, c.Reject)
	assert.False(t, c.Async())
}

func TestController_GetProp(t *testing.T) {
	s := newTestStore()
	s.MustOpen(staticView("a"), WithID("A"), WithState(State{"title": "t", "empty": nil, "zero": 0}))
	c := controllers(s)["A"]

	tests := []struct {
		name     string
		key      string
		fallback any
		want     any
	}{
		{name: "present", key: "title", fallback: "x", want: "t"},
		{name: "explicit nil wins over fallback", key: "empty", fallback: "x", want: nil},
		{name: "zero value wins over fallback", key: "zero", fallback: 5, want: 0},
		{name: "absent uses fallback", key: "missing", fallback: "x", want: "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.GetProp(tt.key, tt.fallback))
		})
	}
}

func TestController_GetProps(t *testing.T) {
	s := newTestStore()
	s.MustOpen(staticView("a"), WithID("A"), WithState(State{"title": "custom"}))
	c := controllers(s)["A"]

	base := State{"title": "Default", "ok": "OK"}
	got := c.GetProps(base)

	assert.Equal(t, State{"title": "custom", "ok": "OK"}, got)
	assert.Equal(t, "Default", base["title"], "defaults are not modified")
}

func TestController_DecodeProps(t *testing.T) {
	type props struct {
		Title   string `prop:"title"`
		Width   int    `prop:"width"`
		Confirm string `prop:"confirm"`
	}

	s := newTestStore()
	s.MustOpen(staticView("a"), WithID("A"), WithState(State{"title": "Delete?", "width": "48"}))
	c := controllers(s)["A"]

	p := props{Title: "Confirm", Width: 40, Confirm: "Yes"}
	require.NoError(t, c.DecodeProps(&p))
	assert.Equal(t, props{Title: "Delete?", Width: 48, Confirm: "Yes"}, p)
}

func TestController_DecodePropsEmptyState(t *testing.T) {
	type props struct{ Title string }

	s := newTestStore()
	s.MustOpen(staticView("a"), WithID("A"))
	p := props{Title: "keep"}
	require.NoError(t, controllers(s)["A"].DecodeProps(&p))
	assert.Equal(t, "keep", p.Title)
}

func TestContext_Controller(t *testing.T) {
	s := newTestStore()
	s.MustOpen(staticView("a"), WithID("A"))
	c := controllers(s)["A"]

	ctx := WithController(context.Background(), c)
	got, ok := ControllerFrom(ctx)
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Same(t, c, MustController(ctx))
}

func TestContext_MissingControllerPanics(t *testing.T) {
	_, ok := ControllerFrom(context.Background())
	assert.False(t, ok)
	assert.PanicsWithValue(t, ErrNoController, func() {
		MustController(context.Background())
	})
}
