package dialogtea

import (
	"context"
	"log/slog"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/GhostWriters/DialogStack/pkg/dialog"
)

// ChangedMsg is delivered after the store changed. A container only
// reacts to messages coming from its own store.
type ChangedMsg struct {
	store *dialog.Store
}

// Store returns the store that changed.
func (m ChangedMsg) Store() *dialog.Store { return m.store }

// Handler is implemented by layers that want keyboard or mouse input. Only
// the topmost open layer receives it. ctx carries the layer's controller,
// see dialog.ControllerFrom.
type Handler interface {
	HandleMsg(ctx context.Context, msg tea.Msg) tea.Cmd
}

// Rendered is one entry together with what its renderer produced.
type Rendered struct {
	Entry      dialog.Entry
	Controller *dialog.Controller
	Layer      dialog.Layer
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.log = l
		}
	}
}

// WithContext sets the parent of the contexts passed to Handler.HandleMsg.
// When it ends the container stops listening to the store.
func WithContext(ctx context.Context) Option {
	return func(c *Container) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithBehavior installs the close-on-esc and close-on-outside-click policies.
func WithBehavior(b *Behavior) Option {
	return func(c *Container) {
		c.behavior = b
	}
}

// WithExitDelay makes the container unmount every closed entry d after
// it was closed, which leaves closed layers on screen for an exit
// transition. Without it closed entries stay until someone unmounts them.
func WithExitDelay(d time.Duration) Option {
	return func(c *Container) {
		c.autoUnmount = true
		c.exitDelay = d
	}
}

type unmountMsg struct {
	store *dialog.Store
	id    string
	key   string
}

// Container renders the entries of one dialog.Store inside a Bubble Tea
// program. It owns a store subscription and turns every change into a
// ChangedMsg so that the program re-renders.
type Container struct {
	store    *dialog.Store
	log      *slog.Logger
	ctx      context.Context
	behavior *Behavior

	autoUnmount bool
	exitDelay   time.Duration
	exiting     map[string]string // id -> component key of scheduled unmounts

	changes     chan struct{}
	done        chan struct{}
	unsubscribe func()

	// controllers built for the snapshot with version memoVersion
	memo        map[string]*dialog.Controller
	memoVersion uint64
	memoValid   bool
}

// New returns a container for s. Call Init to start listening.
func New(s *dialog.Store, opts ...Option) *Container {
	c := &Container{
		store:   s,
		log:     slog.New(slog.DiscardHandler),
		ctx:     context.Background(),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		exiting: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the store the container renders.
func (c *Container) Store() *dialog.Store {
	return c.store
}

// Init subscribes to the store and returns the command that waits for the
// first change. The subscription ends with Close or with the container's
// context.
func (c *Container) Init() tea.Cmd {
	if c.unsubscribe == nil {
		c.unsubscribe = c.store.Subscribe(func() {
			select {
			case c.changes <- struct{}{}:
			default:
			}
		})
		// The context ending means nobody drains changes any more.
		context.AfterFunc(c.ctx, c.unsubscribe)
	}
	return c.waitForChange()
}

// Close stops listening to the store. The container can still render.
func (c *Container) Close() {
	if c.unsubscribe == nil {
		return
	}
	c.unsubscribe()
	c.unsubscribe = nil
	close(c.done)
}

func (c *Container) waitForChange() tea.Cmd {
	changes, done, ctx, s := c.changes, c.done, c.ctx, c.store
	return func() tea.Msg {
		select {
		case <-changes:
			return ChangedMsg{store: s}
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// Update handles store changes and routes input to the topmost open layer.
// The behavior, when installed, sees input first; if it acts on a message
// the layer does not get it.
func (c *Container) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ChangedMsg:
		if msg.store != c.store {
			return nil
		}
		snap := c.store.Snapshot()
		c.log.Debug("dialog stack changed", "version", snap.Version, "entries", len(snap.Entries))
		return tea.Batch(c.waitForChange(), c.scheduleUnmounts(snap))

	case unmountMsg:
		if msg.store != c.store {
			return nil
		}
		delete(c.exiting, msg.id)
		if e, ok := c.store.Get(msg.id); ok && !e.IsOpen && e.ComponentKey == msg.key {
			c.log.Debug("unmounting closed dialog", "id", msg.id)
			c.store.Unmount(msg.id)
		}
		return nil

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg, tea.PasteMsg:
		return c.route(msg)
	}
	return nil
}

func (c *Container) scheduleUnmounts(snap *dialog.Snapshot) tea.Cmd {
	if !c.autoUnmount {
		return nil
	}
	live := make(map[string]bool, len(snap.Entries))
	var cmds []tea.Cmd
	for _, e := range snap.Entries {
		live[e.ID] = true
		if e.IsOpen {
			continue
		}
		if key, ok := c.exiting[e.ID]; ok && key == e.ComponentKey {
			continue
		}
		c.exiting[e.ID] = e.ComponentKey
		msg := unmountMsg{store: c.store, id: e.ID, key: e.ComponentKey}
		cmds = append(cmds, tea.Tick(c.exitDelay, func(time.Time) tea.Msg { return msg }))
	}
	for id := range c.exiting {
		if !live[id] {
			delete(c.exiting, id)
		}
	}
	return tea.Batch(cmds...)
}

func (c *Container) route(msg tea.Msg) tea.Cmd {
	r, ok := c.Top()
	if !ok {
		return nil
	}
	if c.behavior != nil && c.behavior.Handle(r.Controller, msg) {
		c.log.Debug("dialog closed by behavior", "id", r.Entry.ID)
		return nil
	}
	h, ok := r.Layer.(Handler)
	if !ok {
		return nil
	}
	return h.HandleMsg(dialog.WithController(c.ctx, r.Controller), msg)
}

// Top renders and returns the topmost open entry.
func (c *Container) Top() (Rendered, bool) {
	snap := c.store.Snapshot()
	for i := len(snap.Entries) - 1; i >= 0; i-- {
		e := snap.Entries[i]
		if !e.IsOpen {
			continue
		}
		return c.render(snap, e), true
	}
	return Rendered{}, false
}

// Layers renders every entry, open or closed, in collection order.
func (c *Container) Layers() []Rendered {
	snap := c.store.Snapshot()
	out := make([]Rendered, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		out = append(out, c.render(snap, e))
	}
	return out
}

func (c *Container) render(snap *dialog.Snapshot, e dialog.Entry) Rendered {
	ctrl := c.controller(snap, e)
	var layer dialog.Layer
	if e.Renderer != nil {
		layer = e.Renderer(ctrl)
	}
	return Rendered{Entry: e, Controller: ctrl, Layer: layer}
}

// controller returns the memoized controller for e. Controllers are
// rebuilt only when the snapshot changes.
func (c *Container) controller(snap *dialog.Snapshot, e dialog.Entry) *dialog.Controller {
	if !c.memoValid || c.memoVersion != snap.Version {
		c.memo = make(map[string]*dialog.Controller, len(snap.Entries))
		c.memoVersion = snap.Version
		c.memoValid = true
	}
	if ctrl, ok := c.memo[e.ID]; ok {
		return ctrl
	}
	ctrl := dialog.NewController(c.store, e, snap.Entries)
	c.memo[e.ID] = ctrl
	return ctrl
}

// View composites every layer over background in ascending z-index. Ties
// keep collection order. An empty background is replaced by a blank
// width x height canvas.
func (c *Container) View(width, height int, background string) string {
	if background == "" {
		background = Canvas(width, height)
	}
	layers := c.Layers()
	slices.SortStableFunc(layers, func(a, b Rendered) int {
		return a.Entry.ZIndex - b.Entry.ZIndex
	})

	out := background
	for _, r := range layers {
		if r.Layer == nil {
			continue
		}
		var p Placement
		if pl, ok := r.Layer.(Placed); ok {
			p = pl.Placement()
		}
		out = Overlay(r.Layer.View(), out, p)
	}
	return out
}
