package dialog

import "context"

type controllerKey struct{}

// WithController returns a context carrying c. Renderer containers call it
// once per entry so nested views can find their controller.
func WithController(ctx context.Context, c *Controller) context.Context {
	return context.WithValue(ctx, controllerKey{}, c)
}

// ControllerFrom returns the nearest controller in ctx.
func ControllerFrom(ctx context.Context) (*Controller, bool) {
	c, ok := ctx.Value(controllerKey{}).(*Controller)
	return c, ok && c != nil
}

// MustController returns the nearest controller in ctx and panics with
// ErrNoController when called outside a renderer container.
func MustController(ctx context.Context) *Controller {
	c, ok := ControllerFrom(ctx)
	if !ok {
		panic(ErrNoController)
	}
	return c
}
