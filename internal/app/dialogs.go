package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/GhostWriters/DialogStack/internal/logger"
	"github.com/GhostWriters/DialogStack/internal/ui"
	"github.com/GhostWriters/DialogStack/pkg/dialog"
)

// Registry keys of the demo dialogs.
const (
	DialogAlert   = "alert"
	DialogModal   = "modal"
	DialogConfirm = "confirm"
	DialogPrompt  = "prompt"
	DialogLayer   = "layer"
)

// NewRegistry binds the kit's components to s.
func NewRegistry(s *dialog.Store, kit *ui.Kit) *dialog.Registry {
	return dialog.NewRegistry(s, map[string]dialog.Definition{
		DialogAlert:   dialog.SyncDef{DisplayName: "Alert", Component: kit.Alert},
		DialogModal:   dialog.SyncDef{DisplayName: "Modal", Component: kit.Modal},
		DialogLayer:   dialog.SyncDef{DisplayName: "Stacked layer", Component: kit.Modal},
		DialogConfirm: dialog.AsyncDef{DisplayName: "Confirm", Component: kit.Confirm},
		DialogPrompt:  dialog.AsyncDef{DisplayName: "Prompt", Component: kit.Prompt},
	})
}

// resultMsg carries the outcome of an awaited dialog back into the program.
type resultMsg struct {
	key string
	res dialog.AsyncResult
	err error
}

// describe turns a result into one line of history.
func (m resultMsg) describe(name string) string {
	switch {
	case errors.Is(m.err, dialog.ErrDismissed):
		return name + ": dismissed"
	case errors.Is(m.err, context.Canceled):
		return name + ": abandoned"
	case m.err != nil:
		return fmt.Sprintf("%s: %v", name, m.err)
	}
	switch m.key {
	case DialogConfirm:
		if m.res.OK {
			return name + ": yes"
		}
		return name + ": no"
	case DialogPrompt:
		return fmt.Sprintf("%s: %q", name, m.res.Data)
	}
	return fmt.Sprintf("%s: ok=%v data=%v", name, m.res.OK, m.res.Data)
}

// await waits for p off the update loop and reports the result as a
// resultMsg.
func await(ctx context.Context, key string, p *dialog.Pending) tea.Cmd {
	return logger.RecoverCmd(ctx, func() tea.Msg {
		res, err := p.Wait(ctx)
		return resultMsg{key: key, res: res, err: err}
	})
}

// layerProps titles a stacked layer with its position among the open
// dialogs. The props are resolved on every render.
func layerProps(c *dialog.Controller) dialog.State {
	pos := c.Stack.Index + 1
	if pos == 0 {
		pos = c.Stack.Size
	}
	return dialog.State{
		"title":   fmt.Sprintf("Layer %d", pos),
		"body":    fmt.Sprintf("z-index %d, %d open.\nPress ctrl+n to stack another.", c.ZIndex, c.Stack.Size),
		"buttons": []string{" Close "},
	}
}
