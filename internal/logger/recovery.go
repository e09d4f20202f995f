package logger

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// PanicMsg is returned by a command wrapped with RecoverCmd when it panics.
type PanicMsg struct {
	Value any
}

func (m PanicMsg) Error() string {
	return fmt.Sprintf("panic: %v", m.Value)
}

// Recover traps a panic, logs it with a stack trace and turns it into
// FatalError so that run() can clean up and exit.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(FatalError); ok {
		panic(r)
	}
	fatalSkip(ctx, 3, "panic: %v", r)
}

// RecoverCmd wraps a tea.Cmd so that a panic inside it is logged and
// delivered to the program as a PanicMsg instead of killing it.
func RecoverCmd(ctx context.Context, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				Error(ctx, "TUI Panic: %v", r)
				Error(ctx, stackLines(3))
				msg = PanicMsg{Value: r}
			}
		}()
		return cmd()
	}
}
