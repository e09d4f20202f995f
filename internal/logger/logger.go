package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/lmittmann/tint"
)

// Helper to resolve message from any type to string
func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		var parts []string
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

// logAt formats msg with args when it carries verbs, otherwise args are
// attached as attributes. Multi-line messages become one record per line.
func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	msgStr := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil
	}

	if !strings.Contains(msgStr, "\n") {
		r := slog.NewRecord(t, level, msgStr, 0)
		r.Add(args...)
		_ = h.Handle(ctx, r)
		return
	}

	for i, line := range strings.Split(msgStr, "\n") {
		r := slog.NewRecord(t, level, line, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

// Custom log levels. Notice is the default console level.
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

// LevelVar allows dynamic changing of the log level
var LevelVar = new(slog.LevelVar)
var FileLevelVar = new(slog.LevelVar)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	// File level should be at least Info, or lower if Debug is requested
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

// ParseLevel maps a level name from the config file or the command line.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "", "notice":
		return LevelNotice, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelNotice, fmt.Errorf("unknown log level %q", s)
}

func levelLabel(level slog.Level) string {
	switch level {
	case LevelTrace:
		return "[TRACE ]"
	case LevelDebug:
		return "[DEBUG ]"
	case LevelInfo:
		return "[INFO  ]"
	case LevelNotice:
		return "[NOTICE]"
	case LevelWarn:
		return "[WARN  ]"
	case LevelError:
		return "[ERROR ]"
	case LevelFatal:
		return "[FATAL ]"
	}
	return "[" + level.String() + "]"
}

func levelColor(level slog.Level) string {
	switch {
	case level >= LevelFatal:
		return "\x1b[41;97m"
	case level >= LevelError:
		return "\x1b[31m"
	case level >= LevelWarn:
		return "\x1b[33m"
	case level >= LevelNotice:
		return "\x1b[32m"
	}
	return "\x1b[34m"
}

// Options selects where log records go.
type Options struct {
	// Console receives colored output when it is a terminal. Nil means
	// stderr; io.Discard silences the console, as the TUI does.
	Console io.Writer
	// File, when set, receives uncolored output at FileLevelVar.
	File string
}

var (
	fileMu  sync.Mutex
	logFile *os.File
)

// NewLogger builds the fan-out logger used as the slog default.
func NewLogger(opts Options) *slog.Logger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	isTTY := false
	if f, ok := console.(*os.File); ok {
		if stat, err := f.Stat(); err == nil {
			isTTY = stat.Mode()&os.ModeCharDevice != 0
		}
	}

	replaceAttrConsole := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			level := a.Value.Any().(slog.Level)
			label := levelLabel(level)
			if isTTY {
				label = levelColor(level) + label + ansi.ResetStyle
			}
			a.Value = slog.StringValue(label + "  ")
		}
		return a
	}

	handlers := []slog.Handler{tint.NewHandler(console, &tint.Options{
		Level:       LevelVar,
		TimeFormat:  "2006-01-02 15:04:05",
		NoColor:     !isTTY,
		ReplaceAttr: replaceAttrConsole,
	})}

	if opts.File != "" {
		w, err := openFile(opts.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		} else {
			replaceAttrFile := func(groups []string, a slog.Attr) slog.Attr {
				switch a.Key {
				case slog.LevelKey:
					a.Value = slog.StringValue(levelLabel(a.Value.Any().(slog.Level)) + "  ")
				case slog.MessageKey:
					a.Value = slog.StringValue(ansi.Strip(a.Value.String()))
				}
				return a
			}
			handlers = append(handlers, tint.NewHandler(w, &tint.Options{
				Level:       FileLevelVar,
				TimeFormat:  "2006-01-02 15:04:05",
				NoColor:     true,
				ReplaceAttr: replaceAttrFile,
			}))
		}
	}

	return slog.New(&FanoutHandler{handlers: handlers})
}

func openFile(path string) (*os.File, error) {
	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logFile = f
	return f, nil
}

// Cleanup closes the log file, if any.
func Cleanup() {
	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// Global helpers for custom levels that don't satisfy standard slog methods
func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}

// Fatal logs msg with a stack trace at LevelFatal and panics with
// FatalError, which run() turns into exit code 1.
func Fatal(ctx context.Context, msg any, args ...any) {
	fatalSkip(ctx, 2, msg, args...)
}

func fatalSkip(ctx context.Context, skip int, msg any, args ...any) {
	now := time.Now()
	if len(args) > 0 {
		msg = fmt.Sprintf(resolveMsg(msg), args...)
	}
	output := []any{
		"### BEGIN STACK TRACE ###",
		stackLines(skip + 1),
		"### END STACK TRACE ###",
		"",
		msg,
	}
	logAt(ctx, now, LevelFatal, output)
	panic(FatalError{})
}

// stackLines renders the caller frames, outermost first.
func stackLines(skip int) []string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pc)
	frames := runtime.CallersFrames(pc[:n])

	var all []runtime.Frame
	for {
		frame, more := frames.Next()
		all = append(all, frame)
		if !more {
			break
		}
	}

	width := len(fmt.Sprint(len(all) - 1))
	lines := make([]string, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		f := all[i]
		lines = append(lines, fmt.Sprintf("  %*d: %s:%d (%s)", width, i, f.File, f.Line, f.Function))
	}
	return lines
}

// FatalError is a special error used to panic from Fatal logger calls
// This allows the main run loop to recover and perform cleanup before exiting
type FatalError struct{}

func (FatalError) Error() string { return "fatal error" }
