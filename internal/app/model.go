// Package app is the demo program: a scrollable history behind a stack of
// dialogs driven by a dialog.Store.
package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	zone "github.com/lrstanley/bubblezone/v2"

	"github.com/GhostWriters/DialogStack/internal/config"
	"github.com/GhostWriters/DialogStack/internal/logger"
	"github.com/GhostWriters/DialogStack/internal/ui"
	"github.com/GhostWriters/DialogStack/internal/version"
	"github.com/GhostWriters/DialogStack/pkg/dialog"
	"github.com/GhostWriters/DialogStack/pkg/dialogtea"
)

// ConfigReloadedMsg is sent when the config file changed on disk.
type ConfigReloadedMsg struct {
	Config config.AppConfig
	Err    error
}

// Model is the root tea.Model of the demo.
type Model struct {
	ctx context.Context
	cfg config.AppConfig

	keys      KeyMap
	kit       *ui.Kit
	behavior  *dialogtea.Behavior
	store     *dialog.Store
	registry  *dialog.Registry
	container *dialogtea.Container
	help      help.Model

	width  int
	height int
	ready  bool

	history []string
	offset  int // first history line shown
}

// Option configures a Model.
type Option func(*Model)

// WithZonePrefix namespaces the model's mouse zones. Programs sharing the
// global zone manager, such as SSH sessions, need distinct prefixes.
func WithZonePrefix(prefix string) Option {
	return func(m *Model) {
		m.behavior.ZonePrefix = prefix
	}
}

// New builds the demo around s. The store is passed in so that the caller
// can observe it, for example with a metrics collector.
func New(ctx context.Context, cfg config.AppConfig, s *dialog.Store, log *slog.Logger, opts ...Option) Model {
	b := dialogtea.NewBehavior()
	applyBehavior(b, cfg.Behavior)
	kit := ui.NewKit(cfg.UI, b)
	kit.Log = log

	m := Model{
		ctx:      ctx,
		cfg:      cfg,
		keys:     Keys,
		kit:      kit,
		behavior: b,
		store:    s,
		registry: NewRegistry(s, kit),
		container: dialogtea.New(s,
			dialogtea.WithLogger(log),
			dialogtea.WithContext(ctx),
			dialogtea.WithBehavior(b),
			dialogtea.WithExitDelay(time.Duration(cfg.UI.ExitDelayMS)*time.Millisecond),
		),
		help:    help.New(),
		history: []string{version.String()},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func applyBehavior(b *dialogtea.Behavior, cfg config.BehaviorConfig) {
	b.CloseOnEsc = cfg.CloseOnEsc
	b.CloseOnOutsideClick = cfg.CloseOnOutsideClick
	b.ScrollLock = cfg.ScrollLock
}

// Store returns the dialog store the model renders.
func (m Model) Store() *dialog.Store {
	return m.store
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.container.Init()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(msg.Width)
		m.ready = true
		return m, nil

	case resultMsg:
		m.record(msg.describe(m.registry.DisplayName(msg.key)))
		if msg.key == DialogPrompt && msg.err == nil && msg.res.OK {
			if name, _ := msg.res.Data.(string); name != "" {
				m.show(DialogAlert, dialog.Static{"title": "Hello", "message": "Hello, " + name + "!"})
				return m, nil
			}
		}
		return m, nil

	case ConfigReloadedMsg:
		if msg.Err != nil {
			logger.Warn(m.ctx, "Config reload failed: %v", msg.Err)
			m.record("config: " + msg.Err.Error())
			return m, nil
		}
		m.applyConfig(msg.Config)
		m.record("config reloaded")
		return m, nil

	case logger.PanicMsg:
		m.record(msg.Error())
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		if !m.behavior.ScrollLocked(m.store.Snapshot()) {
			switch msg.Button {
			case tea.MouseWheelUp:
				m.scroll(-1)
			case tea.MouseWheelDown:
				m.scroll(1)
			}
			return m, nil
		}
	}

	return m, m.container.Update(msg)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Nested):
		m.show(DialogLayer, dialog.PropsFunc(layerProps))
		return m, nil
	case key.Matches(msg, m.keys.CloseAll):
		m.store.CloseAll()
		return m, nil
	case key.Matches(msg, m.keys.UnmountAll):
		m.store.UnmountAll()
		return m, nil
	}

	// With a dialog open every other key belongs to it.
	if _, open := m.container.Top(); open {
		return m, m.container.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	case key.Matches(msg, m.keys.Alert):
		m.show(DialogAlert, dialog.Static{
			"title":   "Alert",
			"message": "Dialogs stack on top of each other.\nEsc or a click outside closes the top one.",
		})
		return m, nil
	case key.Matches(msg, m.keys.Modal):
		m.show(DialogModal, dialog.Static{
			"title":    "Modal",
			"body":     "Pick a button.",
			"buttons":  []string{" One ", " Two ", " Three "},
			"position": "top",
		})
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		cmd := m.prompt(DialogConfirm, dialog.Static{
			"title":    "Confirm",
			"question": "Do you want to continue?",
		})
		return m, cmd
	case key.Matches(msg, m.keys.Prompt):
		cmd := m.prompt(DialogPrompt, dialog.Static{
			"title":       "Prompt",
			"label":       "What is your name?",
			"placeholder": "name",
		})
		return m, cmd
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.container.Close()
	return m, tea.Quit
}

// show opens a sync dialog. Errors are reported in the history.
func (m *Model) show(name string, props dialog.Props) {
	h, err := m.registry.Show(name, props)
	if err != nil {
		logger.Error(m.ctx, "Opening %s: %v", name, err)
		m.record(err.Error())
		return
	}
	logger.Debug(m.ctx, "Opened %s as %s (z %d)", name, h.ID(), h.ZIndex())
}

// prompt opens an async dialog and returns the command that awaits it.
func (m *Model) prompt(name string, props dialog.Props) tea.Cmd {
	p, err := m.registry.Prompt(name, props)
	if err != nil {
		logger.Error(m.ctx, "Opening %s: %v", name, err)
		m.record(err.Error())
		return nil
	}
	logger.Debug(m.ctx, "Opened %s as %s (z %d)", name, p.Handle().ID(), p.Handle().ZIndex())
	return await(m.ctx, name, p)
}

func (m *Model) applyConfig(cfg config.AppConfig) {
	m.cfg = cfg
	applyBehavior(m.behavior, cfg.Behavior)
	m.kit.Styles = ui.NewStyles(cfg.UI)
	if lvl, err := logger.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
}

func (m *Model) record(line string) {
	m.history = append(m.history, line)
	// Keep the newest line in view.
	if rows := m.contentHeight(); rows > 0 && len(m.history)-m.offset > rows {
		m.offset = len(m.history) - rows
	}
}

func (m *Model) scroll(delta int) {
	rows := max(m.contentHeight(), 1)
	m.offset = min(max(m.offset+delta, 0), max(len(m.history)-rows, 0))
}

// contentHeight is the screen minus the header and the help line, which
// grows when the full help is shown.
func (m Model) contentHeight() int {
	return m.height - 1 - lipgloss.Height(m.helpline())
}

func (m Model) backdrop() string {
	rows := m.contentHeight()
	end := min(m.offset+rows, len(m.history))
	var lines []string
	if m.offset < end {
		lines = m.history[m.offset:end]
	}
	return m.kit.Styles.Screen.
		Width(m.width).
		Height(rows).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m Model) helpline() string {
	var text string
	if _, open := m.container.Top(); open {
		bindings := append(m.kit.Keys.ShortHelp(), m.behavior.Keys.ShortHelp()...)
		text = m.help.ShortHelpView(bindings)
	} else {
		text = m.help.View(m.keys)
	}
	return m.kit.Styles.HelpLine.Width(m.width).Align(lipgloss.Center).Render(text)
}

// View implements tea.Model
func (m Model) View() tea.View {
	if !m.ready {
		return tea.NewView("Initializing...")
	}

	header := m.kit.Styles.HelpLine.Width(m.width).Padding(0, 1).Render(version.ApplicationName)
	content := m.container.View(m.width, m.contentHeight(), m.backdrop())
	rendered := lipgloss.JoinVertical(lipgloss.Left, header, content, m.helpline())

	v := tea.NewView(zone.Scan(rendered))
	v.MouseMode = tea.MouseModeAllMotion
	v.AltScreen = true
	return v
}
