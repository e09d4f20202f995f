package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/GhostWriters/DialogStack/internal/app"
	"github.com/GhostWriters/DialogStack/internal/config"
	"github.com/GhostWriters/DialogStack/internal/logger"
	"github.com/GhostWriters/DialogStack/internal/server"
	"github.com/GhostWriters/DialogStack/internal/version"
	"github.com/GhostWriters/DialogStack/pkg/dialog"
	"github.com/GhostWriters/DialogStack/pkg/dialogmetrics"
)

// Execute runs the program described by o and returns the exit code.
func Execute(ctx context.Context, o Options) int {
	if o.ShowHelp {
		PrintHelp()
		return 0
	}
	if o.ShowVersion {
		fmt.Println(version.String())
		return 0
	}

	conf, err := config.Load(o.ConfigPath)
	if err != nil {
		logger.Warn(ctx, "Using default settings: %v", err)
	}
	ApplyFlags(&conf, o)

	// The terminal belongs to the TUI unless we are serving.
	var console io.Writer = io.Discard
	if o.Serve != "" {
		console = os.Stderr
	}
	setupLogging(ctx, conf, console)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metricsErr := make(chan error, 1)
	if conf.Metrics.Address != "" {
		go func() {
			metricsErr <- server.ServeMetrics(ctx, conf.Metrics.Address, server.MetricsHandler(reg), slog.Default())
		}()
	}

	zone.NewGlobal()

	if o.Serve != "" {
		err = runServer(ctx, conf, reg)
	} else {
		err = runLocal(ctx, conf, reg)
	}
	stop()

	if conf.Metrics.Address != "" {
		if merr := <-metricsErr; merr != nil {
			err = errors.Join(err, fmt.Errorf("metrics: %w", merr))
		}
	}
	if err != nil {
		logger.Error(ctx, err.Error())
		return 1
	}
	return 0
}

// ApplyFlags overrides config values with the flags given on the command
// line.
func ApplyFlags(conf *config.AppConfig, o Options) {
	if o.Changed("base-z") {
		conf.Stack.BaseZIndex = o.BaseZIndex
	}
	if o.Serve != "" {
		conf.Server.Address = o.Serve
	}
	if o.HostKey != "" {
		conf.Server.HostKeyPath = o.HostKey
	}
	if o.Metrics != "" {
		conf.Metrics.Address = o.Metrics
	}
	if o.Debug {
		conf.Log.Level = "debug"
	}
}

func setupLogging(ctx context.Context, conf config.AppConfig, console io.Writer) {
	file := config.ExpandVariables(conf.Log.File)
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			logger.Warn(ctx, "Cannot create log directory: %v", err)
			file = ""
		}
	}
	slog.SetDefault(logger.NewLogger(logger.Options{Console: console, File: file}))

	level, err := logger.ParseLevel(conf.Log.Level)
	if err != nil {
		logger.Warn(ctx, "%v, using notice", err)
		level = logger.LevelNotice
	}
	logger.SetLevel(level)
}

func runLocal(ctx context.Context, conf config.AppConfig, reg prometheus.Registerer) error {
	store := dialog.NewStore(dialog.WithBaseZIndex(conf.Stack.BaseZIndex))
	if err := reg.Register(dialogmetrics.NewCollector(store, nil)); err != nil {
		return err
	}

	m := app.New(ctx, conf, store, slog.Default())
	p := tea.NewProgram(m, tea.WithContext(ctx))

	if conf.Path != "" {
		err := config.Watch(ctx, conf.Path, func(c config.AppConfig, err error) {
			p.Send(app.ConfigReloadedMsg{Config: c, Err: err})
		})
		if err != nil {
			logger.Warn(ctx, "Not watching %s: %v", conf.Path, err)
		}
	}

	logger.Info(ctx, "Starting %s", version.String())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runServer(ctx context.Context, conf config.AppConfig, reg prometheus.Registerer) error {
	srv, err := server.New(conf, reg, slog.Default())
	if err != nil {
		return fmt.Errorf("creating SSH server: %w", err)
	}
	return srv.ListenAndServe(ctx)
}
