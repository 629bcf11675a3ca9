package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"pkt.systems/pslog"

	"scrollstage/internal/clock"
	"scrollstage/internal/config"
	"scrollstage/internal/eventbus"
	"scrollstage/internal/logx"
	"scrollstage/internal/ui"
)

// e2eEnv makes the binary announce readiness for the pty test harness
const e2eEnv = "SCROLLSTAGE_E2E_TEST"

func configPath(opts rootOptions) (string, error) {
	if opts.config != "" {
		return filepath.Abs(opts.config)
	}
	dir := opts.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	return filepath.Join(abs, config.FileName), nil
}

func loadConfig(opts rootOptions) (*config.Config, string, error) {
	path, err := configPath(opts)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.NewConfigServiceWithBus(path, nil).Load()
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// openLog returns the file logger; the TUI owns the terminal so nothing
// may be written to stdout or stderr while it runs
func openLog(cfg *config.Config) (pslog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logx.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}
	return logx.New(f, cfg.LogLevel), func() { _ = f.Close() }, nil
}

func resolveDark(cfg *config.Config, opts rootOptions) bool {
	switch {
	case opts.dark:
		return true
	case opts.light:
		return false
	case cfg.Theme == "dark":
		return true
	case cfg.Theme == "light":
		return false
	default:
		return lipgloss.HasDarkBackground()
	}
}

func runTUI(ctx context.Context, opts rootOptions) error {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logx.Bridge(logger)
	ctx = pslog.ContextWithLogger(ctx, logger)
	logger.Info("starting", "config", path, "sections", len(cfg.Sections))

	bus := eventbus.New(logger)
	defer bus.Close()
	configSvc := config.NewConfigServiceWithBus(path, bus)

	var ready io.Writer
	if os.Getenv(e2eEnv) == "1" {
		ready = os.Stdout
	}

	model, err := ui.NewModel(cfg, ui.Deps{
		Bus:   bus,
		Clock: clock.Real(),
		Log:   logger,
		Dark:  resolveDark(cfg, opts),
		Ready: ready,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	model.SetProgram(p)

	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	bus.Subscribe(eventbus.EventGestureSettled, forward)
	bus.Subscribe(eventbus.EventThemeChanged, forward)
	bus.Subscribe(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventCursorChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.CursorChangedEvent); ok {
			logger.Debug("cursor", "section", ev.Section, "from", ev.OldIndex, "to", ev.NewIndex, "source", ev.Source)
		}
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case msg := <-model.Updates():
				p.Send(msg)
			case <-done:
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logx.Ctx(ctx).Error("program failed", "err", err)
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("exited")

	if cfg.UISettings.AutosaveOnExit {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := configSvc.Save(config.DefaultConfig()); err != nil {
				logger.Warn("failed to save config", "path", path, "err", err)
			}
		}
	}
	return nil
}
