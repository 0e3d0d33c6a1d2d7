package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/tagbox/internal/library"
	"github.com/nikbrunner/tagbox/internal/recency"
	"github.com/nikbrunner/tagbox/internal/storage"
	"github.com/nikbrunner/tagbox/internal/tui"
)

// env is everything a command needs: config, logger and the opened library.
type env struct {
	cfg     *storage.Config
	lib     *library.Library
	logger  *slog.Logger
	closers []io.Closer
}

func openEnv(opts *options) (*env, error) {
	configPath := opts.configPath
	if configPath == "" {
		p, err := storage.DefaultConfigFilePath()
		if err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
		configPath = p
	}

	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if opts.backend != "" {
		cfg.Backend = opts.backend
	}

	e := &env{cfg: cfg}
	if err := e.setupLogger(); err != nil {
		return nil, err
	}

	s, err := storage.OpenStorage(cfg.Backend)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if c, ok := s.(io.Closer); ok {
		e.closers = append(e.closers, c)
	}

	e.lib, err = library.Open(s, cfg.DefaultTagColor, e.logger)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.logger.Debug("environment ready", "config", configPath, "backend", cfg.Backend)
	return e, nil
}

// setupLogger logs to cfg.LogFile when set. Without one logs are dropped,
// the TUI owns the terminal.
func (e *env) setupLogger() error {
	if e.cfg.LogFile == "" {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		slog.SetDefault(e.logger)
		return nil
	}

	f, err := tea.LogToFile(e.cfg.LogFile, "tagbox")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	e.closers = append(e.closers, f)
	e.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(e.logger)
	return nil
}

// Close releases storage handles and the log file, newest first.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// runTUI runs the interactive app. preselect holds file IDs to select;
// openTagger starts with the tag panel focused.
func runTUI(e *env, preselect []string, openTagger bool) error {
	statePath, err := storage.DefaultUIStatePath()
	if err != nil {
		return fmt.Errorf("ui state path: %w", err)
	}
	state, err := storage.LoadUIState(statePath)
	if err != nil {
		// a broken state file only costs recent tags and panel height
		e.logger.Warn("ignoring ui state", "path", statePath, "error", err)
		state = storage.UIState{}
	}

	writer := storage.NewStateWriter(storage.StateWriterOpts{
		Path:    statePath,
		Initial: state,
		Logger:  e.logger,
	})
	recent := recency.New(e.cfg.RecentTagsLimit, state.RecentTags...)

	panelRows := e.cfg.PanelHeight
	if state.PanelHeight > 0 {
		panelRows = state.PanelHeight
	}

	app := tui.NewApp(tui.AppParams{
		Library:       e.lib,
		Recency:       recent,
		Panel:         writer,
		Recent:        writer,
		PanelRows:     panelRows,
		CreateTimeout: e.cfg.CreateTimeout,
		Preselect:     preselect,
		OpenTagger:    openTagger,
		Logger:        e.logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, runErr := p.Run()

	writer.PersistRecentTags(recent.IDs())
	err = errors.Join(
		wrapErr("tui", runErr),
		wrapErr("save tags", e.lib.Flush()),
		wrapErr("save ui state", writer.Flush()),
	)
	return err
}

func wrapErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
