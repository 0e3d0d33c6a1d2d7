package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// UIState is the interface state restored between sessions.
type UIState struct {
	RecentTags  []string `json:"recentTags"` // most recent first
	PanelHeight int      `json:"panelHeight"`
}

// DefaultUIStatePath returns the default UI state path: ~/.config/tagbox/state.json
func DefaultUIStatePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// LoadUIState reads the UI state. A missing file yields the zero state.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return UIState{}, nil
		}
		return UIState{}, err
	}

	var state UIState
	if err := json.Unmarshal(data, &state); err != nil {
		return UIState{}, fmt.Errorf("parse ui state: %w", err)
	}
	return state, nil
}

// SaveUIState writes the UI state.
func SaveUIState(path string, state UIState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultDebounce is the delay between the last change and the write.
const DefaultDebounce = 500 * time.Millisecond

// StateWriter coalesces UI state changes into debounced writes.
type StateWriter struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	state   UIState
	pending bool
}

// StateWriterOpts holds parameters for creating a StateWriter.
type StateWriterOpts struct {
	Path     string
	Initial  UIState
	Debounce time.Duration // optional, uses DefaultDebounce if zero
	Logger   *slog.Logger  // optional, uses slog.Default() if nil
}

// NewStateWriter creates a StateWriter holding opts.Initial.
func NewStateWriter(opts StateWriterOpts) *StateWriter {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StateWriter{
		path:     opts.Path,
		debounce: debounce,
		logger:   logger.With("component", "uistate"),
		state:    opts.Initial,
	}
}

// State returns the latest state, written or not.
func (w *StateWriter) State() UIState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// PersistPanelHeight records a new panel height.
func (w *StateWriter) PersistPanelHeight(height int) {
	w.update(func(s *UIState) { s.PanelHeight = height })
}

// PersistRecentTags records the recency queue contents.
func (w *StateWriter) PersistRecentTags(ids []string) {
	recent := append([]string(nil), ids...)
	w.update(func(s *UIState) { s.RecentTags = recent })
}

func (w *StateWriter) update(fn func(*UIState)) {
	if w == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	fn(&w.state)
	w.pending = true
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.onTimer)
		return
	}
	w.timer.Reset(w.debounce)
}

func (w *StateWriter) onTimer() {
	if err := w.Flush(); err != nil {
		w.logger.Warn("write ui state", "path", w.path, "error", err)
	}
}

// Flush writes pending changes immediately.
func (w *StateWriter) Flush() error {
	if w == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	if !w.pending {
		return nil
	}
	if err := SaveUIState(w.path, w.state); err != nil {
		return err
	}
	w.pending = false
	return nil
}
