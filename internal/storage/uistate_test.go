package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/tagbox/internal/storage"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/poll"
)

func TestLoadUIState_Missing(t *testing.T) {
	state, err := storage.LoadUIState(filepath.Join(t.TempDir(), "state.json"))
	assert.NilError(t, err)
	assert.DeepEqual(t, state, storage.UIState{})
}

func TestUIState_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	state := storage.UIState{RecentTags: []string{"b", "a"}, PanelHeight: 6}

	assert.NilError(t, storage.SaveUIState(path, state))

	loaded, err := storage.LoadUIState(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, state)
}

func TestStateWriter_FlushWritesLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	w := storage.NewStateWriter(storage.StateWriterOpts{
		Path:     path,
		Initial:  storage.UIState{PanelHeight: 8},
		Debounce: time.Hour,
	})

	w.PersistPanelHeight(9)
	w.PersistPanelHeight(10)
	w.PersistRecentTags([]string{"x"})
	assert.NilError(t, w.Flush())

	loaded, err := storage.LoadUIState(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, storage.UIState{RecentTags: []string{"x"}, PanelHeight: 10})
}

func TestStateWriter_FlushWithoutChangesWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	w := storage.NewStateWriter(storage.StateWriterOpts{Path: path, Initial: storage.UIState{PanelHeight: 4}})

	assert.NilError(t, w.Flush())

	loaded, err := storage.LoadUIState(path)
	assert.NilError(t, err)
	assert.Equal(t, loaded.PanelHeight, 0, "file should not exist")
}

func TestStateWriter_Debounces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	w := storage.NewStateWriter(storage.StateWriterOpts{Path: path, Debounce: 10 * time.Millisecond})

	w.PersistPanelHeight(5)

	poll.WaitOn(t, func(poll.LogT) poll.Result {
		loaded, err := storage.LoadUIState(path)
		if err != nil {
			return poll.Continue("read state: %v", err)
		}
		if loaded.PanelHeight != 5 {
			return poll.Continue("panel height is %d", loaded.PanelHeight)
		}
		return poll.Success()
	}, poll.WithTimeout(2*time.Second), poll.WithDelay(5*time.Millisecond))
}

func TestStateWriter_NilIsNoop(t *testing.T) {
	var w *storage.StateWriter
	w.PersistPanelHeight(3)
	assert.NilError(t, w.Flush())
}
