package library

import (
	"fmt"
	"slices"

	"github.com/nikbrunner/tagbox/internal/model"
)

// FileTarget is a registered file as a tagging target. Changes stay in
// memory until Library.Flush.
type FileTarget struct {
	lib *Library
	id  string
}

// ID returns the file ID.
func (t FileTarget) ID() string { return t.id }

// Tags returns the tag IDs of the file, nil once the file is gone.
func (t FileTarget) Tags() []string {
	t.lib.mu.RLock()
	defer t.lib.mu.RUnlock()
	if f := t.lib.store.GetFileByID(t.id); f != nil {
		return slices.Clone(f.Tags)
	}
	return nil
}

// AddTag attaches tagID to the file.
func (t FileTarget) AddTag(tagID string) error {
	return t.mutate(func(f *model.File) bool { return f.AddTag(tagID) })
}

// RemoveTag detaches tagID from the file.
func (t FileTarget) RemoveTag(tagID string) error {
	return t.mutate(func(f *model.File) bool { return f.RemoveTag(tagID) })
}

func (t FileTarget) mutate(fn func(*model.File) bool) error {
	t.lib.mu.Lock()
	defer t.lib.mu.Unlock()

	f := t.lib.store.GetFileByID(t.id)
	if f == nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, t.id)
	}
	if fn(f) {
		t.lib.dirty = true
	}
	return nil
}
