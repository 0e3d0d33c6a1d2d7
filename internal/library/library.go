// Package library owns the in-memory tag catalog and registered files,
// persisting every mutation through a storage backend.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/nikbrunner/tagbox/internal/storage"
	"github.com/nikbrunner/tagbox/internal/tristate"
)

var (
	ErrEmptyTagName   = errors.New("tag name is empty")
	ErrDuplicateTag   = errors.New("tag already exists")
	ErrParentNotFound = errors.New("parent tag not found")
	ErrFileNotFound   = errors.New("file not found")
)

// Library is safe for concurrent use. Tag creation runs on a command
// goroutine while the event loop reads the catalog.
type Library struct {
	mu       sync.RWMutex
	store    *model.Store
	storage  storage.Storage
	revision uint64
	dirty    bool // file tags changed since the last save
	color    string
	logger   *slog.Logger
}

// Params holds parameters for creating a new Library.
type Params struct {
	Store        *model.Store
	Storage      storage.Storage // nil keeps everything in memory
	DefaultColor string          // color of created tags
	Logger       *slog.Logger    // optional, uses slog.Default() if nil
}

// New creates a Library over params.Store.
func New(params Params) *Library {
	store := params.Store
	if store == nil {
		store = model.NewStore()
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		store:   store,
		storage: params.Storage,
		color:   params.DefaultColor,
		logger:  logger.With("component", "library"),
	}
}

// Open loads the store from s and wraps it in a Library.
func Open(s storage.Storage, defaultColor string, logger *slog.Logger) (*Library, error) {
	store, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	return New(Params{Store: store, Storage: s, DefaultColor: defaultColor, Logger: logger}), nil
}

// Revision increases on every catalog change.
func (l *Library) Revision() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}

// Tags returns the catalog in creation order.
func (l *Library) Tags() []model.Tag {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.store.Tags)
}

// Tag looks up a tag by ID.
func (l *Library) Tag(id string) (model.Tag, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if t := l.store.GetTagByID(id); t != nil {
		return *t, true
	}
	return model.Tag{}, false
}

// Path returns the names from the root tag down to tag.
func (l *Library) Path(tag model.Tag) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	path := l.store.TagPath(tag.ID)
	if len(path) == 0 {
		return []string{tag.Name}
	}
	names := make([]string, len(path))
	for i, t := range path {
		names[i] = t.Name
	}
	return names
}

// PathString joins the path of a tag with "/".
func (l *Library) PathString(tag model.Tag) string {
	return strings.Join(l.Path(tag), "/")
}

// CreateTag creates and persists a tag named name under parentID.
// The name must be unique under its parent, ignoring case.
func (l *Library) CreateTag(ctx context.Context, parentID *string, name string) (model.Tag, error) {
	if err := ctx.Err(); err != nil {
		return model.Tag{}, err
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Tag{}, ErrEmptyTagName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if parentID != nil && l.store.GetTagByID(*parentID) == nil {
		return model.Tag{}, fmt.Errorf("%w: %s", ErrParentNotFound, *parentID)
	}
	if l.store.FindTagByName(parentID, trimmed) != nil {
		return model.Tag{}, fmt.Errorf("%w: %q", ErrDuplicateTag, trimmed)
	}

	tag := model.NewTag(model.NewTagParams{
		Name:     trimmed,
		Color:    l.color,
		ParentID: parentID,
	})
	l.store.AddTag(tag)

	if err := l.saveLocked(); err != nil {
		l.store.Tags = l.store.Tags[:len(l.store.Tags)-1]
		return model.Tag{}, fmt.Errorf("save tag %q: %w", trimmed, err)
	}

	l.revision++
	l.logger.Info("tag created", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

// Files returns all registered files.
func (l *Library) Files() []model.File {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filesLocked()
}

func (l *Library) filesLocked() []model.File {
	files := make([]model.File, len(l.store.Files))
	for i, f := range l.store.Files {
		f.Tags = slices.Clone(f.Tags)
		files[i] = f
	}
	return files
}

// File looks up a file by ID.
func (l *Library) File(id string) (model.File, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if f := l.store.GetFileByID(id); f != nil {
		file := *f
		file.Tags = slices.Clone(f.Tags)
		return file, true
	}
	return model.File{}, false
}

// FilesWithTag returns the files carrying the tag.
func (l *Library) FilesWithTag(tagID string) []model.File {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.FilesWithTag(tagID)
}

// AddFile registers path, returning the existing file if it is already known.
func (l *Library) AddFile(path string) (model.File, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.File{}, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if existing := l.store.GetFileByPath(abs); existing != nil {
		file := *existing
		file.Tags = slices.Clone(existing.Tags)
		return file, false, nil
	}

	file := model.NewFile(model.NewFileParams{Path: abs})
	l.store.AddFile(file)
	if err := l.saveLocked(); err != nil {
		l.store.Files = l.store.Files[:len(l.store.Files)-1]
		return model.File{}, false, fmt.Errorf("save file %s: %w", abs, err)
	}

	l.logger.Info("file added", "id", file.ID, "path", abs)
	return file, true, nil
}

// RemoveFile unregisters a file. Targets wrapping it start failing.
func (l *Library) RemoveFile(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.store.RemoveFile(id) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	l.logger.Info("file removed", "id", id)
	return l.saveLocked()
}

// Import merges imported tags and files and persists the result.
func (l *Library) Import(tags []model.Tag, files []model.File) (added, skipped int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	added, skipped = l.store.ImportMerge(tags, files)
	l.revision++
	return added, skipped, l.saveLocked()
}

// Snapshot returns a deep copy of the store.
func (l *Library) Snapshot() *model.Store {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &model.Store{
		Tags:  slices.Clone(l.store.Tags),
		Files: l.filesLocked(),
	}
}

// Targets wraps the files with the given IDs, skipping unknown ones.
func (l *Library) Targets(ids ...string) []tristate.Target {
	l.mu.RLock()
	defer l.mu.RUnlock()

	targets := make([]tristate.Target, 0, len(ids))
	for _, id := range ids {
		if l.store.GetFileByID(id) == nil {
			continue
		}
		targets = append(targets, FileTarget{lib: l, id: id})
	}
	return targets
}

// Save persists the store.
func (l *Library) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveLocked()
}

// Flush persists file tag changes made through targets, if there are any.
func (l *Library) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.dirty {
		return nil
	}
	return l.saveLocked()
}

func (l *Library) saveLocked() error {
	if l.storage == nil {
		l.dirty = false
		return nil
	}
	if err := l.storage.Save(l.store); err != nil {
		return err
	}
	l.dirty = false
	return nil
}
