package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/tagbox/internal/model"
)

// Backend names accepted by OpenStorage.
const (
	BackendAuto   = "auto"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Storage defines the interface for persisting tags and files.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the store from the JSON file.
// Returns an empty store if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, err
	}

	var store model.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	if store.Tags == nil {
		store.Tags = []model.Tag{}
	}
	if store.Files == nil {
		store.Files = []model.File{}
	}
	for i := range store.Files {
		if store.Files[i].Tags == nil {
			store.Files[i].Tags = []string{}
		}
	}

	return &store, nil
}

// Save writes the store to the JSON file.
// Writes to a temporary file first so a failed write never truncates the store.
func (s *JSONStorage) Save(store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// ConfigDir returns the tagbox config directory: ~/.config/tagbox
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tagbox"), nil
}

// DefaultJSONPath returns the default JSON store path: ~/.config/tagbox/tags.json
func DefaultJSONPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tags.json"), nil
}

// OpenStorage opens the storage backend named by backend.
// "auto" prefers SQLite if the database file exists, otherwise JSON.
func OpenStorage(backend string) (Storage, error) {
	switch backend {
	case BackendJSON:
		path, err := DefaultJSONPath()
		if err != nil {
			return nil, err
		}
		return NewJSONStorage(path), nil
	case BackendSQLite:
		path, err := DefaultSQLitePath()
		if err != nil {
			return nil, err
		}
		return NewSQLiteStorage(path)
	case BackendAuto, "":
		path, err := DefaultSQLitePath()
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err == nil {
			return NewSQLiteStorage(path)
		}
		return OpenStorage(BackendJSON)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
