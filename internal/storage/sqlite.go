package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/tagbox/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty
		version = 0
	}
	if version >= currentSchemaVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the tag hierarchy and the file table.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			parent_id TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY (parent_id) REFERENCES tags(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tags_parent_id ON tags(parent_id);

		CREATE TABLE IF NOT EXISTS files (
			id TEXT PRIMARY KEY NOT NULL,
			path TEXT NOT NULL,
			name TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			added_at TEXT NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_files_path ON files(path);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds tag colors.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE tags ADD COLUMN color TEXT NOT NULL DEFAULT '';
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the store from the SQLite database.
// Rows come back in the order they were saved, which is the catalog order.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	store := model.NewStore()

	rows, err := s.db.Query(`
		SELECT id, name, color, parent_id, created_at
		FROM tags
		ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t model.Tag
		var parentID sql.NullString
		var createdAt string

		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &parentID, &createdAt); err != nil {
			return nil, err
		}
		if parentID.Valid {
			t.ParentID = &parentID.String
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("tag %s created_at: %w", t.ID, err)
		}

		store.Tags = append(store.Tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, path, name, tags, added_at
		FROM files
		ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var f model.File
		var tagsJSON string
		var addedAt string

		if err := rows.Scan(&f.ID, &f.Path, &f.Name, &tagsJSON, &addedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &f.Tags); err != nil || f.Tags == nil {
			f.Tags = []string{}
		}
		if f.AddedAt, err = time.Parse(time.RFC3339, addedAt); err != nil {
			return nil, fmt.Errorf("file %s added_at: %w", f.ID, err)
		}

		store.Files = append(store.Files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// Save writes the store to the SQLite database in a single transaction.
func (s *SQLiteStorage) Save(store *model.Store) error {
	// Tags may reference parents inserted later in the same batch.
	// PRAGMA foreign_keys cannot be changed inside a transaction.
	if _, err := s.db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return err
	}
	defer s.db.Exec("PRAGMA foreign_keys = ON")

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM files"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM tags"); err != nil {
		return err
	}

	tagStmt, err := tx.Prepare(`
		INSERT INTO tags (id, name, color, parent_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer tagStmt.Close()

	for _, t := range store.Tags {
		if _, err := tagStmt.Exec(t.ID, t.Name, t.Color, t.ParentID, t.CreatedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	fileStmt, err := tx.Prepare(`
		INSERT INTO files (id, path, name, tags, added_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer fileStmt.Close()

	for _, f := range store.Files {
		tags := f.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return err
		}
		if _, err := fileStmt.Exec(f.ID, f.Path, f.Name, string(tagsJSON), f.AddedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default SQLite database path: ~/.config/tagbox/tags.db
func DefaultSQLitePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tags.db"), nil
}
