package convention

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
CREATE TABLE IF NOT EXISTS conventions (
	id           TEXT NOT NULL,
	repository   TEXT NOT NULL,
	category     TEXT NOT NULL,
	rule         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	severity     TEXT NOT NULL DEFAULT '',
	confidence   REAL NOT NULL DEFAULT 0,
	tags         TEXT NOT NULL DEFAULT '[]',
	examples     TEXT NOT NULL DEFAULT '[]',
	PRIMARY KEY (repository, id)
);
CREATE INDEX IF NOT EXISTS idx_conventions_repo ON conventions(repository);
`

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the convention database at path.
// The parent directory is created if it does not exist yet.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating convention db directory: %w", err)
		}
	}
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening convention db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing convention schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Put inserts or replaces one convention for a repository.
func (s *SQLiteStore) Put(ctx context.Context, repositoryID string, c Convention) error {
	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("marshaling tags: %w", err)
	}
	examples, err := json.Marshal(c.Examples)
	if err != nil {
		return fmt.Errorf("marshaling examples: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO conventions
		(id, repository, category, rule, description, severity, confidence, tags, examples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, repositoryID, string(c.Category), c.Rule, c.Description,
		c.Severity, c.Confidence, string(tags), string(examples))
	if err != nil {
		return fmt.Errorf("storing convention %s: %w", c.ID, err)
	}
	return nil
}

// GetAllConventions returns the repository's active conventions ordered by ID.
// An unseeded repository yields an empty slice and no error.
func (s *SQLiteStore) GetAllConventions(ctx context.Context, repositoryID string) ([]Convention, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, rule, description, severity, confidence, tags, examples
		FROM conventions WHERE repository = ? ORDER BY id`, repositoryID)
	if err != nil {
		return nil, fmt.Errorf("querying conventions: %w", err)
	}
	defer rows.Close()

	out := []Convention{}
	for rows.Next() {
		var c Convention
		var cat, tags, examples string
		if err := rows.Scan(&c.ID, &cat, &c.Rule, &c.Description, &c.Severity,
			&c.Confidence, &tags, &examples); err != nil {
			return nil, fmt.Errorf("scanning convention: %w", err)
		}
		c.Category = Category(cat)
		if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
			return nil, fmt.Errorf("parsing tags for %s: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(examples), &c.Examples); err != nil {
			return nil, fmt.Errorf("parsing examples for %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
