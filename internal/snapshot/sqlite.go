package snapshot

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

const sqliteFileName = "snapshot.db"

// SQLiteStore keeps the catalog in a key/value table, one row per key.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) <dir>/snapshot.db and prepares the kv table.
func OpenSQLite(dir, key string) (*SQLiteStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("snapshot dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, sqliteFileName))
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	// Single writer; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLiteStore{db: db, key: normalizeKey(key)}, nil
}

// Save upserts the serialized catalog under the store key.
func (s *SQLiteStore) Save(c catalog.Catalog) error {
	data, err := catalog.Encode(c)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		s.key, string(data),
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the catalog stored under the store key.
func (s *SQLiteStore) Load() (catalog.Catalog, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if err != nil {
		return nil, false
	}
	return decode([]byte(value))
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
