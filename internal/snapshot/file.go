package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

// FileStore keeps the catalog as JSON text in <dir>/<key>.json.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates dir when needed and returns a store for key.
func NewFileStore(dir, key string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("snapshot dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, normalizeKey(key)+".json")}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Save writes the catalog through a temp file and rename so readers never observe a
// partial write.
func (s *FileStore) Save(c catalog.Catalog) error {
	data, err := catalog.Encode(c)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads the stored catalog.
func (s *FileStore) Load() (catalog.Catalog, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}
	return decode(data)
}
