// Package snapshot persists the product catalog on the local device under a single
// fixed key. It is the offline fallback for the remote document and survives restarts,
// but it is never shared across machines.
//
// Two drivers exist: FileStore writes <dir>/<key>.json atomically, SQLiteStore keeps a
// key/value table in a local SQLite file. Both treat unreadable or malformed content as
// "nothing saved" rather than an error, so a corrupt cache never blocks startup.
package snapshot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

// DefaultKey is the fixed key the catalog is stored under.
const DefaultKey = "mitra_gizi_cache"

// Store saves and loads the full catalog.
type Store interface {
	// Save replaces any previously stored catalog.
	Save(c catalog.Catalog) error
	// Load returns the stored catalog, or false when absent or corrupt.
	Load() (catalog.Catalog, bool)
}

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open builds the store for the named driver rooted at dir.
func Open(driver, dir, key string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverFile:
		return NewFileStore(dir, key)
	case DriverSQLite:
		return OpenSQLite(dir, key)
	default:
		return nil, fmt.Errorf("unknown snapshot driver %q", driver)
	}
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultKey
	}
	return key
}

// decode parses stored content. Anything but a JSON array of products, including the
// literal null, counts as nothing saved.
func decode(data []byte) (catalog.Catalog, bool) {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	c, err := catalog.Decode(raw)
	if err != nil {
		return nil, false
	}
	return c, true
}
