package cloudsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/jsonbin"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/snapshot"
)

// Backend is where the engine persists the catalog beyond the local snapshot.
type Backend interface {
	Fetch(ctx context.Context) (catalog.Catalog, error)
	Replace(ctx context.Context, products catalog.Catalog) error
	Name() string
	// Remote reports whether the backend is shared with other devices. Only remote
	// backends are polled.
	Remote() bool
}

var (
	_ Backend = (*RemoteDocumentBackend)(nil)
	_ Backend = (*LocalOnlyBackend)(nil)
)

// ErrNoSnapshot is returned by LocalOnlyBackend.Fetch when nothing was saved yet.
var ErrNoSnapshot = errors.New("no local snapshot")

// RemoteDocumentBackend persists to the JSONBin document.
type RemoteDocumentBackend struct {
	docs jsonbin.DocumentStore
}

// NewRemoteBackend wraps a document store client.
func NewRemoteBackend(docs jsonbin.DocumentStore) *RemoteDocumentBackend {
	return &RemoteDocumentBackend{docs: docs}
}

func (b *RemoteDocumentBackend) Fetch(ctx context.Context) (catalog.Catalog, error) {
	return b.docs.FetchLatest(ctx)
}

func (b *RemoteDocumentBackend) Replace(ctx context.Context, products catalog.Catalog) error {
	return b.docs.Replace(ctx, products)
}

func (b *RemoteDocumentBackend) Name() string { return "jsonbin" }

func (b *RemoteDocumentBackend) Remote() bool { return true }

// LocalOnlyBackend keeps the catalog on this machine only. Writes still go through
// the debounce so the behaviour matches the remote variant.
type LocalOnlyBackend struct {
	store snapshot.Store
}

// NewLocalBackend wraps a snapshot store.
func NewLocalBackend(store snapshot.Store) *LocalOnlyBackend {
	return &LocalOnlyBackend{store: store}
}

func (b *LocalOnlyBackend) Fetch(context.Context) (catalog.Catalog, error) {
	products, ok := b.store.Load()
	if !ok {
		return nil, ErrNoSnapshot
	}
	return products, nil
}

func (b *LocalOnlyBackend) Replace(_ context.Context, products catalog.Catalog) error {
	if err := b.store.Save(products); err != nil {
		return fmt.Errorf("save local catalog: %w", err)
	}
	return nil
}

func (b *LocalOnlyBackend) Name() string { return "local" }

func (b *LocalOnlyBackend) Remote() bool { return false }
