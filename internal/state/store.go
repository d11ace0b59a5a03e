package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

// SyncStatus is the user-visible state of remote persistence.
type SyncStatus int

const (
	StatusSynced SyncStatus = iota
	StatusSaving
	StatusError
)

func (s SyncStatus) String() string {
	switch s {
	case StatusSynced:
		return "synced"
	case StatusSaving:
		return "saving"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("SyncStatus(%d)", int(s))
	}
}

// Source records where the startup catalog came from.
type Source string

const (
	SourceNone     Source = ""
	SourceRemote   Source = "remote"
	SourceLocal    Source = "local"
	SourceDefaults Source = "defaults"
)

// Snapshot represents the latest catalog and sync state available to the UI.
type Snapshot struct {
	Products catalog.Catalog
	Source   Source
	Loaded   bool

	Status SyncStatus
	// LastSynced is zero until a fetch or write succeeds.
	LastSynced time.Time
	// LastError is the most recent failed remote write; cleared by the next success.
	LastError error
	// LocalError is the most recent failed snapshot save; cleared by the next success.
	LocalError error

	LastPolled              time.Time
	LastPollError           error
	ConsecutivePollFailures int
}

// IsOffline returns true when background polls have failed repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutivePollFailures >= 2
}

// HasSynced reports whether any remote exchange has succeeded yet.
func (s Snapshot) HasSynced() bool {
	return !s.LastSynced.IsZero()
}

// Store coordinates concurrent updates to the snapshot. The zero value is ready to use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Load installs the startup catalog. A zero syncedAt leaves LastSynced unset.
func (s *Store) Load(products catalog.Catalog, source Source, syncedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Products = products.Clone()
	s.snapshot.Source = source
	s.snapshot.Loaded = true
	if !syncedAt.IsZero() {
		s.snapshot.LastSynced = syncedAt
	}
}

// SetProducts replaces the catalog after a local mutation.
func (s *Store) SetProducts(products catalog.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Products = products.Clone()
}

// Fetched records a successful fetch. When adopt is non-nil it replaces the catalog.
func (s *Store) Fetched(adopt catalog.Catalog, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if adopt != nil {
		s.snapshot.Products = adopt.Clone()
	}
	s.snapshot.LastSynced = at
	s.snapshot.LastPolled = at
	s.snapshot.LastPollError = nil
	s.snapshot.ConsecutivePollFailures = 0
}

// PollFailed records a failed background fetch without touching Status.
func (s *Store) PollFailed(err error, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastPolled = at
	s.snapshot.LastPollError = err
	s.snapshot.ConsecutivePollFailures++
}

// BeginSave marks a remote write as in flight.
func (s *Store) BeginSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Status = StatusSaving
}

// SaveSucceeded marks the remote write as done.
func (s *Store) SaveSucceeded(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Status = StatusSynced
	s.snapshot.LastSynced = at
	s.snapshot.LastError = nil
}

// SaveFailed marks the remote write as failed. The catalog is kept.
func (s *Store) SaveFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Status = StatusError
	s.snapshot.LastError = err
}

// MarkSynced sets the status to synced after a manual refresh. A write in flight
// keeps the saving status; it reports false in that case.
func (s *Store) MarkSynced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Status == StatusSaving {
		return false
	}
	s.snapshot.Status = StatusSynced
	s.snapshot.LastError = nil
	return true
}

// SetLocalError records the outcome of the last snapshot save. nil clears it.
func (s *Store) SetLocalError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LocalError = err
}

// Status returns the current sync status without copying the catalog.
func (s *Store) Status() SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Status
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Products = s.snapshot.Products.Clone()
	snap.LastError = cloneErr(s.snapshot.LastError)
	snap.LocalError = cloneErr(s.snapshot.LocalError)
	snap.LastPollError = cloneErr(s.snapshot.LastPollError)
	return snap
}

func cloneErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w", err)
}
