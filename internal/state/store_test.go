package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

func TestSyncStatus_String(t *testing.T) {
	tests := map[SyncStatus]string{
		StatusSynced:  "synced",
		StatusSaving:  "saving",
		StatusError:   "error",
		SyncStatus(9): "SyncStatus(9)",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Fatalf("String(%d) = %q, want %q", int(status), got, want)
		}
	}
}

func TestStore_LoadAndSnapshotClone(t *testing.T) {
	var s Store

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Load(catalog.Catalog{{ID: "a", Price: 1}, {ID: "b", Price: 2}}, SourceRemote, now)

	snap := s.Snapshot()
	if !snap.Loaded || snap.Source != SourceRemote {
		t.Fatalf("snapshot = %#v, want loaded from remote", snap)
	}
	if len(snap.Products) != 2 || snap.Products[0].ID != "a" {
		t.Fatalf("products = %#v, want 2 items", snap.Products)
	}
	if !snap.LastSynced.Equal(now) || !snap.HasSynced() {
		t.Fatalf("LastSynced = %v, want %v", snap.LastSynced, now)
	}
	if snap.Status != StatusSynced {
		t.Fatalf("Status = %v, want synced", snap.Status)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Products[0].ID = "zzz"
	if got := s.Snapshot().Products[0].ID; got != "a" {
		t.Fatalf("Snapshot should clone products; got id %q want a", got)
	}
}

func TestStore_LoadFromFallbackLeavesNeverSynced(t *testing.T) {
	var s Store
	s.Load(catalog.Defaults(), SourceDefaults, time.Time{})

	snap := s.Snapshot()
	if snap.HasSynced() {
		t.Fatalf("HasSynced = true, want false after fallback load")
	}
	if snap.Status != StatusSynced {
		t.Fatalf("Status = %v, want synced after silent fallback", snap.Status)
	}
}

func TestStore_SaveTransitions(t *testing.T) {
	var s Store
	s.Load(catalog.Catalog{{ID: "a"}}, SourceLocal, time.Time{})

	s.BeginSave()
	if s.Status() != StatusSaving {
		t.Fatalf("Status = %v, want saving", s.Status())
	}

	origErr := errors.New("upload failed")
	s.SaveFailed(origErr)
	snap := s.Snapshot()
	if snap.Status != StatusError {
		t.Fatalf("Status = %v, want error", snap.Status)
	}
	if len(snap.Products) != 1 {
		t.Fatalf("products changed on failed save: %#v", snap.Products)
	}
	if snap.LastError == nil || snap.LastError.Error() != "upload failed" {
		t.Fatalf("LastError = %v, want upload failed", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}

	at := time.Now()
	s.BeginSave()
	s.SaveSucceeded(at)
	snap = s.Snapshot()
	if snap.Status != StatusSynced || snap.LastError != nil {
		t.Fatalf("after success status=%v err=%v, want synced and nil", snap.Status, snap.LastError)
	}
	if !snap.LastSynced.Equal(at) {
		t.Fatalf("LastSynced = %v, want %v", snap.LastSynced, at)
	}
}

func TestStore_FetchedAdoptsOnlyWhenGiven(t *testing.T) {
	var s Store
	s.Load(catalog.Catalog{{ID: "a"}}, SourceLocal, time.Time{})

	t1 := time.Now()
	s.Fetched(nil, t1)
	snap := s.Snapshot()
	if len(snap.Products) != 1 || snap.Products[0].ID != "a" {
		t.Fatalf("Fetched(nil) changed products: %#v", snap.Products)
	}
	if !snap.LastSynced.Equal(t1) {
		t.Fatalf("LastSynced = %v, want %v", snap.LastSynced, t1)
	}

	s.Fetched(catalog.Catalog{{ID: "b"}, {ID: "c"}}, t1.Add(time.Second))
	snap = s.Snapshot()
	if len(snap.Products) != 2 || snap.Products[0].ID != "b" {
		t.Fatalf("Fetched did not adopt: %#v", snap.Products)
	}
}

func TestStore_PollFailuresDoNotTouchStatus(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.PollFailed(errors.New("fail 1"), time.Now())
	snap = s.Snapshot()
	if snap.ConsecutivePollFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: count=%d offline=%v, want 1 false", snap.ConsecutivePollFailures, snap.IsOffline())
	}
	if snap.Status != StatusSynced {
		t.Fatalf("Status = %v, want synced after poll failure", snap.Status)
	}

	s.PollFailed(errors.New("fail 2"), time.Now())
	snap = s.Snapshot()
	if !snap.IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}
	if snap.LastPollError == nil || snap.LastPollError.Error() != "fail 2" {
		t.Fatalf("LastPollError = %v, want fail 2", snap.LastPollError)
	}

	s.Fetched(nil, time.Now())
	snap = s.Snapshot()
	if snap.ConsecutivePollFailures != 0 || snap.IsOffline() || snap.LastPollError != nil {
		t.Fatalf("success should reset poll failures: %#v", snap)
	}
}

func TestStore_MarkSyncedAndLocalError(t *testing.T) {
	var s Store
	s.SaveFailed(errors.New("boom"))
	s.MarkSynced()
	if snap := s.Snapshot(); snap.Status != StatusSynced || snap.LastError != nil {
		t.Fatalf("MarkSynced status=%v err=%v, want synced nil", snap.Status, snap.LastError)
	}

	s.BeginSave()
	if s.MarkSynced() {
		t.Fatalf("MarkSynced during a save = true, want false")
	}
	if got := s.Status(); got != StatusSaving {
		t.Fatalf("Status after MarkSynced during save = %v, want saving", got)
	}
	s.SaveSucceeded(time.Now())

	s.SetLocalError(errors.New("disk full"))
	if snap := s.Snapshot(); snap.LocalError == nil {
		t.Fatalf("LocalError = nil, want disk full")
	}
	s.SetLocalError(nil)
	if snap := s.Snapshot(); snap.LocalError != nil {
		t.Fatalf("LocalError = %v, want nil after clear", snap.LocalError)
	}
}
