// Package state provides thread-safe state shared between the sync engine and the UI.
//
// # Overview
//
// The Store holds the displayed catalog together with the sync status badge
// (synced / saving / error), the time of the last successful remote exchange, and
// error details. The sync engine is the only writer; the UI reads copies on its
// refresh tick.
//
//	Writer (cloudsync.Engine):        Reader (UI):
//	┌──────────────────────────┐     ┌────────────────┐
//	│ Load / SetProducts       │     │                │
//	│ BeginSave / SaveSucceeded│────→│ store.Snapshot()│
//	│ Fetched / PollFailed     │     │      ↓         │
//	└──────────────────────────┘     │  render UI     │
//	                                 └────────────────┘
//
// # Status Transitions
//
//	BeginSave      → saving
//	SaveSucceeded  → synced (LastSynced = now, LastError cleared)
//	SaveFailed     → error  (catalog kept, LastError recorded)
//	MarkSynced     → synced (manual refresh; ignored while saving)
//
// Fetched and PollFailed never change Status: background polling is invisible to the
// badge. PollFailed counts consecutive failures so the header can show an offline hint.
//
// # Copying
//
// Snapshot returns a copy of the catalog slice and of every error value, so readers
// can hold it across ticks without racing the writer.
package state
