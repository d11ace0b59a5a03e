// Package cloudsync keeps the displayed catalog, the local snapshot and the shared
// backend document in step.
//
// # Lifecycle
//
//	Start    fetch backend → adopt; on failure local snapshot → defaults (silent)
//	Mutate   apply → local snapshot now → backend write after the debounce window
//	poll     every PollInterval (remote backends only), skipped while saving
//	Refresh  one immediate fetch-and-compare, status → synced on success
//	Flush    write the pending catalog now (leaving merchant mode, exit)
//	Stop     cancel timers, wait for callbacks
//
// Writes replace the whole document and the last writer wins. Catalogs are compared by
// their JSON encoding, so a poll adopts the remote document whenever any byte differs.
// A poll that lands inside the debounce window replaces unsaved local edits in the
// view, while the pending write still carries them to the backend.
//
// Timers go through Clock so tests can drive a virtual clock.
package cloudsync
