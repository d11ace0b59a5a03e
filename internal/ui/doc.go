// Package ui provides the mitra storefront terminal interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds view state (active view, category
// filter, selection, cart, open modal) and reads the catalog from a CatalogSource
// snapshot on a one second tick. It never talks to the remote store directly: edits go
// through the merchant session, which hands them to the sync engine.
//
// # Views
//
//   - Shop: category tabs, product list and a detail pane
//   - Cart: cart lines with quantities, line totals and the estimated total
//   - Activity: the tail of the structured log file
//   - Profile: business details, pillars and the presentation outline. v opens the
//     presentation video and w opens a WhatsApp chat, both through the Sender.
//
// # Modals
//
// Modals take every key while open. Non-key messages (spinner ticks, async results)
// are forwarded to the open modal as well.
//
//   - help: key bindings from the key map
//   - merchant login
//   - product editor: each accepted keystroke becomes a catalog patch
//   - delete confirmation
//   - product image: upload a file or generate one with the image model
//   - info: errors and the manual-copy checkout fallback
//
// # Sync Indicators
//
// The header shows a badge derived from the snapshot: SYNCED, SAVING, SYNC ERROR, or
// OFFLINE after repeated silent poll failures. Manual refresh (r) reports its outcome
// in the command bar.
//
// # Preferences
//
// Theme and category changes are written to the prefs file as they happen.
package ui
