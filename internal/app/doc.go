// Package app is the composition root of the mitra storefront.
//
// # Overview
//
// Open wires configuration into the running core: the local snapshot store, the
// persistence backend (remote document store or local only), the sync engine, the
// merchant session, the WhatsApp handoff and the optional image generator. Run starts
// the engine and hands everything to the terminal UI. The subcommands (List, Pull,
// Push, ServeBin) reuse the same wiring without the UI.
//
// # Startup
//
//  1. LoadConfig reads ~/.config/mitra/config.toml, applies flag overrides and validates
//  2. Open builds the services
//  3. Engine.Start loads the catalog: remote, then local snapshot, then built-in defaults
//  4. ui.Run blocks until the user quits or the context is cancelled
//  5. Close writes pending edits and stops background polling
//
// # Data Flow
//
//	┌──────────────┐   Mutate    ┌──────────────────┐  debounced Replace  ┌─────────┐
//	│ merchant.    │ ──────────> │ cloudsync.Engine │ ──────────────────> │ backend │
//	│ Session      │             │   state.Store    │ <────────────────── │         │
//	└──────────────┘             └────────┬─────────┘    poll FetchLatest └─────────┘
//	                                      │ Snapshot()
//	                                      v
//	                                  ui.Model (1s tick)
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - invalid configuration
//   - the local snapshot store cannot be opened
//   - the remote client cannot be created (missing bin id)
//
// Recoverable errors (logged, shown in the header):
//   - remote fetch failures at startup fall back silently
//   - poll failures count toward the OFFLINE badge
//   - save failures set the SYNC ERROR badge and are retried on the next edit
//
// # Configuration
//
// Options carries the command-line overrides:
//
//   - ConfigPath: path to config.toml (default ~/.config/mitra/config.toml)
//   - PrefsPath: path to prefs.toml (default ~/.config/mitra/prefs.toml)
//   - PollEvery: remote poll interval in seconds (default from config)
//   - Backend: "remote" or "local"
package app
