// Package config loads the mitra configuration file.
//
// # Resolution
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mitra/config.toml
//  3. If the file does not exist, use the built-in defaults
//  4. Blank fields keep their defaults
//  5. MITRA_BIN_ID, MITRA_MASTER_KEY, MITRA_BASE_URL and GEMINI_API_KEY override the file
//  6. An unset store.backend becomes "remote" when a bin id is known, else "local"
//
// # TOML Format
//
//	[store]
//	backend = "remote"
//	bin_id = "65f0..."
//	master_key = "$2a$10$..."
//	request_timeout = "0s"
//
//	[sync]
//	poll_interval = "30s"   # "0s" disables polling
//	debounce = "1.5s"
//
//	[local]
//	driver = "file"         # or "sqlite"
//	dir = "~/.local/share/mitra"
//
//	[merchant]
//	username = "admin"
//	password = "gizi2024"
//
//	[checkout]
//	whatsapp = "6281234567890"
//
//	[imagegen]
//	model = "gemini-2.5-flash-image"
//
//	[log]
//	path = "~/.local/state/mitra/mitra.log"
//
// Durations use time.ParseDuration syntax. Tilde paths are expanded and relative
// paths made absolute.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML and malformed durations,
// all prefixed "parse config" where the content is at fault. Validate checks the
// combination of values (known backend and driver, bin id for the remote backend,
// positive debounce) and joins every problem it finds.
//
// The merchant credentials gate the edit UI only. They are not a security boundary.
package config
