// Package jsonbin is a thin HTTP client for the versioned JSON document that holds the
// shared product catalog.
//
// # Protocol
//
// The store speaks the JSONBin v3 shape:
//
//	GET  <base>/v3/b/<bin>/latest   -> {"record": {"products": [...]}, "metadata": {...}}
//	PUT  <base>/v3/b/<bin>          <- {"products": [...]}
//
// Every request carries the static X-Master-Key header. Replace is a whole-document
// overwrite; the store keeps no merge logic and issues no concurrency token, so the
// last writer wins.
//
// # Errors
//
// Callers can tell failures apart with errors.Is / errors.As:
//
//   - ErrUnreachable: the request never produced a response
//   - *StatusError: the store answered with a non-2xx status
//   - ErrMalformed: the body was not JSON or record.products was not an array
//
// The client never retries. Retry and fallback policy belong to the sync engine in
// package cloudsync.
package jsonbin
