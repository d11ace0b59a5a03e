// Package logtail reads the end of the application log for the activity view.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries and scans the file once, so memory
// stays O(maxLines) however large the log grows. A missing file is not an error: the
// log is created lazily on the first write.
//
// # Parsing
//
// The log is zap JSON, one object per line:
//
//	{"level":"info","ts":"2026-03-01T09:00:00.000Z","msg":"catalog written","component":"cloudsync","products":7}
//
// ParseLine pulls out the timestamp, level, message and component and keeps the rest
// as display strings. Lines that are not JSON are passed through as the message.
package logtail
