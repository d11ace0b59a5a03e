package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A missing file
// yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed log line.
type Entry struct {
	Time      time.Time
	Level     string
	Message   string
	Component string
	// Fields holds the remaining structured fields as display strings.
	Fields map[string]string
	Raw    string
}

// zap's ISO-8601 encoder layout.
const isoLayout = "2006-01-02T15:04:05.000Z0700"

var reservedKeys = map[string]bool{
	"ts": true, "level": true, "msg": true, "caller": true, "component": true, "logger": true, "stacktrace": true,
}

// ParseLine decodes a zap JSON line. Lines that are not JSON objects come back with
// only Message and Raw set.
func ParseLine(line string) Entry {
	entry := Entry{Raw: line}
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		entry.Message = trimmed
		return entry
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		entry.Message = trimmed
		return entry
	}

	entry.Time = parseTime(fields["ts"])
	entry.Level, _ = fields["level"].(string)
	entry.Message, _ = fields["msg"].(string)
	entry.Component, _ = fields["component"].(string)
	if entry.Component == "" {
		entry.Component, _ = fields["logger"].(string)
	}
	for key, value := range fields {
		if reservedKeys[key] {
			continue
		}
		if entry.Fields == nil {
			entry.Fields = make(map[string]string)
		}
		entry.Fields[key] = formatValue(value)
	}
	return entry
}

// Tail reads and parses the last maxLines entries of the log at path.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, ParseLine(line))
	}
	return entries, nil
}

// FieldString renders Fields as sorted key=value pairs.
func (e Entry) FieldString() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + e.Fields[k]
	}
	return strings.Join(parts, " ")
}

func parseTime(v any) time.Time {
	switch ts := v.(type) {
	case string:
		if t, err := time.Parse(isoLayout, ts); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			return t
		}
	case float64:
		sec, frac := math.Modf(ts)
		return time.Unix(int64(sec), int64(frac*1e9))
	}
	return time.Time{}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "null"
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
