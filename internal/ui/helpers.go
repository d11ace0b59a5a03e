package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/checkout"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/state"
)

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh %dm", h, m)
	default:
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	}
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

func formatPrice(amount float64) string {
	return "Rp " + checkout.Rupiah(amount)
}

// syncBadge maps a snapshot to the header badge key and label.
func syncBadge(snap state.Snapshot) (key, label string) {
	switch {
	case snap.Status == state.StatusSaving:
		return "saving", "SAVING"
	case snap.Status == state.StatusError:
		return "error", "SYNC ERROR"
	case snap.IsOffline():
		return "offline", "OFFLINE"
	default:
		return "synced", "SYNCED"
	}
}

// imageLabel describes a product image without dumping data URIs.
func imageLabel(image string) string {
	switch {
	case image == "":
		return "(none)"
	case strings.HasPrefix(image, "data:"):
		mime := strings.TrimPrefix(image, "data:")
		if i := strings.IndexAny(mime, ";,"); i >= 0 {
			mime = mime[:i]
		}
		return fmt.Sprintf("embedded %s, %d bytes", mime, len(image))
	default:
		return image
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// expandHome resolves a leading ~ in user-typed paths.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
