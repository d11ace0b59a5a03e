package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/state"
)

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		name string
		in   int64 // seconds
		want string
	}{
		{"negative", -5, "now"},
		{"subsecond", 0, "now"},
		{"seconds", 12, "12s"},
		{"minutes", 61, "1m"},
		{"hours_only", 2*60*60 + 10, "2h"},
		{"hours_minutes", 2*60*60 + 3*60, "2h 3m"},
		{"days", 24 * 60 * 60, "1d"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := humanizeDuration(timeSeconds(tc.in))
			if got != tc.want {
				t.Fatalf("humanizeDuration(%d) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("a/b/c/d/e", 7)
	if got == "a/b/c/d/e" {
		t.Fatalf("expected truncation")
	}
	if len([]rune(got)) > 7 {
		t.Fatalf("got %q (%d runes), want <=7", got, len([]rune(got)))
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Bayam", 10); got != "Bayam" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("Bayam Hijau Organik", 6); got != "Bayam…" {
		t.Fatalf("truncate = %q, want Bayam…", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate zero = %q, want empty", got)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := formatPrice(20000); got != "Rp 20.000" {
		t.Fatalf("formatPrice = %q, want Rp 20.000", got)
	}
}

func TestSyncBadge(t *testing.T) {
	cases := []struct {
		name string
		snap state.Snapshot
		want string
	}{
		{"synced", state.Snapshot{Status: state.StatusSynced}, "synced"},
		{"saving", state.Snapshot{Status: state.StatusSaving}, "saving"},
		{"error", state.Snapshot{Status: state.StatusError, LastError: errors.New("boom")}, "error"},
		{"offline", state.Snapshot{Status: state.StatusSynced, ConsecutivePollFailures: 2}, "offline"},
		{"one poll failure is still synced", state.Snapshot{Status: state.StatusSynced, ConsecutivePollFailures: 1}, "synced"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, _ := syncBadge(tc.snap); got != tc.want {
				t.Fatalf("syncBadge = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestImageLabel(t *testing.T) {
	if got := imageLabel(""); got != "(none)" {
		t.Fatalf("imageLabel empty = %q", got)
	}
	got := imageLabel("data:image/png;base64,AAAA")
	if !strings.HasPrefix(got, "embedded image/png") {
		t.Fatalf("imageLabel data uri = %q", got)
	}
	if got := imageLabel("https://x/y.jpg"); got != "https://x/y.jpg" {
		t.Fatalf("imageLabel url = %q", got)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"7500", 7500, false},
		{"7.500", 7500, false},
		{"Rp 12.000", 12000, false},
		{"1.500,5", 1500.5, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
	}
	for _, tc := range cases {
		got, err := parsePrice(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parsePrice(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("parsePrice(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
	}
}

func timeSeconds(sec int64) time.Duration {
	return time.Duration(sec) * time.Second
}
