package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvBinID, EnvMasterKey, EnvBaseURL, EnvGeminiKey} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Store.Backend != BackendLocal {
		t.Fatalf("Backend = %q, want local without a bin id", cfg.Store.Backend)
	}
	if cfg.Sync.PollInterval != 30*time.Second || cfg.Sync.Debounce != 1500*time.Millisecond {
		t.Fatalf("Sync = %+v, want 30s poll and 1.5s debounce", cfg.Sync)
	}
	if cfg.Local.Key != "mitra_gizi_cache" || cfg.Local.Driver != DriverFile {
		t.Fatalf("Local = %+v", cfg.Local)
	}
	if !strings.HasPrefix(cfg.Local.Dir, home) || !strings.HasPrefix(cfg.Log.Path, home) {
		t.Fatalf("paths not under HOME %q: %q %q", home, cfg.Local.Dir, cfg.Log.Path)
	}
	if cfg.Merchant.Username != "admin" || cfg.Merchant.Password != "gizi2024" {
		t.Fatalf("Merchant = %+v", cfg.Merchant)
	}
	if cfg.Store.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %v, want 0", cfg.Store.RequestTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := writeConfig(t, `
[store]
bin_id = "  abc123  "
master_key = " secret "
request_timeout = "10s"

[sync]
poll_interval = "1m"
debounce = "500ms"

[local]
driver = "SQLite"
dir = "~/data/mitra"

[checkout]
whatsapp = "628111"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Store.BinID != "abc123" || cfg.Store.MasterKey != "secret" {
		t.Fatalf("Store = %+v, want trimmed values", cfg.Store)
	}
	if cfg.Store.Backend != BackendRemote {
		t.Fatalf("Backend = %q, want remote when bin id is set", cfg.Store.Backend)
	}
	if cfg.Store.RequestTimeout != 10*time.Second || cfg.Sync.PollInterval != time.Minute || cfg.Sync.Debounce != 500*time.Millisecond {
		t.Fatalf("durations = %v %v %v", cfg.Store.RequestTimeout, cfg.Sync.PollInterval, cfg.Sync.Debounce)
	}
	if cfg.Local.Driver != DriverSQLite {
		t.Fatalf("Driver = %q, want sqlite", cfg.Local.Driver)
	}
	if cfg.Local.Dir != filepath.Join(home, "data/mitra") {
		t.Fatalf("Dir = %q", cfg.Local.Dir)
	}
	if cfg.Checkout.WhatsApp != "628111" || cfg.Checkout.BusinessName != "UD Mitra Gizi Lokal Mandiri" {
		t.Fatalf("Checkout = %+v", cfg.Checkout)
	}
}

func TestLoad_ProfileSection(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	cfg, err := Load(writeConfig(t, `
[profile]
nib = " 1234567890123 "
address = "Jl. Pasar Baru 12, Bandung"
email = "halo@mitragizi.id"
video_url = "https://example.com/profil.mp4"
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := ProfileConfig{
		NIB:      "1234567890123",
		Address:  "Jl. Pasar Baru 12, Bandung",
		Email:    "halo@mitragizi.id",
		VideoURL: "https://example.com/profil.mp4",
	}
	if cfg.Profile != want {
		t.Fatalf("Profile = %+v, want %+v", cfg.Profile, want)
	}
	if Default().Profile != (ProfileConfig{}) {
		t.Fatalf("default Profile = %+v, want blank", Default().Profile)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)
	t.Setenv(EnvBinID, "from-env")
	t.Setenv(EnvMasterKey, "env-key")
	t.Setenv(EnvGeminiKey, "gem")

	path := writeConfig(t, `
[store]
bin_id = "from-file"
master_key = "file-key"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Store.BinID != "from-env" || cfg.Store.MasterKey != "env-key" || cfg.ImageGen.APIKey != "gem" {
		t.Fatalf("env overrides not applied: %+v %+v", cfg.Store, cfg.ImageGen)
	}
}

func TestLoad_ExplicitLocalBackendKept(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	cfg, err := Load(writeConfig(t, "[store]\nbackend = \"local\"\nbin_id = \"x\"\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Store.Backend != BackendLocal {
		t.Fatalf("Backend = %q, want explicit local", cfg.Store.Backend)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `[store`))
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %v, want parse config error", err)
	}
}

func TestLoad_MalformedDurationFails(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "[sync]\ndebounce = \"soon\"\n"))
	if err == nil || !strings.Contains(err.Error(), "sync.debounce") {
		t.Fatalf("Load error = %v, want sync.debounce error", err)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"remote without bin", func(c *Config) { c.Store.Backend = BackendRemote }, "bin_id"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "s3" }, "store.backend"},
		{"unknown driver", func(c *Config) { c.Local.Driver = "redis" }, "local.driver"},
		{"zero debounce", func(c *Config) { c.Sync.Debounce = 0 }, "sync.debounce"},
		{"negative poll", func(c *Config) { c.Sync.PollInterval = -time.Second }, "sync.poll_interval"},
		{"negative timeout", func(c *Config) { c.Store.RequestTimeout = -time.Second }, "request_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Store.Backend = BackendLocal
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate error = %v, want mention of %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.Store.Backend = BackendLocal
	cfg.Sync.PollInterval = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero poll interval should be valid (disables polling): %v", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
