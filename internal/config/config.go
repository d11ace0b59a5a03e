package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved application configuration.
type Config struct {
	Store    StoreConfig
	Sync     SyncConfig
	Local    LocalConfig
	Merchant MerchantConfig
	Checkout CheckoutConfig
	Profile  ProfileConfig
	ImageGen ImageGenConfig
	Log      LogConfig
}

// StoreConfig selects and addresses the shared catalog backend.
type StoreConfig struct {
	Backend   string
	BaseURL   string
	BinID     string
	MasterKey string
	// RequestTimeout of zero leaves requests unbounded.
	RequestTimeout time.Duration
}

type SyncConfig struct {
	PollInterval time.Duration
	Debounce     time.Duration
}

type LocalConfig struct {
	Driver string
	Dir    string
	Key    string
}

type MerchantConfig struct {
	Username string
	Password string
}

type CheckoutConfig struct {
	WhatsApp     string
	BusinessName string
}

// ProfileConfig holds the business details shown on the profile view. Blank
// fields render as not set.
type ProfileConfig struct {
	NIB      string
	Address  string
	Email    string
	VideoURL string
}

type ImageGenConfig struct {
	APIKey string
	Model  string
}

type LogConfig struct {
	Path string
}

const (
	BackendRemote = "remote"
	BackendLocal  = "local"

	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

const (
	defaultConfigPath   = "~/.config/mitra/config.toml"
	defaultBaseURL      = "https://api.jsonbin.io"
	defaultPollInterval = 30 * time.Second
	defaultDebounce     = 1500 * time.Millisecond
	defaultLocalDir     = "~/.local/share/mitra"
	defaultLocalKey     = "mitra_gizi_cache"
	defaultUsername     = "admin"
	defaultPassword     = "gizi2024"
	defaultWhatsApp     = "6281234567890"
	defaultBusinessName = "UD Mitra Gizi Lokal Mandiri"
	defaultImageModel   = "gemini-2.5-flash-image"
	defaultLogPath      = "~/.local/state/mitra/mitra.log"
)

// Environment overrides applied after the file is read.
const (
	EnvBinID     = "MITRA_BIN_ID"
	EnvMasterKey = "MITRA_MASTER_KEY"
	EnvBaseURL   = "MITRA_BASE_URL"
	EnvGeminiKey = "GEMINI_API_KEY"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		Store: StoreConfig{BaseURL: defaultBaseURL},
		Sync: SyncConfig{
			PollInterval: defaultPollInterval,
			Debounce:     defaultDebounce,
		},
		Local: LocalConfig{
			Driver: DriverFile,
			Dir:    mustExpand(defaultLocalDir),
			Key:    defaultLocalKey,
		},
		Merchant: MerchantConfig{Username: defaultUsername, Password: defaultPassword},
		Checkout: CheckoutConfig{WhatsApp: defaultWhatsApp, BusinessName: defaultBusinessName},
		ImageGen: ImageGenConfig{Model: defaultImageModel},
		Log:      LogConfig{Path: mustExpand(defaultLogPath)},
	}
}

type rawConfig struct {
	Store struct {
		Backend        string `toml:"backend"`
		BaseURL        string `toml:"base_url"`
		BinID          string `toml:"bin_id"`
		MasterKey      string `toml:"master_key"`
		RequestTimeout string `toml:"request_timeout"`
	} `toml:"store"`
	Sync struct {
		PollInterval string `toml:"poll_interval"`
		Debounce     string `toml:"debounce"`
	} `toml:"sync"`
	Local struct {
		Driver string `toml:"driver"`
		Dir    string `toml:"dir"`
		Key    string `toml:"key"`
	} `toml:"local"`
	Merchant struct {
		Username string `toml:"username"`
		Password string `toml:"password"`
	} `toml:"merchant"`
	Checkout struct {
		WhatsApp     string `toml:"whatsapp"`
		BusinessName string `toml:"business_name"`
	} `toml:"checkout"`
	Profile struct {
		NIB      string `toml:"nib"`
		Address  string `toml:"address"`
		Email    string `toml:"email"`
		VideoURL string `toml:"video_url"`
	} `toml:"profile"`
	ImageGen struct {
		APIKey string `toml:"api_key"`
		Model  string `toml:"model"`
	} `toml:"imagegen"`
	Log struct {
		Path string `toml:"path"`
	} `toml:"log"`
}

// Load reads the config file, falling back to defaults when it is missing, then
// applies environment overrides. Blank values keep their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	data, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if data != nil {
		var raw rawConfig
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if err := cfg.apply(raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendLocal
		if cfg.Store.BinID != "" {
			cfg.Store.Backend = BackendRemote
		}
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return data, nil
}

func (c *Config) apply(raw rawConfig) error {
	setString(&c.Store.Backend, strings.ToLower(raw.Store.Backend))
	setString(&c.Store.BaseURL, raw.Store.BaseURL)
	setString(&c.Store.BinID, raw.Store.BinID)
	setString(&c.Store.MasterKey, raw.Store.MasterKey)
	if err := setDuration(&c.Store.RequestTimeout, "store.request_timeout", raw.Store.RequestTimeout); err != nil {
		return err
	}
	if err := setDuration(&c.Sync.PollInterval, "sync.poll_interval", raw.Sync.PollInterval); err != nil {
		return err
	}
	if err := setDuration(&c.Sync.Debounce, "sync.debounce", raw.Sync.Debounce); err != nil {
		return err
	}

	setString(&c.Local.Driver, strings.ToLower(raw.Local.Driver))
	if dir := strings.TrimSpace(raw.Local.Dir); dir != "" {
		c.Local.Dir = mustExpand(dir)
	}
	setString(&c.Local.Key, raw.Local.Key)

	setString(&c.Merchant.Username, raw.Merchant.Username)
	setString(&c.Merchant.Password, raw.Merchant.Password)
	setString(&c.Checkout.WhatsApp, raw.Checkout.WhatsApp)
	setString(&c.Checkout.BusinessName, raw.Checkout.BusinessName)
	setString(&c.Profile.NIB, raw.Profile.NIB)
	setString(&c.Profile.Address, raw.Profile.Address)
	setString(&c.Profile.Email, raw.Profile.Email)
	setString(&c.Profile.VideoURL, raw.Profile.VideoURL)
	setString(&c.ImageGen.APIKey, raw.ImageGen.APIKey)
	setString(&c.ImageGen.Model, raw.ImageGen.Model)

	if p := strings.TrimSpace(raw.Log.Path); p != "" {
		c.Log.Path = mustExpand(p)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Store.BinID, os.Getenv(EnvBinID))
	setString(&c.Store.MasterKey, os.Getenv(EnvMasterKey))
	setString(&c.Store.BaseURL, os.Getenv(EnvBaseURL))
	setString(&c.ImageGen.APIKey, os.Getenv(EnvGeminiKey))
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendRemote:
		if c.Store.BinID == "" {
			errs = append(errs, fmt.Errorf("store.bin_id is required for the remote backend (or set %s)", EnvBinID))
		}
	case BackendLocal:
	default:
		errs = append(errs, fmt.Errorf("store.backend %q must be %q or %q", c.Store.Backend, BackendRemote, BackendLocal))
	}
	switch c.Local.Driver {
	case DriverFile, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("local.driver %q must be %q or %q", c.Local.Driver, DriverFile, DriverSQLite))
	}
	if c.Sync.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("sync.debounce must be positive, got %s", c.Sync.Debounce))
	}
	if c.Sync.PollInterval < 0 {
		errs = append(errs, fmt.Errorf("sync.poll_interval must not be negative, got %s", c.Sync.PollInterval))
	}
	if c.Store.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("store.request_timeout must not be negative, got %s", c.Store.RequestTimeout))
	}
	if c.Local.Key == "" {
		errs = append(errs, errors.New("local.key must not be empty"))
	}
	return errors.Join(errs...)
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
