package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/checkout"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/cloudsync"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/config"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/imagegen"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/jsonbin"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/merchant"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/snapshot"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/mitra/prefs.toml
	PollEvery  int    // seconds; zero keeps the configured interval
	Backend    string // overrides store.backend when set
}

// LoadConfig reads the config, applies command-line overrides and validates it.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.Backend != "" {
		cfg.Store.Backend = opts.Backend
	}
	if opts.PollEvery > 0 {
		cfg.Sync.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Services is the wired application core shared by the TUI and the subcommands.
type Services struct {
	Config  config.Config
	Logger  *zap.Logger
	Engine  *cloudsync.Engine
	Session *merchant.Session
	Handoff checkout.Handoff
	// Images is nil when no API key is configured.
	Images    imagegen.Generator
	ImagesErr error

	snapshots snapshot.Store
}

// Open builds the services for cfg. Call Start on the engine to load the catalog and
// Close when done.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	snaps, err := snapshot.Open(cfg.Local.Driver, cfg.Local.Dir, cfg.Local.Key)
	if err != nil {
		return nil, fmt.Errorf("open local snapshot: %w", err)
	}

	backend, err := newBackend(cfg, snaps)
	if err != nil {
		closeStore(snaps)
		return nil, err
	}

	engine, err := cloudsync.New(cloudsync.Options{
		Backend:      backend,
		Snapshots:    snaps,
		Defaults:     catalog.Defaults(),
		Debounce:     cfg.Sync.Debounce,
		PollInterval: cfg.Sync.PollInterval,
		Logger:       logger,
	})
	if err != nil {
		closeStore(snaps)
		return nil, fmt.Errorf("init sync engine: %w", err)
	}

	svc := &Services{
		Config:    cfg,
		Logger:    logger,
		Engine:    engine,
		Handoff:   checkout.NewHandoff(logger),
		snapshots: snaps,
	}
	svc.Session = merchant.NewSession(merchant.Credentials{
		Username: cfg.Merchant.Username,
		Password: cfg.Merchant.Password,
	}, engine, logger)

	gen, err := imagegen.NewGemini(ctx, cfg.ImageGen.APIKey, cfg.ImageGen.Model, logger)
	if err != nil {
		svc.ImagesErr = err
		if !errors.Is(err, imagegen.ErrNoAPIKey) {
			logger.Warn("image generation unavailable", zap.Error(err))
		}
	} else {
		svc.Images = gen
	}

	logger.Info("services ready",
		zap.String("backend", backend.Name()),
		zap.String("local_driver", cfg.Local.Driver),
		zap.Duration("poll_interval", cfg.Sync.PollInterval),
		zap.Duration("debounce", cfg.Sync.Debounce),
	)
	return svc, nil
}

// Close writes pending edits, stops the engine and releases the snapshot store.
func (s *Services) Close(ctx context.Context) error {
	err := s.Engine.Flush(ctx)
	if err != nil {
		s.Logger.Warn("final save failed", zap.Error(err))
	}
	s.Engine.Stop()
	closeStore(s.snapshots)
	return err
}

func newBackend(cfg config.Config, snaps snapshot.Store) (cloudsync.Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendRemote:
		client, err := newClient(cfg)
		if err != nil {
			return nil, err
		}
		return cloudsync.NewRemoteBackend(client), nil
	case config.BackendLocal:
		return cloudsync.NewLocalBackend(snaps), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Store.Backend)
	}
}

func newClient(cfg config.Config) (*jsonbin.Client, error) {
	client, err := jsonbin.NewClient(jsonbin.Options{
		BaseURL:   cfg.Store.BaseURL,
		BinID:     cfg.Store.BinID,
		MasterKey: cfg.Store.MasterKey,
		Timeout:   cfg.Store.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init document client: %w", err)
	}
	return client, nil
}

func closeStore(store snapshot.Store) {
	if c, ok := store.(io.Closer); ok {
		_ = c.Close()
	}
}
