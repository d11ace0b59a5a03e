package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/prefs"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/ui"
)

// closeTimeout bounds the final save after the UI exits.
const closeTimeout = 15 * time.Second

// Run boots the storefront TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	svc, err := Open(ctx, cfg, logger)
	if err != nil {
		return err
	}

	svc.Engine.Start(ctx)

	uiErr := ui.Run(ui.Options{
		Context:      ctx,
		Catalog:      svc.Engine,
		Session:      svc.Session,
		Checkout:     svc.Handoff,
		Images:       svc.Images,
		ImagesErr:    svc.ImagesErr,
		BusinessName: cfg.Checkout.BusinessName,
		WhatsApp:     cfg.Checkout.WhatsApp,
		LogPath:      cfg.Log.Path,
		Profile:      ui.Profile(cfg.Profile),
		ThemeName:    userPrefs.Theme,
		Category:     userPrefs.CategorySelector(),
		PrefsPath:    prefsPath,
		Logger:       logger,
	})

	// The run context may already be cancelled; pending edits still get written.
	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	closeErr := svc.Close(closeCtx)

	if uiErr != nil {
		return fmt.Errorf("run ui: %w", uiErr)
	}
	if closeErr != nil {
		return fmt.Errorf("save on exit: %w", closeErr)
	}
	return nil
}
