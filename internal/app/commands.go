package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/binserver"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/checkout"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/config"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/jsonbin"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/snapshot"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/state"
)

// ErrNoLocalSnapshot is returned by Push when there is nothing saved locally.
var ErrNoLocalSnapshot = errors.New("no local snapshot to push")

// List loads the catalog the same way the storefront does at startup and prints the
// products in selector as a table.
func List(ctx context.Context, w io.Writer, cfg config.Config, logger *zap.Logger, selector catalog.Category) error {
	cfg.Sync.PollInterval = 0
	svc, err := Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close(ctx) }()

	source := svc.Engine.Start(ctx)
	products := catalog.Filter(svc.Engine.Catalog(), selector)

	_, err = fmt.Fprintf(w, "%s\n%s\n", RenderCatalog(products), listFooter(len(products), source))
	return err
}

// RenderCatalog formats products as a bordered table.
func RenderCatalog(products catalog.Catalog) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	price := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CATEGORY", "PRICE", "UNIT", "").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 3:
				return price
			default:
				return cell
			}
		})
	for _, p := range products {
		popular := ""
		if p.IsPopular {
			popular = "★"
		}
		t.Row(p.ID, p.Name, string(p.Category), "Rp "+checkout.Rupiah(p.Price), p.Unit, popular)
	}
	return t.Render()
}

func listFooter(count int, source state.Source) string {
	noun := "products"
	if count == 1 {
		noun = "product"
	}
	return fmt.Sprintf("%d %s (source: %s)", count, noun, source)
}

// Pull fetches the remote document and stores it as the local snapshot.
func Pull(ctx context.Context, cfg config.Config, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := newClient(cfg)
	if err != nil {
		return 0, err
	}
	products, err := client.FetchLatest(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch catalog: %w", err)
	}

	snaps, err := snapshot.Open(cfg.Local.Driver, cfg.Local.Dir, cfg.Local.Key)
	if err != nil {
		return 0, fmt.Errorf("open local snapshot: %w", err)
	}
	defer closeStore(snaps)

	if err := snaps.Save(products); err != nil {
		return 0, fmt.Errorf("save local snapshot: %w", err)
	}
	logger.Info("pulled catalog", zap.Int("products", len(products)), zap.String("bin_id", client.BinID()))
	return len(products), nil
}

// Push replaces the remote document with the local snapshot.
func Push(ctx context.Context, cfg config.Config, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := newClient(cfg)
	if err != nil {
		return 0, err
	}

	snaps, err := snapshot.Open(cfg.Local.Driver, cfg.Local.Dir, cfg.Local.Key)
	if err != nil {
		return 0, fmt.Errorf("open local snapshot: %w", err)
	}
	defer closeStore(snaps)

	products, ok := snaps.Load()
	if !ok {
		return 0, ErrNoLocalSnapshot
	}
	if err := client.Replace(ctx, products); err != nil {
		return 0, fmt.Errorf("replace catalog: %w", err)
	}
	logger.Info("pushed catalog", zap.Int("products", len(products)), zap.String("bin_id", client.BinID()))
	return len(products), nil
}

// ServeOptions configure ServeBin.
type ServeOptions struct {
	Addr      string
	BinID     string
	SeedPath  string // JSON product array; empty seeds the built-in catalog
	MasterKey string
}

// ServeBin runs a local document server with one bin seeded from a file or the
// built-in catalog. It blocks until ctx is cancelled.
func ServeBin(ctx context.Context, opts ServeOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	binID := strings.TrimSpace(opts.BinID)
	if binID == "" {
		return fmt.Errorf("bin id is empty")
	}

	products := catalog.Defaults()
	if opts.SeedPath != "" {
		data, err := os.ReadFile(opts.SeedPath)
		if err != nil {
			return fmt.Errorf("read seed: %w", err)
		}
		if products, err = catalog.Decode(data); err != nil {
			return fmt.Errorf("parse seed: %w", err)
		}
	}
	record, err := seedRecord(products)
	if err != nil {
		return err
	}

	srv := binserver.New(binserver.Options{MasterKey: opts.MasterKey, Logger: logger})
	if err := srv.Seed(binID, record); err != nil {
		return fmt.Errorf("seed bin: %w", err)
	}
	logger.Info("serving bin",
		zap.String("addr", opts.Addr),
		zap.String("bin_id", binID),
		zap.Int("products", len(products)),
		zap.Bool("auth", opts.MasterKey != ""),
	)
	return srv.Serve(ctx, opts.Addr)
}

func seedRecord(products catalog.Catalog) ([]byte, error) {
	if products == nil {
		products = catalog.Catalog{}
	}
	record, err := json.Marshal(jsonbin.Document{Products: products})
	if err != nil {
		return nil, fmt.Errorf("encode seed: %w", err)
	}
	return record, nil
}
