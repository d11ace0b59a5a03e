package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/app"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/config"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mitra: %v\n", err)
		return 1
	}
	return 0
}

// cli holds the flag values and the state built in PersistentPreRunE.
type cli struct {
	opts    app.Options
	verbose bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "mitra",
		Short: "UD Mitra Gizi Lokal Mandiri storefront",
		Long: `mitra is a terminal storefront for local nutritious products.

Browse the catalog by category, fill a cart and send the order to the store over
WhatsApp. Merchants log in with m to add, edit and delete products; every change
is saved locally and synced to the cloud document store.

Run without arguments to start the interactive storefront.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), c.opts, c.logger)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.ConfigPath, "config", "", "config file path (default "+config.DefaultPath()+")")
	flags.StringVar(&c.opts.Backend, "backend", "", `persistence backend, "remote" or "local" (overrides config)`)
	flags.IntVar(&c.opts.PollEvery, "poll", 0, "remote poll interval in seconds (overrides config)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVar(&c.opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/mitra/prefs.toml)")

	root.AddCommand(c.listCmd(), c.pullCmd(), c.pushCmd(), c.serveBinCmd())
	return root
}

// setup loads the config and builds the logger. serve-bin runs without a config.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "serve-bin" {
		logger, err := logging.New(logging.Options{Verbose: c.verbose, Stderr: true})
		if err != nil {
			return err
		}
		c.logger = logger
		return nil
	}

	cfg, err := app.LoadConfig(c.opts)
	if err != nil {
		return err
	}
	c.cfg = cfg

	// The TUI owns the terminal, so only subcommands mirror logs to stderr.
	logger, err := logging.New(logging.Options{
		Path:    cfg.Log.Path,
		Verbose: c.verbose,
		Stderr:  cmd.HasParent() && c.verbose,
	})
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

func (c *cli) listCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog as a table",
		Long: `Loads the catalog the same way the storefront does at startup (remote, then the
local snapshot, then the built-in products) and prints it.

Example:
  mitra list --category "Healthy Snacks"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selector := catalog.CategoryAll
			if category != "" {
				parsed, ok := catalog.ParseCategory(category)
				if !ok {
					return fmt.Errorf("%w: %q", catalog.ErrInvalidCategory, category)
				}
				selector = parsed
			}
			return app.List(cmd.Context(), cmd.OutOrStdout(), c.cfg, c.logger, selector)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only show one category")
	return cmd
}

func (c *cli) pullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Download the remote catalog into the local snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := app.Pull(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pulled %d products into %s\n", n, c.cfg.Local.Dir)
			return nil
		},
	}
}

func (c *cli) pushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Replace the remote catalog with the local snapshot",
		Long: `Overwrites the remote document with the local snapshot. There is no merge: the
remote catalog is replaced as a whole.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := app.Push(cmd.Context(), c.cfg, c.logger)
			if errors.Is(err, app.ErrNoLocalSnapshot) {
				return fmt.Errorf("%w (run the storefront or mitra pull first)", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %d products\n", n)
			return nil
		},
	}
}

func (c *cli) serveBinCmd() *cobra.Command {
	opts := app.ServeOptions{Addr: "127.0.0.1:8787", BinID: "local"}
	cmd := &cobra.Command{
		Use:   "serve-bin",
		Short: "Run a local JSONBin-compatible document server",
		Long: `Serves one bin over the JSONBin v3 routes (GET /v3/b/{id}/latest, PUT /v3/b/{id})
for offline development. Point the storefront at it with:

  MITRA_BASE_URL=http://127.0.0.1:8787 MITRA_BIN_ID=local mitra`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.ServeBin(cmd.Context(), opts, c.logger)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.Addr, "addr", opts.Addr, "listen address")
	flags.StringVar(&opts.BinID, "bin", opts.BinID, "bin id to serve")
	flags.StringVar(&opts.SeedPath, "seed", "", "JSON product array to seed the bin (default built-in catalog)")
	flags.StringVar(&opts.MasterKey, "master-key", "", "require this X-Master-Key on bin requests")
	return cmd
}
