package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"umami/cmd/umami/shop"
	"umami/internal/cart"
	"umami/internal/catalog"
	"umami/internal/checkout"
	"umami/internal/config"
	"umami/internal/logging"
	"umami/internal/money"
	"umami/internal/store"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	catalogPath string

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd launches the interactive storefront when run without arguments.
var rootCmd = &cobra.Command{
	Use:   "umami",
	Short: "umami - storefront catalog and WhatsApp checkout",
	Long: `umami is a single-binary storefront for a small food business.

It shows the product catalog, keeps a persistent shopping cart, and walks
a linear checkout that hands the finished order to WhatsApp as a prefilled
message.

Run without arguments to start the interactive storefront.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive storefront has its own file logging.
		if cmd.Use == "umami" && cmd.CalledAs() == "umami" {
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStorefront()
	},
}

// catalogCmd prints the product catalog without starting the TUI.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the product catalog",
	Long: `Prints every visible product with its category, price and availability.

Use --category and --search to apply the same filters the storefront offers.`,
	RunE: runCatalog,
}

// ordersCmd lists recorded order hand-offs.
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List recorded order hand-offs",
	Long: `Lists orders that were finalized and handed to WhatsApp, newest first.

These are local records only; whether the message was actually delivered
is outside the program's view.`,
	RunE: runOrders,
}

var (
	filterCategory string
	filterSearch   string
	ordersLimit    int
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.umami/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog YAML path (default: embedded catalog)")

	catalogCmd.Flags().StringVar(&filterCategory, "category", "", "Filter by category")
	catalogCmd.Flags().StringVar(&filterSearch, "search", "", "Filter by name or description")
	ordersCmd.Flags().IntVar(&ordersLimit, "limit", 20, "Maximum number of orders to list")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(ordersCmd)
}

// loadConfig reads the config, honoring --config and --catalog overrides.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	if verbose {
		cfg.Logging.DebugMode = true
	}
	return cfg, nil
}

// runStorefront wires the catalog, cart, wizard and local store together and
// runs the Bubble Tea program.
func runStorefront() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize(cfg.DataDir, logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
	}
	defer logging.CloseAll()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	logging.Boot("Catalog loaded with %d products", cat.Len())

	local, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer local.Close()

	var watcher *catalog.Watcher
	if cfg.CatalogPath != "" {
		watcher, err = catalog.NewWatcher(cfg.CatalogPath)
		if err != nil {
			logging.Get(logging.CategoryCatalog).Warn("Catalog watching disabled: %v", err)
			watcher = nil
		}
	}

	crt := cart.New(local)
	wizard := checkout.New(crt, cfg.Checkout.WhatsAppNumber)

	model := shop.New(shop.Deps{
		Config:  cfg,
		Catalog: cat,
		Cart:    crt,
		Wizard:  wizard,
		Local:   local,
		Watcher: watcher,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		zap.Int("products", cat.Len()),
		zap.String("category", filterCategory),
		zap.String("search", filterSearch))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tCATEGORY\tPRICE\tSTATUS")
	for _, p := range cat.Filter(filterCategory, filterSearch) {
		status := "disponible"
		if !p.Available {
			status = "agotado"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Category, money.Format(p.Price), status)
	}
	return w.Flush()
}

func runOrders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	local, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer local.Close()

	orders, err := local.ListOrders(ordersLimit)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No recorded orders.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tREFERENCE\tCUSTOMER\tPAYMENT\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%.8s\t%s\t%s\t%s\n",
			o.CreatedAt.Format("2006-01-02 15:04"), o.Reference,
			o.CustomerName, o.PaymentMethod, money.Format(o.Total))
	}
	return w.Flush()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
