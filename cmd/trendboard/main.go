// Command trendboard serves the fashion trends dashboard and prints KPI
// reports from the same Google Trends exports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trendboard/internal/config"
	"trendboard/internal/logging"
)

var (
	// Global flags
	dataRoot    string
	catalogFile string
	logLevel    string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trendboard",
	Short: "Descriptive analytics over Google Trends exports",
	Long: `trendboard loads per-product Google Trends exports from a folder tree,
normalizes them into one dataset and reports mentions by product, category,
location and week.

Configuration is read from the environment (and a .env file when present);
flags override it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if dataRoot != "" {
			cfg.DataRoot = dataRoot
		}
		if catalogFile != "" {
			cfg.CatalogFile = catalogFile
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		var err error
		logger, err = logging.New(cfg.LogLevel, cfg.IsDev())
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
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataRoot, "data-root", "", "folder of topic folders holding the exports (env DATA_ROOT)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "YAML file overriding product categories and location aliases (env CATALOG_FILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadCatalog reads the configured catalog, falling back to the built-in
// tables when the file is absent.
func loadCatalog() (*config.Catalog, error) {
	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return catalog, nil
}
