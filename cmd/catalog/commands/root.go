package commands

import (
	"fmt"
	"os"

	"github.com/MonkyMars/gecho"
	"github.com/mytheresa/storefront-catalog/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	queryLog bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Storefront catalog service",
	Long: `Catalog layer of the storefront: categories, products, variants, coupons,
reviews and wishlists behind an admin JSON API.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&queryLog, "query-log", false, "Log every SQL statement")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// bootstrap loads the configuration and builds the application logger.
func bootstrap() (*config.Config, *gecho.Logger, error) {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := gecho.NewLogger(gecho.NewConfig(
		gecho.WithShowCaller(true),
		gecho.WithLogLevel(gecho.ParseLogLevel(cfg.Server.LogLevel())),
	))
	if !envLoaded {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	return cfg, logger, nil
}
