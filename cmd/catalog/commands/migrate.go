package commands

import (
	"github.com/MonkyMars/gecho"
	"github.com/mytheresa/storefront-catalog/database"
	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update every catalog table together with its unique indexes,
foreign keys and check constraints.

Examples:
  catalog migrate
  catalog migrate --query-log`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func runMigrate() error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database, logger, queryLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("Failed to close database", gecho.Field("error", err))
		}
	}()

	if err := database.AutoMigrate(db, logger); err != nil {
		return err
	}

	logger.Info("Schema is up to date")
	return nil
}
